package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: validation, performance, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeCompanyNotFound     = "COMPANY_NOT_FOUND"
	ErrCodePerformanceNotFound = "PERFORMANCE_NOT_FOUND"
	ErrCodeInvalidDate         = "INVALID_DATE"
	ErrCodeInvalidLimit        = "INVALID_LIMIT"
	ErrCodeInvalidFlag         = "INVALID_FLAG"
)

// NewCompanyNotFoundError はバレエ団未検出エラーを生成する。
func NewCompanyNotFoundError(companyID string) *APIError {
	return &APIError{
		Code:     ErrCodeCompanyNotFound,
		Message:  fmt.Sprintf("指定されたバレエ団が見つかりません: %s", companyID),
		Category: "performance",
		Action:   "バレエ団IDを確認してください。",
	}
}

// NewPerformanceNotFoundError は公演未検出エラーを生成する。
func NewPerformanceNotFoundError(performanceID string) *APIError {
	return &APIError{
		Code:     ErrCodePerformanceNotFound,
		Message:  fmt.Sprintf("指定された公演が見つかりません: %s", performanceID),
		Category: "performance",
		Action:   "公演IDを確認してください。",
	}
}

// NewInvalidDateError は無効な日付エラーを生成する。
func NewInvalidDateError(date string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidDate,
		Message:  fmt.Sprintf("無効な日付です: %s", date),
		Category: "validation",
		Action:   "日付は YYYY-MM-DD 形式で指定してください。",
	}
}

// NewInvalidLimitError は無効な件数指定エラーを生成する。
func NewInvalidLimitError(limit string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidLimit,
		Message:  fmt.Sprintf("無効な件数指定です: %s", limit),
		Category: "validation",
		Action:   "limitには1以上の整数を指定してください。",
	}
}

// NewInvalidFlagError は無効な真偽値パラメータエラーを生成する。
func NewInvalidFlagError(name, value string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidFlag,
		Message:  fmt.Sprintf("無効なパラメータです: %s=%s", name, value),
		Category: "validation",
		Action:   "true または false を指定してください。",
	}
}
