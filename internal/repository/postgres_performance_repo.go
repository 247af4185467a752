package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ymatsuda/pirouette/internal/model"
)

// PostgresPerformanceRepo はPostgreSQLを使用した公演リポジトリ。
type PostgresPerformanceRepo struct {
	db *sql.DB
}

// NewPostgresPerformanceRepo はPostgresPerformanceRepoを生成する。
func NewPostgresPerformanceRepo(db *sql.DB) *PostgresPerformanceRepo {
	return &PostgresPerformanceRepo{db: db}
}

// performanceColumns は公演テーブルの取得カラム。
const performanceColumns = `id, company_id, title, start_date, end_date, description,
	image_url, video_url, is_past, is_current, is_next,
	last_scraped, created_at, updated_at`

// performanceJoinColumns はバレエ団名付き取得のカラム。
const performanceJoinColumns = `p.id, p.company_id, p.title, p.start_date, p.end_date, p.description,
	p.image_url, p.video_url, p.is_past, p.is_current, p.is_next,
	p.last_scraped, p.created_at, p.updated_at, c.name, c.short_name`

// scanPerformance は1行を公演にスキャンする。
func scanPerformance(scanner interface{ Scan(...any) error }) (*model.Performance, error) {
	p := &model.Performance{}
	var videoURL sql.NullString

	err := scanner.Scan(
		&p.ID, &p.CompanyID, &p.Title, &p.StartDate, &p.EndDate, &p.Description,
		&p.ImageURL, &videoURL, &p.IsPast, &p.IsCurrent, &p.IsNext,
		&p.LastScraped, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.VideoURL = nullStringValue(videoURL)
	return p, nil
}

// scanPerformanceWithCompany は1行をバレエ団名付き公演にスキャンする。
func scanPerformanceWithCompany(scanner interface{ Scan(...any) error }) (*model.PerformanceWithCompany, error) {
	p := &model.PerformanceWithCompany{}
	var videoURL sql.NullString

	err := scanner.Scan(
		&p.ID, &p.CompanyID, &p.Title, &p.StartDate, &p.EndDate, &p.Description,
		&p.ImageURL, &videoURL, &p.IsPast, &p.IsCurrent, &p.IsNext,
		&p.LastScraped, &p.CreatedAt, &p.UpdatedAt, &p.CompanyName, &p.CompanyShortName,
	)
	if err != nil {
		return nil, err
	}

	p.VideoURL = nullStringValue(videoURL)
	return p, nil
}

// FindByID は指定IDの公演をバレエ団名付きで取得する。見つからない場合はnilを返す。
func (r *PostgresPerformanceRepo) FindByID(ctx context.Context, id string) (*model.PerformanceWithCompany, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+performanceJoinColumns+`
		 FROM performances p
		 JOIN companies c ON c.company_id = p.company_id
		 WHERE p.id = $1`,
		id,
	)

	p, err := scanPerformanceWithCompany(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("公演の取得に失敗しました: %w", err)
	}
	return p, nil
}

// ListByCompany は指定バレエ団の全公演を初日昇順で取得する。
func (r *PostgresPerformanceRepo) ListByCompany(ctx context.Context, companyID string) ([]*model.Performance, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+performanceColumns+`
		 FROM performances WHERE company_id = $1
		 ORDER BY start_date`,
		companyID,
	)
	if err != nil {
		return nil, fmt.Errorf("公演一覧の取得に失敗しました: %w", err)
	}
	return collectPerformances(rows)
}

// ListByCompanyPast は指定バレエ団の公演を過去フィルタ付きで取得する。
// pastがnilなら全件、trueなら終了済みのみ、falseなら終了済みを除く。
func (r *PostgresPerformanceRepo) ListByCompanyPast(ctx context.Context, companyID string, past *bool, now time.Time) ([]*model.Performance, error) {
	query := `SELECT ` + performanceColumns + `
		 FROM performances WHERE company_id = $1`
	args := []any{companyID}

	if past != nil {
		if *past {
			query += ` AND end_date < $2`
		} else {
			query += ` AND end_date >= $2`
		}
		args = append(args, dateOnly(now))
	}
	query += ` ORDER BY start_date`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("公演一覧の取得に失敗しました: %w", err)
	}
	return collectPerformances(rows)
}

// List は全バレエ団の公演をフィルタ付きで初日昇順で取得する。
func (r *PostgresPerformanceRepo) List(ctx context.Context, filter model.PerformanceFilter, now time.Time, limit int) ([]*model.PerformanceWithCompany, error) {
	query := `SELECT ` + performanceJoinColumns + `
		 FROM performances p
		 JOIN companies c ON c.company_id = p.company_id`
	args := []any{}

	switch filter {
	case model.PerformanceFilterCurrent:
		query += ` WHERE p.start_date <= $1 AND p.end_date >= $1`
		args = append(args, dateOnly(now))
	case model.PerformanceFilterUpcoming:
		query += ` WHERE p.start_date > $1`
		args = append(args, dateOnly(now))
	case model.PerformanceFilterPast:
		query += ` WHERE p.end_date < $1`
		args = append(args, dateOnly(now))
	}

	query += ` ORDER BY p.start_date`
	if limit > 0 {
		query += fmt.Sprintf(` LIMIT $%d`, len(args)+1)
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("公演一覧の取得に失敗しました: %w", err)
	}
	return collectPerformancesWithCompany(rows)
}

// ListUpcomingWithin は初日が今日より後かつ指定日数以内の公演を取得する。
func (r *PostgresPerformanceRepo) ListUpcomingWithin(ctx context.Context, now time.Time, days int, limit int) ([]*model.PerformanceWithCompany, error) {
	query := `SELECT ` + performanceJoinColumns + `
		 FROM performances p
		 JOIN companies c ON c.company_id = p.company_id
		 WHERE p.start_date > $1 AND p.start_date <= $2
		 ORDER BY p.start_date`
	args := []any{dateOnly(now), dateOnly(now).AddDate(0, 0, days)}

	if limit > 0 {
		query += ` LIMIT $3`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("公演一覧の取得に失敗しました: %w", err)
	}
	return collectPerformancesWithCompany(rows)
}

// ListOnDate は指定日が期間内（両端含む）の公演を取得する。
func (r *PostgresPerformanceRepo) ListOnDate(ctx context.Context, date time.Time) ([]*model.PerformanceWithCompany, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+performanceJoinColumns+`
		 FROM performances p
		 JOIN companies c ON c.company_id = p.company_id
		 WHERE p.start_date <= $1 AND p.end_date >= $1
		 ORDER BY p.start_date`,
		dateOnly(date),
	)
	if err != nil {
		return nil, fmt.Errorf("公演一覧の取得に失敗しました: %w", err)
	}
	return collectPerformancesWithCompany(rows)
}

// Create は公演を新規保存する。
func (r *PostgresPerformanceRepo) Create(ctx context.Context, p *model.Performance) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO performances (id, company_id, title, start_date, end_date,
		                           description, image_url, video_url,
		                           is_past, is_current, is_next, last_scraped,
		                           created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())`,
		p.ID, p.CompanyID, p.Title, p.StartDate, p.EndDate,
		p.Description, p.ImageURL, nullString(p.VideoURL),
		p.IsPast, p.IsCurrent, p.IsNext, p.LastScraped,
	)
	if err != nil {
		return fmt.Errorf("公演の作成に失敗しました: %w", err)
	}
	return nil
}

// Update は公演の内容を更新する。状態フラグはUpdateFlagsで別途更新する。
func (r *PostgresPerformanceRepo) Update(ctx context.Context, p *model.Performance) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE performances SET
		    title = $2, start_date = $3, end_date = $4, description = $5,
		    image_url = $6, video_url = $7, is_past = $8, last_scraped = $9,
		    updated_at = NOW()
		 WHERE id = $1`,
		p.ID, p.Title, p.StartDate, p.EndDate, p.Description,
		p.ImageURL, nullString(p.VideoURL), p.IsPast, p.LastScraped,
	)
	if err != nil {
		return fmt.Errorf("公演の更新に失敗しました: %w", err)
	}
	return nil
}

// UpdateFlags は公演の状態フラグのみを更新する。
func (r *PostgresPerformanceRepo) UpdateFlags(ctx context.Context, id string, isPast, isCurrent, isNext bool) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE performances SET
		    is_past = $2, is_current = $3, is_next = $4, updated_at = NOW()
		 WHERE id = $1`,
		id, isPast, isCurrent, isNext,
	)
	if err != nil {
		return fmt.Errorf("公演フラグの更新に失敗しました: %w", err)
	}
	return nil
}

// DeleteByCompany は指定バレエ団の全公演を削除し、削除件数を返す。
func (r *PostgresPerformanceRepo) DeleteByCompany(ctx context.Context, companyID string) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM performances WHERE company_id = $1`,
		companyID,
	)
	if err != nil {
		return 0, fmt.Errorf("公演の削除に失敗しました: %w", err)
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("削除件数の取得に失敗しました: %w", err)
	}
	return count, nil
}

// collectPerformances は行セットを公演スライスに変換する。
func collectPerformances(rows *sql.Rows) ([]*model.Performance, error) {
	defer rows.Close()

	var perfs []*model.Performance
	for rows.Next() {
		p, err := scanPerformance(rows)
		if err != nil {
			return nil, fmt.Errorf("公演のスキャンに失敗しました: %w", err)
		}
		perfs = append(perfs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("公演一覧の走査に失敗しました: %w", err)
	}
	return perfs, nil
}

// collectPerformancesWithCompany は行セットをバレエ団名付き公演スライスに変換する。
func collectPerformancesWithCompany(rows *sql.Rows) ([]*model.PerformanceWithCompany, error) {
	defer rows.Close()

	var perfs []*model.PerformanceWithCompany
	for rows.Next() {
		p, err := scanPerformanceWithCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("公演のスキャンに失敗しました: %w", err)
		}
		perfs = append(perfs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("公演一覧の走査に失敗しました: %w", err)
	}
	return perfs, nil
}

// dateOnly は時刻を日付のみの値に正規化する。
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
