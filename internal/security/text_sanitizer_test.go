package security

import "testing"

func TestSanitizeText_StripsAllTags(t *testing.T) {
	sanitizer := NewTextSanitizer()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "タグなしの平文はそのまま",
			input: "A classic ballet in two acts.",
			want:  "A classic ballet in two acts.",
		},
		{
			name:  "段落タグを除去",
			input: "<p>A story of love and betrayal.</p>",
			want:  "A story of love and betrayal.",
		},
		{
			name:  "scriptタグを中身ごと除去",
			input: `Before<script>alert("x")</script>After`,
			want:  "BeforeAfter",
		},
		{
			name:  "リンクはテキストだけ残す",
			input: `See <a href="https://example.com">details</a> here`,
			want:  "See details here",
		},
		{
			name:  "実体参照をデコード",
			input: "Romeo &amp; Juliet",
			want:  "Romeo & Juliet",
		},
		{
			name:  "連続空白と改行を圧縮",
			input: "  Swan\n\n  Lake  \t returns ",
			want:  "Swan Lake returns",
		},
		{
			name:  "空文字列は空文字列",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizer.SanitizeText(tt.input); got != tt.want {
				t.Errorf("SanitizeText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// TestSanitizeText_Idempotent は同一入力に対する再適用で結果が変わらないことを検証する。
func TestSanitizeText_Idempotent(t *testing.T) {
	sanitizer := NewTextSanitizer()

	input := `<div><p>The company&#39;s new production</p></div>`
	once := sanitizer.SanitizeText(input)
	twice := sanitizer.SanitizeText(once)

	if once != twice {
		t.Errorf("SanitizeText is not idempotent: %q != %q", once, twice)
	}
}
