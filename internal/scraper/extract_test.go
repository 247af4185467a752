package scraper

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/ymatsuda/pirouette/internal/model"
)

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("failed to parse fixture HTML: %v", err)
	}
	return doc
}

func TestFirstText_FallbackChain(t *testing.T) {
	doc := mustDoc(t, `<div><h2 class="accent">Giselle</h2><p class="date">June 10, 2025</p></div>`)

	if got := firstText(doc.Selection, ".missing", ".accent"); got != "Giselle" {
		t.Errorf("firstText = %q, want Giselle", got)
	}
	if got := firstText(doc.Selection, ".nope", ".also-nope"); got != "" {
		t.Errorf("firstText = %q, want empty", got)
	}
}

func TestFirstAttr_SkipsEmptyValues(t *testing.T) {
	doc := mustDoc(t, `<div><img class="lazy" src="" data-src="/img/a.jpg"><img class="eager" src="/img/b.jpg"></div>`)

	if got := firstAttr(doc.Selection, "src", "img.lazy", "img.eager"); got != "/img/b.jpg" {
		t.Errorf("firstAttr = %q, want /img/b.jpg", got)
	}
	if got := firstAttr(doc.Selection, "data-src", "img"); got != "/img/a.jpg" {
		t.Errorf("firstAttr data-src = %q, want /img/a.jpg", got)
	}
}

func TestSubstantialText_SkipsShortParagraphs(t *testing.T) {
	doc := mustDoc(t, `<div>
		<p>Buy now</p>
		<p>A sweeping production of the romantic classic with full orchestra.</p>
	</div>`)

	got := substantialText(doc.Selection, 30, "p")
	if !strings.HasPrefix(got, "A sweeping production") {
		t.Errorf("substantialText = %q, want the long paragraph", got)
	}
}

func TestTextExcluding_SkipsDateParagraph(t *testing.T) {
	doc := mustDoc(t, `<div>
		<p>June 10 - 20, 2025</p>
		<p>The romantic classic of love, betrayal, and forgiveness.</p>
	</div>`)

	got := textExcluding(doc.Selection, "p", 20, "June 10 - 20, 2025")
	if got != "The romantic classic of love, betrayal, and forgiveness." {
		t.Errorf("textExcluding = %q", got)
	}
}

func TestBackgroundImageURL(t *testing.T) {
	tests := []struct {
		name  string
		style string
		want  string
	}{
		{"二重引用符", `background-image: url("https://cdn.example.com/a.jpg")`, "https://cdn.example.com/a.jpg"},
		{"一重引用符", `background-image: url('/img/b.jpg')`, "/img/b.jpg"},
		{"引用符なし", `color: red; background-image:url(/img/c.png)`, "/img/c.png"},
		{"指定なし", `color: red`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := backgroundImageURL(tt.style); got != tt.want {
				t.Errorf("backgroundImageURL(%q) = %q, want %q", tt.style, got, tt.want)
			}
		})
	}
}

func TestFindImage_PrefersImgThenBackground(t *testing.T) {
	t.Run("img srcを優先", func(t *testing.T) {
		doc := mustDoc(t, `<div class="card" style="background-image: url(/bg.jpg)"><img src="/img/main.jpg"></div>`)
		if got := findImage(doc.Find(".card")); got != "/img/main.jpg" {
			t.Errorf("findImage = %q, want /img/main.jpg", got)
		}
	})

	t.Run("imgがなければbackground-image", func(t *testing.T) {
		doc := mustDoc(t, `<div class="card"><div style="background-image: url('/bg.jpg')"><p>text</p></div></div>`)
		if got := findImage(doc.Find(".card")); got != "/bg.jpg" {
			t.Errorf("findImage = %q, want /bg.jpg", got)
		}
	})

	t.Run("data-srcの遅延読み込みも拾う", func(t *testing.T) {
		doc := mustDoc(t, `<div class="card"><img data-src="/lazy.jpg"></div>`)
		if got := findImage(doc.Find(".card")); got != "/lazy.jpg" {
			t.Errorf("findImage = %q, want /lazy.jpg", got)
		}
	})

	t.Run("何もなければ空", func(t *testing.T) {
		doc := mustDoc(t, `<div class="card"><p>no media</p></div>`)
		if got := findImage(doc.Find(".card")); got != "" {
			t.Errorf("findImage = %q, want empty", got)
		}
	})
}

func TestEmbedVideoURL(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"YouTube視聴URL", "https://www.youtube.com/watch?v=4fHw4GeW3EU", "https://www.youtube.com/embed/4fHw4GeW3EU"},
		{"YouTube短縮URL", "https://youtu.be/4fHw4GeW3EU", "https://www.youtube.com/embed/4fHw4GeW3EU"},
		{"YouTube埋め込みURL", "https://www.youtube.com/embed/4fHw4GeW3EU", "https://www.youtube.com/embed/4fHw4GeW3EU"},
		{"Vimeo動画URL", "https://vimeo.com/123456789", "https://player.vimeo.com/video/123456789"},
		{"Vimeoプレイヤー", "https://player.vimeo.com/video/123456789", "https://player.vimeo.com/video/123456789"},
		{"未知のホストは空", "https://example.com/video.mp4", ""},
		{"空入力は空", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EmbedVideoURL(tt.raw); got != tt.want {
				t.Errorf("EmbedVideoURL(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestFindVideo_ScansIframesAndLinks(t *testing.T) {
	doc := mustDoc(t, `<div class="card">
		<a href="/tickets">Tickets</a>
		<iframe src="https://www.youtube.com/embed/4fHw4GeW3EU"></iframe>
	</div>`)

	if got := findVideo(doc.Find(".card")); got != "https://www.youtube.com/embed/4fHw4GeW3EU" {
		t.Errorf("findVideo = %q", got)
	}
}

func TestIsSectionHeader(t *testing.T) {
	tests := []struct {
		title string
		want  bool
	}{
		{"Giselle", false},
		{"Swan Lake", false},
		{"", true},
		{"Upcoming Productions", true},
		{"2024/25 Season", true},
		{"unknown title", true},
		{"The Seasons", true},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			if got := IsSectionHeader(tt.title); got != tt.want {
				t.Errorf("IsSectionHeader(%q) = %v, want %v", tt.title, got, tt.want)
			}
		})
	}
}

func TestAbsoluteURL(t *testing.T) {
	tests := []struct {
		name string
		base string
		ref  string
		want string
	}{
		{"相対パス", "https://national.ballet.ca", "/images/a.jpg", "https://national.ballet.ca/images/a.jpg"},
		{"スキーム相対", "https://national.ballet.ca", "//cdn.example.com/a.jpg", "https://cdn.example.com/a.jpg"},
		{"絶対URLはそのまま", "https://national.ballet.ca", "https://cdn.example.com/a.jpg", "https://cdn.example.com/a.jpg"},
		{"空は空", "https://national.ballet.ca", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := absoluteURL(tt.base, tt.ref); got != tt.want {
				t.Errorf("absoluteURL(%q, %q) = %q, want %q", tt.base, tt.ref, got, tt.want)
			}
		})
	}
}

func TestDedupeByTitle(t *testing.T) {
	perfs := []model.RawPerformance{
		{Title: "Giselle", DateText: "June 10, 2025"},
		{Title: "  giselle ", DateText: "June 11, 2025"},
		{Title: "Swan Lake", DateText: "July 1, 2025"},
	}

	got := dedupeByTitle(perfs)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Title != "Giselle" || got[1].Title != "Swan Lake" {
		t.Errorf("unexpected order: %q, %q", got[0].Title, got[1].Title)
	}
	// 先勝ちで最初の掲載が残る
	if got[0].DateText != "June 10, 2025" {
		t.Errorf("DateText = %q, want the first occurrence", got[0].DateText)
	}
}

func TestReDateHint(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"On stage June 10 – 20, 2025 at the Four Seasons Centre", "June 10 – 20, 2025"},
		{"Mar. 7 - 30, 2025", "Mar. 7 - 30, 2025"},
		{"No dates here", ""},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := reDateHint.FindString(tt.text); got != tt.want {
				t.Errorf("reDateHint.FindString(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}
