package handlers

import (
	"strings"
	"testing"

	"folio/internal/apperr"
	"folio/internal/models"
)

func TestValidateBlogPost(t *testing.T) {
	tests := []struct {
		name      string
		post      models.BlogPost
		wantError bool
	}{
		{"valid", models.BlogPost{Title: "My Title", Content: "Body"}, false},
		{"empty title", models.BlogPost{}, true},
		{"whitespace title", models.BlogPost{Title: "   "}, true},
		{"title too long", models.BlogPost{Title: strings.Repeat("a", 301)}, true},
		{"slug too long", models.BlogPost{Title: "t", Slug: strings.Repeat("a", 301)}, true},
		{"body too long", models.BlogPost{Title: "t", Content: strings.Repeat("a", 100_001)}, true},
		{"excerpt too long", models.BlogPost{Title: "t", Excerpt: strings.Repeat("a", 1001)}, true},
		{"relative image", models.BlogPost{Title: "t", ImageURL: "/img.png"}, true},
		{"https image", models.BlogPost{Title: "t", ImageURL: "https://cdn.example.com/a.png"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateBlogPost(&tt.post)
			if tt.wantError && err == nil {
				t.Error("expected an error, got none")
			}
			if !tt.wantError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if err != nil && apperr.StatusCode(err) != 422 {
				t.Errorf("validation errors map to 422, got %d", apperr.StatusCode(err))
			}
		})
	}
}

func TestValidateReview(t *testing.T) {
	tests := []struct {
		name      string
		review    models.Review
		wantError bool
	}{
		{"valid", models.Review{Name: "Ana", Text: "Great", Rating: 5, Date: "Jan 2024"}, false},
		{"min rating", models.Review{Name: "Ana", Text: "Ok", Rating: 1, Date: "2024-01-02"}, false},
		{"rating above max", models.Review{Name: "Ana", Text: "x", Rating: 6, Date: "2024-01-02"}, true},
		{"negative rating", models.Review{Name: "Ana", Text: "x", Rating: -1, Date: "2024-01-02"}, true},
		{"text too long", models.Review{Name: "Ana", Text: strings.Repeat("a", 5001), Rating: 3, Date: "2024-01-02"}, true},
		{"free text date", models.Review{Name: "Ana", Text: "x", Rating: 3, Date: "a while ago"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateReview(&tt.review)
			if tt.wantError != (err != nil) {
				t.Errorf("wantError=%v, got %v", tt.wantError, err)
			}
		})
	}
}

func TestCleanList(t *testing.T) {
	got := cleanList([]string{" go ", "", "  ", "sql"})
	if len(got) != 2 || got[0] != "go" || got[1] != "sql" {
		t.Errorf("got %q", got)
	}
	if cleanList(nil) == nil {
		t.Error("cleanList must never return nil")
	}
}
