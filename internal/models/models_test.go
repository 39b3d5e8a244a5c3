package models

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"folio/internal/apperr"
)

func TestParseList(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"", []string{}},
		{"null", []string{}},
		{`[]`, []string{}},
		{`["go","chi"]`, []string{"go", "chi"}},
	}
	for _, tt := range tests {
		got, err := ParseList("tags", tt.raw)
		if err != nil {
			t.Errorf("ParseList(%q): %v", tt.raw, err)
			continue
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("ParseList(%q) (-want +got):\n%s", tt.raw, diff)
		}
	}
}

func TestParseListMalformed(t *testing.T) {
	_, err := ParseList("technologies", `{"not": "a list"}`)
	var pe *apperr.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if pe.Field != "technologies" {
		t.Errorf("field: got %q", pe.Field)
	}

	if got := DecodeList("technologies", `[1, 2`); len(got) != 0 || got == nil {
		t.Errorf("DecodeList fallback: got %#v, want empty list", got)
	}
}

func TestEncodeList(t *testing.T) {
	if got := EncodeList([]string{" go ", "", "postgres"}); got != `["go","postgres"]` {
		t.Errorf("EncodeList: got %s", got)
	}
	if got := EncodeList(nil); got != `[]` {
		t.Errorf("EncodeList(nil): got %s", got)
	}
}

func TestReviewNormalizeDate(t *testing.T) {
	r := Review{Date: "March 2024"}
	if !r.NormalizeDate() {
		t.Fatal("expected March 2024 to normalize")
	}
	if r.ReviewedOn == nil || !r.ReviewedOn.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("reviewed_on: got %v", r.ReviewedOn)
	}
	if r.DisplayDate() != "2024-03-01" {
		t.Errorf("display date: got %q", r.DisplayDate())
	}

	on := time.Date(2025, 9, 12, 0, 0, 0, 0, time.UTC)
	r = Review{ReviewedOn: &on}
	if !r.NormalizeDate() || r.Date != "September 2025" {
		t.Errorf("date label from reviewed_on: got %q", r.Date)
	}

	r = Review{Date: "a while ago"}
	if r.NormalizeDate() {
		t.Error("free text should not normalize")
	}
	if r.DisplayDate() != "a while ago" {
		t.Errorf("unnormalized display date: got %q", r.DisplayDate())
	}
}

func TestReviewDecodesCalendarDate(t *testing.T) {
	want := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	for _, body := range []string{
		`{"name":"Ana","reviewed_on":"2024-05-01"}`,
		`{"name":"Ana","reviewed_on":"2024-05-01T00:00:00Z"}`,
	} {
		var r Review
		if err := json.Unmarshal([]byte(body), &r); err != nil {
			t.Fatalf("%s: %v", body, err)
		}
		if r.Name != "Ana" || r.ReviewedOn == nil || !r.ReviewedOn.Equal(want) {
			t.Errorf("%s: got %+v", body, r)
		}
	}

	var r Review
	if err := json.Unmarshal([]byte(`{"reviewed_on":"someday"}`), &r); err == nil {
		t.Error("expected an error for an unparseable reviewed_on")
	}

	// Decoding onto an existing review keeps the date unless the body sets it.
	r = Review{ReviewedOn: &want}
	if err := json.Unmarshal([]byte(`{"rating":4}`), &r); err != nil || r.ReviewedOn == nil || r.Rating != 4 {
		t.Errorf("absent reviewed_on: %+v, %v", r, err)
	}
	if err := json.Unmarshal([]byte(`{"reviewed_on":null}`), &r); err != nil || r.ReviewedOn != nil {
		t.Errorf("null reviewed_on: %+v, %v", r, err)
	}

	// Encoding round-trips through the same decoder.
	out, _ := json.Marshal(Review{Name: "Bo", ReviewedOn: &want})
	var back Review
	if err := json.Unmarshal(out, &back); err != nil || back.ReviewedOn == nil || !back.ReviewedOn.Equal(want) {
		t.Errorf("round trip: %s -> %+v, %v", out, back, err)
	}
}

func TestBlogPostRecord(t *testing.T) {
	p := BlogPost{
		ID: 42, Title: "Caching with Valkey", Category: "Backend",
		Tags: []string{"redis", "cache"}, Content: "body", Likes: 3,
		CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	if p.RecordID() != "42" {
		t.Errorf("id: got %q", p.RecordID())
	}
	if !strings.Contains(p.SearchableText(), "redis") {
		t.Error("tags should be searchable")
	}
	if p.DisplayDate() != "2026-01-02T03:04:05Z" {
		t.Errorf("display date: got %q", p.DisplayDate())
	}
	if p.StatusLabel() != "draft" {
		t.Errorf("status: got %q", p.StatusLabel())
	}
	if (BlogPost{}).DisplayDate() != "" {
		t.Error("zero time should have no display date")
	}
}

func TestEstimateReadTime(t *testing.T) {
	if got := EstimateReadTime(""); got != 1 {
		t.Errorf("empty: got %d", got)
	}
	if got := EstimateReadTime(strings.Repeat("word ", 401)); got != 3 {
		t.Errorf("401 words: got %d, want 3", got)
	}
}
