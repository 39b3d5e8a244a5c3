package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"folio/internal/models"
)

func TestPortfolioStoreRoundTrip(t *testing.T) {
	db := testDB(t)
	s := NewPortfolioStore(db)
	ctx := context.Background()

	created, err := s.Create(ctx, &models.PortfolioItem{
		Title:        "Test Project",
		Category:     "E-commerce",
		Technologies: []string{"Go", "Postgres"},
		Featured:     true,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	t.Cleanup(func() { cleanRows(t, db, "portfolio", created.ID) })

	found, err := s.FindByID(ctx, created.ID)
	if err != nil || found == nil {
		t.Fatalf("FindByID: %+v, %v", found, err)
	}
	if diff := cmp.Diff(created, found, cmpopts.EquateApproxTime(time.Second)); diff != "" {
		t.Errorf("round trip (-created +found):\n%s", diff)
	}
}

func TestPortfolioStoreMalformedTechnologies(t *testing.T) {
	db := testDB(t)
	s := NewPortfolioStore(db)
	ctx := context.Background()

	var id int64
	err := db.QueryRow(`INSERT INTO portfolio (title, technologies) VALUES ('Broken', 'not json') RETURNING id`).Scan(&id)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	t.Cleanup(func() { cleanRows(t, db, "portfolio", id) })

	p, err := s.FindByID(ctx, id)
	if err != nil || p == nil {
		t.Fatalf("FindByID: %+v, %v", p, err)
	}
	if p.Technologies == nil || len(p.Technologies) != 0 {
		t.Errorf("technologies: got %#v, want empty list", p.Technologies)
	}
}

func TestReviewStoreKeepsNormalizedDate(t *testing.T) {
	db := testDB(t)
	s := NewReviewStore(db)
	ctx := context.Background()

	r := &models.Review{Name: "Test", Project: "WordPress", Rating: 4, Text: "Good", Date: "March 2024"}
	if !r.NormalizeDate() {
		t.Fatal("NormalizeDate failed")
	}
	created, err := s.Create(ctx, r)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	t.Cleanup(func() { cleanRows(t, db, "reviews", created.ID) })

	if created.ReviewedOn == nil || created.ReviewedOn.Format("2006-01-02") != "2024-03-01" {
		t.Errorf("reviewed_on: got %v", created.ReviewedOn)
	}
	if created.Date != "March 2024" {
		t.Errorf("date label: got %q", created.Date)
	}
}

func TestServiceStoreActiveOnly(t *testing.T) {
	db := testDB(t)
	s := NewServiceStore(db)
	ctx := context.Background()

	inactive, err := s.Create(ctx, &models.Service{Title: "Retired", Features: []string{"a"}, IsActive: false})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	t.Cleanup(func() { cleanRows(t, db, "services", inactive.ID) })

	active, err := s.List(ctx, true)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	for _, svc := range active {
		if svc.ID == inactive.ID {
			t.Error("inactive service listed as active")
		}
	}
	if diff := cmp.Diff([]string{"a"}, inactive.Features); diff != "" {
		t.Errorf("features (-want +got):\n%s", diff)
	}
}
