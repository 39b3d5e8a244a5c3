// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"folio/internal/datefmt"
)

// Review is a client testimonial. Date is the free-text label shown on the
// page ("March 2024"); ReviewedOn is the normalized date fixed at write time
// and is what recency and sorting use.
type Review struct {
	ID         int64      `json:"id"`
	Name       string     `json:"name"`
	Company    string     `json:"company,omitempty"`
	Role       string     `json:"role,omitempty"`
	Project    string     `json:"project"`
	Rating     int        `json:"rating"`
	Text       string     `json:"text"`
	Date       string     `json:"date"`
	ReviewedOn *time.Time `json:"reviewed_on,omitempty"`
	AvatarURL  string     `json:"avatar_url,omitempty"`
	Loves      int        `json:"loves"`
	CreatedAt  time.Time  `json:"created_at"`
}

// UnmarshalJSON accepts reviewed_on in any layout datefmt parses, so a
// calendar date ("2024-05-01") decodes like a full timestamp. An absent
// field leaves ReviewedOn untouched and null clears it.
func (r *Review) UnmarshalJSON(data []byte) error {
	type plain Review
	aux := struct {
		*plain
		ReviewedOn json.RawMessage `json:"reviewed_on"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	switch raw := bytes.TrimSpace(aux.ReviewedOn); {
	case len(raw) == 0:
	case bytes.Equal(raw, []byte("null")):
		r.ReviewedOn = nil
	default:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return fmt.Errorf("reviewed_on: %w", err)
		}
		if strings.TrimSpace(s) == "" {
			r.ReviewedOn = nil
			return nil
		}
		t, ok := datefmt.Parse(s)
		if !ok {
			return fmt.Errorf("reviewed_on: unrecognized date %q", s)
		}
		r.ReviewedOn = &t
	}
	return nil
}

// Rating bounds.
const (
	MinRating = 1
	MaxRating = 5
)

func (r Review) RecordID() string     { return strconv.FormatInt(r.ID, 10) }
func (r Review) FacetValue() string   { return r.Project }
func (r Review) RatingValue() int     { return r.Rating }
func (r Review) TitleText() string    { return r.Name }
func (r Review) EngagementCount() int { return r.Loves }

func (r Review) SearchableText() string {
	return strings.Join([]string{r.Name, r.Company, r.Role, r.Project, r.Text}, "\n")
}

// DisplayDate prefers the normalized date and falls back to the free-text
// label for records written before normalization.
func (r Review) DisplayDate() string {
	if r.ReviewedOn != nil {
		return datefmt.Normalize(*r.ReviewedOn)
	}
	return r.Date
}

// NormalizeDate fills ReviewedOn from Date (or Date from ReviewedOn) so
// every stored review carries a parseable date. It reports false when
// neither field yields one.
func (r *Review) NormalizeDate() bool {
	if r.ReviewedOn == nil {
		t, ok := datefmt.Parse(r.Date)
		if !ok {
			return false
		}
		r.ReviewedOn = &t
	}
	if strings.TrimSpace(r.Date) == "" {
		r.Date = datefmt.Display(*r.ReviewedOn)
	}
	return true
}
