// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package datefmt parses the display dates carried by blog posts, portfolio
// items and reviews. Blog dates are ISO-like; review dates were historically
// free-text "Month Year" strings. Parse accepts a fixed list of layouts and
// reports anything else as unparseable instead of guessing.
package datefmt

import (
	"strings"
	"time"
)

// layouts are tried in order. Month names match case-insensitively.
var layouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006-01",
	"January 2, 2006",
	"Jan 2, 2006",
	"January 2006",
	"Jan 2006",
}

// Parse returns the time a display date denotes, or false if the string
// matches none of the accepted layouts. Dates without a zone are UTC.
func Parse(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Normalize formats t as a calendar date (2006-01-02).
func Normalize(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Display formats t the way reviews show it ("January 2006").
func Display(t time.Time) string {
	return t.UTC().Format("January 2006")
}

// Within reports whether the display date s parses and falls after now-d.
// Unparseable dates are never within any window.
func Within(s string, now time.Time, d time.Duration) bool {
	t, ok := Parse(s)
	if !ok {
		return false
	}
	return t.After(now.Add(-d))
}
