// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"encoding/json"
	"log/slog"
	"strings"

	"folio/internal/apperr"
)

// ParseList decodes a JSON array of strings stored in a text column.
// Empty input is an empty list; anything that is not a string array is a
// ParseError.
func ParseList(field, raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return []string{}, nil
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, &apperr.ParseError{Field: field, Value: raw, Err: err}
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}

// DecodeList is ParseList with the safe fallback: malformed data becomes an
// empty list and is logged rather than returned.
func DecodeList(field, raw string) []string {
	out, err := ParseList(field, raw)
	if err != nil {
		slog.Warn("malformed list field, using empty list", "field", field, "error", err)
		return []string{}
	}
	return out
}

// EncodeList serializes a list for storage, trimming blanks.
func EncodeList(items []string) string {
	clean := make([]string, 0, len(items))
	for _, s := range items {
		if s = strings.TrimSpace(s); s != "" {
			clean = append(clean, s)
		}
	}
	b, _ := json.Marshal(clean)
	return string(b)
}
