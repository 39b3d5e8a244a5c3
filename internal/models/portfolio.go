// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"strconv"
	"strings"
	"time"
)

// PortfolioItem is a showcased client or personal project. Category doubles
// as the service it was delivered under (e.g. "WordPress").
type PortfolioItem struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	Technologies []string  `json:"technologies"`
	Client       string    `json:"client,omitempty"`
	ImageURL     string    `json:"image_url,omitempty"`
	LiveURL      string    `json:"live_url,omitempty"`
	GithubURL    string    `json:"github_url,omitempty"`
	Featured     bool      `json:"featured"`
	Loves        int       `json:"loves"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (p PortfolioItem) RecordID() string     { return strconv.FormatInt(p.ID, 10) }
func (p PortfolioItem) FacetValue() string   { return p.Category }
func (p PortfolioItem) TitleText() string    { return p.Title }
func (p PortfolioItem) EngagementCount() int { return p.Loves }

func (p PortfolioItem) SearchableText() string {
	return strings.Join([]string{p.Title, p.Description, p.Category, p.Client, strings.Join(p.Technologies, " ")}, "\n")
}

func (p PortfolioItem) DisplayDate() string {
	if p.CreatedAt.IsZero() {
		return ""
	}
	return p.CreatedAt.UTC().Format(time.RFC3339)
}

// StatusLabel splits featured projects from the rest.
func (p PortfolioItem) StatusLabel() string {
	if p.Featured {
		return "featured"
	}
	return "standard"
}
