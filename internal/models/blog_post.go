// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"strconv"
	"strings"
	"time"
)

// BlogPost is an article on the blog. Only published posts appear in public
// listings; drafts are visible from the admin dashboard.
type BlogPost struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Excerpt     string    `json:"excerpt"`
	Content     string    `json:"content"`
	ContentHTML string    `json:"content_html,omitempty"`
	Category    string    `json:"category"`
	Tags        []string  `json:"tags"`
	Author      string    `json:"author"`
	ImageURL    string    `json:"image_url,omitempty"`
	ReadTime    int       `json:"read_time"`
	Published   bool      `json:"published"`
	Likes       int       `json:"likes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (p BlogPost) RecordID() string   { return strconv.FormatInt(p.ID, 10) }
func (p BlogPost) FacetValue() string { return p.Category }
func (p BlogPost) TitleText() string  { return p.Title }

// SearchableText concatenates title, excerpt, body, category and tags.
func (p BlogPost) SearchableText() string {
	return strings.Join([]string{p.Title, p.Excerpt, p.Content, p.Category, strings.Join(p.Tags, " ")}, "\n")
}

func (p BlogPost) EngagementCount() int { return p.Likes }

// DisplayDate is the creation time as an RFC 3339 string.
func (p BlogPost) DisplayDate() string {
	if p.CreatedAt.IsZero() {
		return ""
	}
	return p.CreatedAt.UTC().Format(time.RFC3339)
}

// StatusLabel groups posts by publishing state.
func (p BlogPost) StatusLabel() string {
	if p.Published {
		return "published"
	}
	return "draft"
}

// EstimateReadTime returns reading minutes at roughly 200 words per minute,
// never less than one.
func EstimateReadTime(body string) int {
	words := len(strings.Fields(body))
	return max(1, (words+199)/200)
}
