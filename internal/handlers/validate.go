// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"folio/internal/apperr"
	"folio/internal/models"
)

// Validation limits for record fields.
const (
	maxTitleLen   = 300
	maxSlugLen    = 300
	maxBodyLen    = 100_000
	maxExcerptLen = 1_000
	maxNameLen    = 200
	maxTextLen    = 5_000
	maxListItems  = 50
)

// validateBlogPost checks a post and returns the first problem found.
func validateBlogPost(p *models.BlogPost) error {
	if err := requireText("title", p.Title, maxTitleLen); err != nil {
		return err
	}
	if utf8.RuneCountInString(p.Slug) > maxSlugLen {
		return apperr.Invalid("slug is too long (max %d characters)", maxSlugLen)
	}
	if utf8.RuneCountInString(p.Content) > maxBodyLen {
		return apperr.Invalid("content is too long (max 100,000 characters)")
	}
	if utf8.RuneCountInString(p.Excerpt) > maxExcerptLen {
		return apperr.Invalid("excerpt is too long (max %d characters)", maxExcerptLen)
	}
	if len(p.Tags) > maxListItems {
		return apperr.Invalid("too many tags (max %d)", maxListItems)
	}
	return validateURL("image_url", p.ImageURL)
}

// validatePortfolioItem checks a portfolio item.
func validatePortfolioItem(p *models.PortfolioItem) error {
	if err := requireText("title", p.Title, maxTitleLen); err != nil {
		return err
	}
	if err := maxText("description", p.Description, maxTextLen); err != nil {
		return err
	}
	if len(p.Technologies) > maxListItems {
		return apperr.Invalid("too many technologies (max %d)", maxListItems)
	}
	if err := validateURL("image_url", p.ImageURL); err != nil {
		return err
	}
	if err := validateURL("live_url", p.LiveURL); err != nil {
		return err
	}
	return validateURL("github_url", p.GithubURL)
}

// validateReview checks a testimonial. The rating must be whole stars and
// the date must be usable for sorting and stats.
func validateReview(r *models.Review) error {
	if err := requireText("name", r.Name, maxNameLen); err != nil {
		return err
	}
	if err := requireText("text", r.Text, maxTextLen); err != nil {
		return err
	}
	if r.Rating < models.MinRating || r.Rating > models.MaxRating {
		return apperr.Invalid("rating must be between %d and %d", models.MinRating, models.MaxRating)
	}
	if !r.NormalizeDate() {
		return apperr.Invalid("date %q is not a recognized date", r.Date)
	}
	return validateURL("avatar_url", r.AvatarURL)
}

// validateService checks a service offering.
func validateService(s *models.Service) error {
	if err := requireText("title", s.Title, maxTitleLen); err != nil {
		return err
	}
	if err := maxText("description", s.Description, maxTextLen); err != nil {
		return err
	}
	if len(s.Features) > maxListItems {
		return apperr.Invalid("too many features (max %d)", maxListItems)
	}
	return nil
}

func requireText(field, value string, limit int) error {
	if strings.TrimSpace(value) == "" {
		return apperr.Invalid("%s is required", field)
	}
	return maxText(field, value, limit)
}

func maxText(field, value string, limit int) error {
	if utf8.RuneCountInString(value) > limit {
		return apperr.Invalid("%s is too long (max %d characters)", field, limit)
	}
	return nil
}

// validateURL accepts an empty value or an absolute http(s) URL.
func validateURL(field, raw string) error {
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return apperr.Invalid("%s must be an http or https URL", field)
	}
	return nil
}

// cleanList trims entries, drops empty ones and never returns nil.
func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
