// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package fallback bundles a small static dataset. Clients show it when the
// API is unreachable and the dev seed loads it into an empty database.
package fallback

import (
	"embed"
	"encoding/json"
	"fmt"

	"folio/internal/models"
)

//go:embed data/*.json
var dataFS embed.FS

func load[T any](name string) ([]T, error) {
	raw, err := dataFS.ReadFile("data/" + name + ".json")
	if err != nil {
		return nil, fmt.Errorf("fallback %s: %w", name, err)
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("fallback %s: %w", name, err)
	}
	return out, nil
}

// Blog returns the bundled blog posts.
func Blog() ([]models.BlogPost, error) {
	return load[models.BlogPost]("blog")
}

// Portfolio returns the bundled portfolio items.
func Portfolio() ([]models.PortfolioItem, error) {
	return load[models.PortfolioItem]("portfolio")
}

// Reviews returns the bundled reviews with their dates normalized.
func Reviews() ([]models.Review, error) {
	reviews, err := load[models.Review]("reviews")
	if err != nil {
		return nil, err
	}
	for i := range reviews {
		reviews[i].NormalizeDate()
	}
	return reviews, nil
}

// Services returns the bundled services.
func Services() ([]models.Service, error) {
	return load[models.Service]("services")
}
