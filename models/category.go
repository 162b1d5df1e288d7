// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Category is a PII label from the category registry.
type Category struct {
	ID              int64  `json:"id"`
	Value           string `json:"value"`
	BackgroundColor string `json:"background_color"`
	Description     string `json:"description"`
}

// TableName returns the name of the database table
// associated with the Category model.
func (c Category) TableName() string {
	return "pii_categories"
}

// CategorySeed is one entry of the category seed file.
type CategorySeed struct {
	Value       string `json:"value" yaml:"value"`
	Background  string `json:"background" yaml:"background"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// SeedMode selects how a seed file is applied to the registry.
type SeedMode string

const (
	// SeedAdd inserts missing categories and leaves existing ones untouched.
	SeedAdd SeedMode = "add"
	// SeedUpdate inserts missing categories and overwrites color and
	// description of existing ones.
	SeedUpdate SeedMode = "update"
	// SeedClear removes every category before inserting the seed.
	SeedClear SeedMode = "clear"
)

// SeedResult reports how many categories a seed run created and updated.
type SeedResult struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
}
