// Package models contains data structures for the portfolio's domain models.
package models

import "time"

// Project is one portfolio entry. Curated and full-catalog collections share this shape.
type Project struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	TechStack   []string   `json:"tech_stack"`
	Topics      []string   `json:"topics"`
	RepoURL     string     `json:"repo_url"`
	DemoURL     string     `json:"demo_url,omitempty"`
	Stars       *int       `json:"stars,omitempty"`
	Forks       *int       `json:"forks,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// ProjectIDs returns the identifiers of projects in collection order.
func ProjectIDs(projects []Project) []string {
	ids := make([]string, 0, len(projects))
	for _, p := range projects {
		ids = append(ids, p.ID)
	}
	return ids
}
