// Package repository provides typed access to the persisted state collections.
// Each collection is an independent store key.
package repository

// Persisted keys.
const (
	KeyCuratedProjects = "projects.curated"
	KeyCatalogProjects = "projects.catalog"
	KeyUsername        = "profile.username"
	KeyProfilePhoto    = "profile.photo"
	KeyComments        = "comments"
)
