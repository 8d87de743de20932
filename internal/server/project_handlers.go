package server

import (
	"portfolio/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetCatalog returns the full fetched catalog
func (s *Server) GetCatalog(c *fiber.Ctx) error {
	projects, err := s.rt.Catalog.Catalog(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(projects)
}

// RefreshCatalog refetches the catalog for the stored username and waits for the result
func (s *Server) RefreshCatalog(c *fiber.Ctx) error {
	result, err := s.rt.Catalog.Refresh(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// QueryProjects returns the curated projects filtered by search and language and sorted by sort
func (s *Server) QueryProjects(c *fiber.Ctx) error {
	sortKey, err := service.ParseSortKey(c.Query("sort"))
	if err != nil {
		return respondError(c, err)
	}

	curated, err := s.rt.Selection.Curated(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(service.QueryProjects(curated, service.ProjectQuery{
		Search:   c.Query("search"),
		Language: c.Query("language", service.LanguageAll),
		Sort:     sortKey,
	}))
}

// GetLanguages lists the technology tags usable as a language filter
func (s *Server) GetLanguages(c *fiber.Ctx) error {
	curated, err := s.rt.Selection.Curated(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(service.Languages(curated))
}

// RemoveProject removes one project from the curated collection
func (s *Server) RemoveProject(c *fiber.Ctx) error {
	curated, err := s.rt.Selection.RemoveOne(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(curated)
}
