package catalog

import (
	"strconv"
	"strings"
	"unicode"

	"portfolio/internal/models"
)

// MaxTopics is the number of upstream topics kept per project.
const MaxTopics = 5

// Eligible reports whether a raw record passes the curation policy: forks,
// archived repositories and repositories without a description are dropped.
func Eligible(r RawRepository) bool {
	if r.Fork || r.Archived {
		return false
	}
	return r.Description != nil && *r.Description != ""
}

// Curate filters raw records and maps the survivors to projects, keeping upstream order.
func Curate(raw []RawRepository) []models.Project {
	projects := make([]models.Project, 0, len(raw))
	for _, r := range raw {
		if !Eligible(r) {
			continue
		}
		projects = append(projects, ToProject(r))
	}
	return projects
}

// ToProject maps one upstream record to a Project. Only the primary language is
// represented in the tech stack.
func ToProject(r RawRepository) models.Project {
	p := models.Project{
		ID:        strconv.FormatInt(r.ID, 10),
		Title:     TitleFromName(r.Name),
		TechStack: []string{},
		Topics:    []string{},
		RepoURL:   r.HTMLURL,
		UpdatedAt: r.UpdatedAt,
	}
	if r.Description != nil {
		p.Description = *r.Description
	}
	if r.Language != nil && *r.Language != "" {
		p.TechStack = []string{*r.Language}
	}
	if len(r.Topics) > MaxTopics {
		p.Topics = append(p.Topics, r.Topics[:MaxTopics]...)
	} else {
		p.Topics = append(p.Topics, r.Topics...)
	}
	if r.Homepage != nil && *r.Homepage != "" {
		p.DemoURL = *r.Homepage
	}
	stars, forks := r.StargazersCount, r.ForksCount
	p.Stars = &stars
	p.Forks = &forks
	return p
}

// TitleFromName turns "my-cool_repo" into "My Cool Repo". Separators become
// spaces and every letter that starts a word is upper-cased; the rest of each
// word is left as is.
func TitleFromName(name string) string {
	replaced := strings.Map(func(r rune) rune {
		if r == '-' || r == '_' {
			return ' '
		}
		return r
	}, name)

	var b strings.Builder
	b.Grow(len(replaced))
	prevWord := false
	for _, r := range replaced {
		word := unicode.IsLetter(r) || unicode.IsDigit(r)
		if word && !prevWord {
			r = unicode.ToUpper(r)
		}
		b.WriteRune(r)
		prevWord = word
	}
	return b.String()
}
