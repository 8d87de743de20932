package service

import (
	"cmp"
	"slices"
	"strings"

	"portfolio/internal/models"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey selects the ordering applied by QueryProjects.
type SortKey string

const (
	SortNone      SortKey = ""
	SortByName    SortKey = "name"
	SortByStars   SortKey = "stars"
	SortByForks   SortKey = "forks"
	SortByUpdated SortKey = "updated"
)

// LanguageAll disables the language filter.
const LanguageAll = "all"

// ProjectQuery holds the view parameters for QueryProjects.
type ProjectQuery struct {
	Search   string
	Language string
	Sort     SortKey
}

// ParseSortKey validates a sort key received from a caller.
func ParseSortKey(raw string) (SortKey, error) {
	switch key := SortKey(strings.ToLower(strings.TrimSpace(raw))); key {
	case SortNone, SortByName, SortByStars, SortByForks, SortByUpdated:
		return key, nil
	default:
		return SortNone, models.NewValidationError("Unknown sort key: " + raw)
	}
}

// QueryProjects filters and sorts projects without modifying the input.
// Equal inputs always produce equal outputs. Sorting is stable.
func QueryProjects(projects []models.Project, q ProjectQuery) []models.Project {
	search := strings.ToLower(q.Search)
	out := make([]models.Project, 0, len(projects))
	for _, p := range projects {
		if matchesSearch(p, search) && matchesLanguage(p, q.Language) {
			out = append(out, p)
		}
	}

	switch q.Sort {
	case SortByName:
		// Collators keep internal buffers and are not safe for concurrent use.
		col := collate.New(language.Und)
		slices.SortStableFunc(out, func(a, b models.Project) int {
			return col.CompareString(a.Title, b.Title)
		})
	case SortByStars:
		slices.SortStableFunc(out, func(a, b models.Project) int {
			return cmp.Compare(countOrZero(b.Stars), countOrZero(a.Stars))
		})
	case SortByForks:
		slices.SortStableFunc(out, func(a, b models.Project) int {
			return cmp.Compare(countOrZero(b.Forks), countOrZero(a.Forks))
		})
	case SortByUpdated:
		// A pair with a missing timestamp compares equal, so mixed collections
		// are only partially ordered.
		slices.SortStableFunc(out, func(a, b models.Project) int {
			if a.UpdatedAt == nil || b.UpdatedAt == nil {
				return 0
			}
			return b.UpdatedAt.Compare(*a.UpdatedAt)
		})
	}
	return out
}

// Languages returns the distinct technology tags, sorted case-insensitively.
func Languages(projects []models.Project) []string {
	seen := make(map[string]struct{})
	var langs []string
	for _, p := range projects {
		for _, tech := range p.TechStack {
			key := strings.ToLower(tech)
			if _, ok := seen[key]; ok || tech == "" {
				continue
			}
			seen[key] = struct{}{}
			langs = append(langs, tech)
		}
	}
	slices.SortFunc(langs, func(a, b string) int {
		return strings.Compare(strings.ToLower(a), strings.ToLower(b))
	})
	if langs == nil {
		return []string{}
	}
	return langs
}

func matchesSearch(p models.Project, search string) bool {
	if search == "" {
		return true
	}
	if strings.Contains(strings.ToLower(p.Title), search) ||
		strings.Contains(strings.ToLower(p.Description), search) {
		return true
	}
	for _, tag := range p.TechStack {
		if strings.Contains(strings.ToLower(tag), search) {
			return true
		}
	}
	for _, tag := range p.Topics {
		if strings.Contains(strings.ToLower(tag), search) {
			return true
		}
	}
	return false
}

func matchesLanguage(p models.Project, lang string) bool {
	if lang == "" || strings.EqualFold(lang, LanguageAll) {
		return true
	}
	for _, tech := range p.TechStack {
		if strings.EqualFold(tech, lang) {
			return true
		}
	}
	return false
}

func countOrZero(n *int) int {
	if n == nil {
		return 0
	}
	return *n
}
