// Package gallery implements the filter, sort and paginate pipeline
// behind the project gallery. Everything here is pure.
package gallery

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/starford/folio/internal/models"
)

// DefaultPageSize is the number of cards on one gallery page.
const DefaultPageSize = 9

// Options tune Apply for a category.
type Options struct {
	PageSize int
	// Platformless categories ignore the platform filter entirely.
	Platformless bool
}

// Result is one page of the filtered, sorted set.
type Result struct {
	Items      []models.Project `json:"items"`
	Page       int              `json:"page"`
	TotalPages int              `json:"totalPages"`
	Total      int              `json:"total"`
}

// Apply scopes projects to category, filters them by st, sorts them and
// cuts out the requested page. The page is clamped to the valid range and
// there is always at least one page.
func Apply(projects []models.Project, category string, st State, opt Options) Result {
	pageSize := opt.PageSize
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	term := strings.ToLower(st.SearchTerm)

	var set []models.Project
	for _, p := range projects {
		if p.Category != category {
			continue
		}
		if !st.AllYears() {
			y, ok := p.EndYear()
			if !ok || y != st.Year {
				continue
			}
		}
		if !opt.Platformless && !st.AllPlatforms() && !p.HasPlatform(st.Platform) {
			continue
		}
		if term != "" && !matches(p, term) {
			continue
		}
		set = append(set, p)
	}

	sortProjects(set, st.Sort)

	total := len(set)
	totalPages := max(1, (total+pageSize-1)/pageSize)
	page := min(max(st.Page, 1), totalPages)
	lo := min((page-1)*pageSize, total)
	hi := min(page*pageSize, total)

	items := make([]models.Project, hi-lo)
	copy(items, set[lo:hi])
	return Result{
		Items:      items,
		Page:       page,
		TotalPages: totalPages,
		Total:      total,
	}
}

// matches is a case-insensitive substring test on the title and every
// tech stack entry; term must already be lower-case.
func matches(p models.Project, term string) bool {
	if strings.Contains(strings.ToLower(p.Title), term) {
		return true
	}
	for _, t := range p.TechStack {
		if strings.Contains(strings.ToLower(t), term) {
			return true
		}
	}
	return false
}

// endTime treats unknown end dates as the oldest possible value.
func endTime(p models.Project) time.Time {
	t, ok := p.DevEndDate.Time()
	if !ok {
		return time.Time{}
	}
	return t
}

func sortProjects(set []models.Project, s Sort) {
	switch s {
	case SortDateAsc:
		slices.SortStableFunc(set, func(a, b models.Project) int {
			return endTime(a).Compare(endTime(b))
		})
	case SortNameAsc:
		slices.SortStableFunc(set, func(a, b models.Project) int {
			return cmp.Compare(a.Title, b.Title)
		})
	case SortNameDesc:
		slices.SortStableFunc(set, func(a, b models.Project) int {
			return cmp.Compare(b.Title, a.Title)
		})
	default:
		slices.SortStableFunc(set, func(a, b models.Project) int {
			return endTime(b).Compare(endTime(a))
		})
	}
}

// FilterOptions are the values offered by the gallery's filter controls.
type FilterOptions struct {
	Years     []int    `json:"years"`
	Platforms []string `json:"platforms"`
}

// OptionsFor lists the distinct known end years (newest first) and the
// distinct platforms (ascending) of a category.
func OptionsFor(projects []models.Project, category string, platformless bool) FilterOptions {
	years := map[int]struct{}{}
	platforms := map[string]struct{}{}
	for _, p := range projects {
		if p.Category != category {
			continue
		}
		if y, ok := p.EndYear(); ok {
			years[y] = struct{}{}
		}
		if !platformless {
			for _, pl := range p.Platforms {
				platforms[pl] = struct{}{}
			}
		}
	}
	out := FilterOptions{Years: []int{}, Platforms: []string{}}
	for y := range years {
		out.Years = append(out.Years, y)
	}
	for pl := range platforms {
		out.Platforms = append(out.Platforms, pl)
	}
	slices.SortFunc(out.Years, func(a, b int) int { return cmp.Compare(b, a) })
	slices.Sort(out.Platforms)
	return out
}
