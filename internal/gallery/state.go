package gallery

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// All is the control value that disables a year or platform filter.
const All = "all"

// Sort selects the ordering of the filtered set.
type Sort string

const (
	SortDateDesc Sort = "date-desc"
	SortDateAsc  Sort = "date-asc"
	SortNameAsc  Sort = "name-asc"
	SortNameDesc Sort = "name-desc"
)

// ParseSort validates a sort key; empty selects date-desc.
func ParseSort(s string) (Sort, error) {
	switch v := Sort(strings.TrimSpace(s)); v {
	case "":
		return SortDateDesc, nil
	case SortDateDesc, SortDateAsc, SortNameAsc, SortNameDesc:
		return v, nil
	default:
		return "", fmt.Errorf("gallery: unknown sort %q", s)
	}
}

// State is the gallery's filter selection plus the current page.
// A State is a value; every control interaction produces a new one.
type State struct {
	Year       int    `json:"year,omitempty"` // 0 selects every year
	Platform   string `json:"platform,omitempty"`
	Sort       Sort   `json:"sort"`
	SearchTerm string `json:"searchTerm,omitempty"`
	Page       int    `json:"page"`
}

// DefaultState is the selection of a freshly rendered gallery.
func DefaultState() State {
	return State{Sort: SortDateDesc, Page: 1}
}

// AllYears reports whether the year filter is off.
func (s State) AllYears() bool { return s.Year == 0 }

// AllPlatforms reports whether the platform filter is off.
func (s State) AllPlatforms() bool { return s.Platform == "" || s.Platform == All }

// sameCriteria compares everything but the page.
func (s State) sameCriteria(o State) bool {
	return s.Year == o.Year &&
		(s.Platform == o.Platform || (s.AllPlatforms() && o.AllPlatforms())) &&
		s.Sort == o.Sort &&
		s.SearchTerm == o.SearchTerm
}

// Replace returns next, except that the page falls back to 1 whenever
// the filter criteria changed.
func (s State) Replace(next State) State {
	if next.Sort == "" {
		next.Sort = SortDateDesc
	}
	if !s.sameCriteria(next) || next.Page < 1 {
		next.Page = 1
	}
	return next
}

// WithPage returns s moved to page p; clamping happens in Apply.
func (s State) WithPage(p int) State {
	s.Page = p
	return s
}

// ParseState reads a State from query-style values: year, platform,
// sort, q and page. Missing values take their defaults.
func ParseState(v url.Values) (State, error) {
	st := DefaultState()

	if y := strings.TrimSpace(v.Get("year")); y != "" && y != All {
		n, err := strconv.Atoi(y)
		if err != nil || n < 1 {
			return State{}, fmt.Errorf("gallery: invalid year %q", y)
		}
		st.Year = n
	}
	if p := v.Get("platform"); p != All {
		st.Platform = p
	}
	sort, err := ParseSort(v.Get("sort"))
	if err != nil {
		return State{}, err
	}
	st.Sort = sort
	st.SearchTerm = strings.TrimSpace(v.Get("q"))
	if p := strings.TrimSpace(v.Get("page")); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil {
			return State{}, fmt.Errorf("gallery: invalid page %q", p)
		}
		st.Page = n
	}
	return st, nil
}

// Values is the inverse of ParseState.
func (s State) Values() url.Values {
	v := url.Values{}
	if !s.AllYears() {
		v.Set("year", strconv.Itoa(s.Year))
	}
	if !s.AllPlatforms() {
		v.Set("platform", s.Platform)
	}
	if s.Sort != "" && s.Sort != SortDateDesc {
		v.Set("sort", string(s.Sort))
	}
	if s.SearchTerm != "" {
		v.Set("q", s.SearchTerm)
	}
	if s.Page > 1 {
		v.Set("page", strconv.Itoa(s.Page))
	}
	return v
}
