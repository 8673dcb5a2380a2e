package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/starford/folio/internal/catalog"
	"github.com/starford/folio/internal/gallery"
	"github.com/starford/folio/internal/models"
)

// Option is one choice of a filter control.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// Tab links to one category's gallery.
type Tab struct {
	Name   string
	Title  string
	URL    string
	Active bool
}

// PageLink is one pagination control.
type PageLink struct {
	N      int
	Active bool
}

// GalleryData feeds the gallery template.
type GalleryData struct {
	Category     catalog.Category
	Tabs         []Tab
	Cards        []Card
	State        gallery.State
	Years        []Option
	Platforms    []Option
	Sorts        []Option
	ShowPlatform bool
	Total        int
	Page         int
	TotalPages   int
	Pages        []PageLink
	Prev, Next   int
}

var sortLabels = []struct {
	sort  gallery.Sort
	label string
}{
	{gallery.SortDateDesc, "Newest first"},
	{gallery.SortDateAsc, "Oldest first"},
	{gallery.SortNameAsc, "Name (A-Z)"},
	{gallery.SortNameDesc, "Name (Z-A)"},
}

// BuildGallery runs the filter pipeline for one category and shapes its
// page for the template.
func BuildGallery(cat catalog.Category, tabs []catalog.Category, projects []models.Project, st gallery.State, pageSize int) GalleryData {
	res := gallery.Apply(projects, cat.Name, st, gallery.Options{
		PageSize:     pageSize,
		Platformless: cat.Platformless,
	})
	opts := gallery.OptionsFor(projects, cat.Name, cat.Platformless)

	d := GalleryData{
		Category:     cat,
		State:        st,
		ShowPlatform: !cat.Platformless,
		Total:        res.Total,
		Page:         res.Page,
		TotalPages:   res.TotalPages,
		Cards:        make([]Card, 0, len(res.Items)),
	}
	d.State.Page = res.Page

	for _, t := range tabs {
		title := t.Title
		if title == "" {
			title = t.Name
		}
		d.Tabs = append(d.Tabs, Tab{
			Name:   t.Name,
			Title:  title,
			URL:    DefaultSectionLink + "/" + t.Name,
			Active: t.Name == cat.Name,
		})
	}
	for i := range res.Items {
		d.Cards = append(d.Cards, NewCard(&res.Items[i]))
	}

	d.Years = append(d.Years, Option{Value: gallery.All, Label: "All years", Selected: st.AllYears()})
	for _, y := range opts.Years {
		d.Years = append(d.Years, Option{Value: strconv.Itoa(y), Label: strconv.Itoa(y), Selected: y == st.Year})
	}
	if d.ShowPlatform {
		d.Platforms = append(d.Platforms, Option{Value: gallery.All, Label: "All platforms", Selected: st.AllPlatforms()})
		for _, p := range opts.Platforms {
			d.Platforms = append(d.Platforms, Option{Value: p, Label: p, Selected: p == st.Platform})
		}
	}
	for _, s := range sortLabels {
		d.Sorts = append(d.Sorts, Option{Value: string(s.sort), Label: s.label, Selected: s.sort == st.Sort})
	}

	for n := 1; n <= res.TotalPages; n++ {
		d.Pages = append(d.Pages, PageLink{N: n, Active: n == res.Page})
	}
	if res.Page > 1 {
		d.Prev = res.Page - 1
	}
	if res.Page < res.TotalPages {
		d.Next = res.Page + 1
	}
	return d
}

// GalleryHandlers are the gallery's outward effects.
type GalleryHandlers struct {
	// OnState is told about every accepted filter or page change.
	OnState func(gallery.State)
	// OnQuickLook opens the quick look of a project id.
	OnQuickLook func(id string) error
}

// Gallery is the gallery view of one category.
type Gallery struct {
	owned
	tpl      *Templates
	cat      catalog.Category
	tabs     []catalog.Category
	projects []models.Project
	pageSize int
	state    gallery.State
	on       GalleryHandlers
}

// NewGallery prepares a gallery over region. projects is the catalog
// snapshot; scoping to cat happens in the pipeline.
func NewGallery(region Region, t *Templates, cat catalog.Category, tabs []catalog.Category, projects []models.Project, st gallery.State, pageSize int, on GalleryHandlers) *Gallery {
	return &Gallery{
		owned:    owned{region: region},
		tpl:      t,
		cat:      cat,
		tabs:     tabs,
		projects: projects,
		pageSize: pageSize,
		state:    st,
		on:       on,
	}
}

// Render takes the region over.
func (g *Gallery) Render() (Token, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	markup, err := g.markup()
	if err != nil {
		return 0, err
	}
	return g.claim(markup, g.listeners()), nil
}

// State returns the selection currently shown.
func (g *Gallery) State() gallery.State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Apply replaces the filter state and re-renders. Changing any criterion
// sends the gallery back to page 1.
func (g *Gallery) Apply(next gallery.State) error {
	g.mu.Lock()
	g.state = g.state.Replace(next)
	markup, err := g.markup()
	st := g.state
	if err == nil {
		err = g.update(markup, g.listeners())
	}
	g.mu.Unlock()

	if err != nil {
		return err
	}
	if g.on.OnState != nil {
		g.on.OnState(st)
	}
	return nil
}

func (g *Gallery) markup() (string, error) {
	d := BuildGallery(g.cat, g.tabs, g.projects, g.state, g.pageSize)
	g.state.Page = d.Page
	return g.tpl.execute(TplGallery, d)
}

func (g *Gallery) listeners() []Listener {
	ls := []Listener{
		{Action: "filter-year", Handle: g.onYear},
		{Action: "sort", Handle: g.onSort},
		{Action: "search", Handle: g.onSearch},
		{Action: "page", Handle: g.onPage},
		{Action: "quick-look", Handle: g.onQuickLook},
	}
	if !g.cat.Platformless {
		ls = append(ls, Listener{Action: "filter-platform", Handle: g.onPlatform})
	}
	return ls
}

func (g *Gallery) onYear(ev Event) error {
	st := g.State()
	v := strings.TrimSpace(ev.Value)
	if v == "" || v == gallery.All {
		st.Year = 0
	} else {
		y, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("view: invalid year %q", ev.Value)
		}
		st.Year = y
	}
	return g.Apply(st)
}

func (g *Gallery) onPlatform(ev Event) error {
	st := g.State()
	st.Platform = ev.Value
	if st.Platform == gallery.All {
		st.Platform = ""
	}
	return g.Apply(st)
}

func (g *Gallery) onSort(ev Event) error {
	s, err := gallery.ParseSort(ev.Value)
	if err != nil {
		return err
	}
	st := g.State()
	st.Sort = s
	return g.Apply(st)
}

func (g *Gallery) onSearch(ev Event) error {
	st := g.State()
	st.SearchTerm = strings.TrimSpace(ev.Value)
	return g.Apply(st)
}

func (g *Gallery) onPage(ev Event) error {
	n, err := strconv.Atoi(strings.TrimSpace(ev.Value))
	if err != nil {
		return fmt.Errorf("view: invalid page %q", ev.Value)
	}
	return g.Apply(g.State().WithPage(n))
}

func (g *Gallery) onQuickLook(ev Event) error {
	if g.on.OnQuickLook == nil {
		return nil
	}
	return g.on.OnQuickLook(ev.Value)
}
