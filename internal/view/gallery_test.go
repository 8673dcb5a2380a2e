package view

import (
	"errors"
	"strings"
	"testing"

	"github.com/starford/folio/internal/catalog"
	"github.com/starford/folio/internal/gallery"
)

func TestBuildGallery(t *testing.T) {
	projects := numberedProjects("x", 20)
	projects = append(projects, numberedProjects("y", 2)...)
	cat := catalog.Category{Name: "x", Title: "X"}
	tabs := []catalog.Category{cat, {Name: "y"}}

	d := BuildGallery(cat, tabs, projects, gallery.DefaultState().WithPage(3), 9)
	if d.Page != 3 || d.TotalPages != 3 || d.Total != 20 || len(d.Cards) != 2 {
		t.Fatalf("page=%d total_pages=%d total=%d cards=%d", d.Page, d.TotalPages, d.Total, len(d.Cards))
	}
	// date-desc puts the oldest two on the last page.
	if d.Cards[0].ID != "x-1" || d.Cards[1].ID != "x-0" {
		t.Errorf("last page = %s, %s", d.Cards[0].ID, d.Cards[1].ID)
	}
	if d.Prev != 2 || d.Next != 0 {
		t.Errorf("prev=%d next=%d", d.Prev, d.Next)
	}
	if len(d.Tabs) != 2 || !d.Tabs[0].Active || d.Tabs[1].Title != "y" || d.Tabs[1].URL != "#/gallery/y" {
		t.Errorf("tabs = %+v", d.Tabs)
	}
	if len(d.Years) != 21 || !d.Years[0].Selected || d.Years[1].Value != "2029" {
		t.Errorf("years = %+v", d.Years[:2])
	}
	if len(d.Platforms) != 2 || d.Platforms[1].Value != "Windows" {
		t.Errorf("platforms = %+v", d.Platforms)
	}
}

func TestBuildGallery_Platformless(t *testing.T) {
	cat := catalog.Category{Name: "x", Platformless: true}
	st := gallery.DefaultState()
	st.Platform = "PS5"
	d := BuildGallery(cat, nil, numberedProjects("x", 3), st, 9)
	if d.ShowPlatform || len(d.Platforms) != 0 {
		t.Errorf("platform control shown: %+v", d.Platforms)
	}
	if d.Total != 3 {
		t.Errorf("platform filter applied to platformless category: total=%d", d.Total)
	}
}

func TestGallery_FilterInteractions(t *testing.T) {
	tpl := shippedTemplates(t)
	region := NewRegion("main")
	cat := catalog.Category{Name: "x", Title: "Things"}

	var states []gallery.State
	var looked string
	g := NewGallery(region, tpl, cat, []catalog.Category{cat}, numberedProjects("x", 20), gallery.DefaultState(), 9, GalleryHandlers{
		OnState:     func(s gallery.State) { states = append(states, s) },
		OnQuickLook: func(id string) error { looked = id; return nil },
	})
	if _, err := g.Render(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(region.Markup(), "<h1 class=\"page-title\">Things</h1>") {
		t.Errorf("markup:\n%s", region.Markup())
	}

	if err := region.Dispatch(Event{Action: "page", Value: "2"}); err != nil {
		t.Fatal(err)
	}
	if g.State().Page != 2 {
		t.Errorf("page = %d, want 2", g.State().Page)
	}

	if err := region.Dispatch(Event{Action: "search", Value: "project 1"}); err != nil {
		t.Fatal(err)
	}
	st := g.State()
	if st.Page != 1 || st.SearchTerm != "project 1" {
		t.Errorf("search did not reset page: %+v", st)
	}
	if !strings.Contains(region.Markup(), "10 projects") {
		t.Errorf("expected 10 matches for 'project 1'")
	}

	if err := region.Dispatch(Event{Action: "page", Value: "99"}); err != nil {
		t.Fatal(err)
	}
	if g.State().Page != 2 {
		t.Errorf("page not clamped: %d", g.State().Page)
	}

	if err := region.Dispatch(Event{Action: "filter-year", Value: "2015"}); err != nil {
		t.Fatal(err)
	}
	if g.State().Year != 2015 || g.State().Page != 1 {
		t.Errorf("year filter state = %+v", g.State())
	}
	if err := region.Dispatch(Event{Action: "filter-year", Value: "all"}); err != nil {
		t.Fatal(err)
	}
	if !g.State().AllYears() {
		t.Error("year=all not cleared")
	}
	if err := region.Dispatch(Event{Action: "filter-platform", Value: "all"}); err != nil {
		t.Fatal(err)
	}
	if err := region.Dispatch(Event{Action: "sort", Value: "name-desc"}); err != nil {
		t.Fatal(err)
	}
	if g.State().Sort != gallery.SortNameDesc {
		t.Errorf("sort = %q", g.State().Sort)
	}
	if err := region.Dispatch(Event{Action: "sort", Value: "shuffle"}); err == nil {
		t.Error("unknown sort accepted")
	}

	if err := region.Dispatch(Event{Action: "quick-look", Value: "x-3"}); err != nil {
		t.Fatal(err)
	}
	if looked != "x-3" {
		t.Errorf("quick look = %q", looked)
	}
	if len(states) != 7 {
		t.Errorf("state notifications = %d, want 7", len(states))
	}
}

func TestGallery_StaleAfterTakeover(t *testing.T) {
	region := NewRegion("main")
	cat := catalog.Category{Name: "x", Platformless: true}
	g := NewGallery(region, shippedTemplates(t), cat, nil, numberedProjects("x", 3), gallery.DefaultState(), 9, GalleryHandlers{})
	if _, err := g.Render(); err != nil {
		t.Fatal(err)
	}
	if err := region.Dispatch(Event{Action: "filter-platform", Value: "Windows"}); !errors.Is(err, ErrNoListener) {
		t.Errorf("platformless gallery listens for platform: %v", err)
	}
	region.Replace("detail")
	if err := g.Apply(gallery.State{Sort: gallery.SortNameAsc}); !errors.Is(err, ErrStale) {
		t.Errorf("err = %v, want ErrStale", err)
	}
}
