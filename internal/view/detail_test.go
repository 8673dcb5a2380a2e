package view

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/starford/folio/internal/apperr"
	"github.com/starford/folio/internal/models"
	"github.com/starford/folio/internal/testutil"
)

func detailProject() models.Project {
	return models.Project{
		ID:               "dolphin",
		Title:            "Dolphin Trainer",
		Tagline:          "MR training",
		ShortDescription: "Teaches hand signals.",
		InitiationDate:   "N/A",
		DevStartDate:     "15-03-2021",
		DevEndDate:       "30-09-2021",
		Platforms:        []string{"HoloLens 2", "Windows"},
		Client:           "N/A",
		EngineVersion:    "2021.3",
		PreviewImage:     "./preview.jpg",
		BaseDir:          "unity/dolphin/",
		Media: []models.MediaItem{
			{URL: "./shot.png", Alt: "shot"},
			{URL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ", Alt: "video"},
		},
		ExternalLinks: []models.ExternalLink{
			{Label: "Case Study", URL: "https://example.com"},
			{Label: "Hidden"},
		},
	}
}

func TestBuildDetail_Specs(t *testing.T) {
	p := detailProject()
	d := BuildDetail(&p, 0)
	want := []Spec{
		{"Unity Version", "2021.3"},
		{"Start Date", "15 March 2021"},
		{"End Date", "30 September 2021"},
		{"Platform(s)", "HoloLens 2, Windows"},
	}
	if len(d.Specs) != len(want) {
		t.Fatalf("specs = %+v", d.Specs)
	}
	for i := range want {
		if d.Specs[i] != want[i] {
			t.Errorf("spec %d = %+v, want %+v", i, d.Specs[i], want[i])
		}
	}
	if len(d.Links) != 1 {
		t.Errorf("links = %+v", d.Links)
	}
	if d.Main == nil || d.Main.URL != "unity/dolphin/shot.png" {
		t.Errorf("main = %+v", d.Main)
	}
}

func TestDetail_LoadContent(t *testing.T) {
	root, _ := testutil.TestContent(t)
	testutil.WriteFile(t, root, "unity/dolphin/README.md", "---\nsecret: yes\n---\n# Overview\n\nLong form.\n")

	region := NewRegion("main")
	d := NewDetail(region, shippedTemplates(t), detailProject(), DetailHandlers{})
	if _, err := d.Render(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(region.Markup(), "Loading") {
		t.Error("first render lacks the loading state")
	}
	if d.ReadmePath() != "unity/dolphin/README.md" {
		t.Errorf("readme path = %q", d.ReadmePath())
	}

	if err := d.LoadContent(context.Background(), testutil.Fetcher(t, root), NewMarkdown()); err != nil {
		t.Fatal(err)
	}
	m := region.Markup()
	if !strings.Contains(m, `<h1 id="overview">Overview</h1>`) || strings.Contains(m, "secret") {
		t.Errorf("markup:\n%s", m)
	}
	if strings.Contains(m, "Loading") {
		t.Error("loading state left behind")
	}
	if !strings.Contains(m, "Dolphin Trainer") || !strings.Contains(m, "15 March 2021") {
		t.Error("descriptor content lost on second render")
	}
}

func TestDetail_LoadContentFailureReplacesRegion(t *testing.T) {
	root, _ := testutil.TestContent(t)
	region := NewRegion("main")
	d := NewDetail(region, shippedTemplates(t), detailProject(), DetailHandlers{})
	if _, err := d.Render(); err != nil {
		t.Fatal(err)
	}

	err := d.LoadContent(context.Background(), testutil.Fetcher(t, root), NewMarkdown())
	if !errors.Is(err, apperr.ErrUnavailable) {
		t.Fatalf("err = %v, want unavailable", err)
	}
	want := `<p class="error-message">Error loading project data for dolphin.</p>`
	if region.Markup() != want {
		t.Errorf("markup = %q, want %q", region.Markup(), want)
	}
}

func TestDetail_StaleLoadDiscarded(t *testing.T) {
	root, _ := testutil.TestContent(t)
	testutil.WriteFile(t, root, "unity/dolphin/README.md", "# Late")

	region := NewRegion("main")
	d := NewDetail(region, shippedTemplates(t), detailProject(), DetailHandlers{})
	if _, err := d.Render(); err != nil {
		t.Fatal(err)
	}
	// The user navigated away before the document arrived.
	region.Replace("<section>gallery</section>")

	err := d.LoadContent(context.Background(), testutil.Fetcher(t, root), NewMarkdown())
	if !errors.Is(err, ErrStale) {
		t.Fatalf("err = %v, want ErrStale", err)
	}
	if region.Markup() != "<section>gallery</section>" {
		t.Errorf("stale detail overwrote region: %q", region.Markup())
	}
}

func TestDetail_CancelledLoadWritesNothing(t *testing.T) {
	root, _ := testutil.TestContent(t)
	region := NewRegion("main")
	d := NewDetail(region, shippedTemplates(t), detailProject(), DetailHandlers{})
	tok, err := d.Render()
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := d.LoadContent(ctx, testutil.Fetcher(t, root), NewMarkdown()); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v", err)
	}
	if region.Token() != tok {
		t.Error("cancelled load touched the region")
	}
}

func TestDetail_ThumbnailsAndLightbox(t *testing.T) {
	root, _ := testutil.TestContent(t)
	testutil.WriteFile(t, root, "unity/dolphin/README.md", "# Doc")

	region := NewRegion("main")
	var opened Media
	d := NewDetail(region, shippedTemplates(t), detailProject(), DetailHandlers{
		OnOpenMedia: func(m Media) error { opened = m; return nil },
	})
	if _, err := d.Render(); err != nil {
		t.Fatal(err)
	}

	if err := region.Dispatch(Event{Action: "thumbnail", Value: "1"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(region.Markup(), `src="https://www.youtube.com/embed/dQw4w9WgXcQ"`) {
		t.Errorf("video not in main view:\n%s", region.Markup())
	}

	// A selection made while the document loads survives the load.
	if err := d.LoadContent(context.Background(), testutil.Fetcher(t, root), NewMarkdown()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(region.Markup(), "youtube.com/embed") {
		t.Error("selection lost after load")
	}

	if err := region.Dispatch(Event{Action: "thumbnail", Value: "7"}); err == nil {
		t.Error("out of range thumbnail accepted")
	}
	if err := region.Dispatch(Event{Action: "open-media", Value: "0"}); err != nil {
		t.Fatal(err)
	}
	if opened.URL != "unity/dolphin/shot.png" {
		t.Errorf("opened = %+v", opened)
	}
}

func TestRenderMessages(t *testing.T) {
	region := NewRegion("main")
	RenderNotFound(region)
	if region.Markup() != `<p class="error-message">Project not found.</p>` {
		t.Errorf("not found = %q", region.Markup())
	}
	RenderFatal(region)
	if !strings.Contains(region.Markup(), MsgFatal) {
		t.Errorf("fatal = %q", region.Markup())
	}
}
