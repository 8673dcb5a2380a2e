package view

import (
	"strings"
	"testing"

	"github.com/starford/folio/internal/models"
)

func quickLookProject() models.Project {
	return models.Project{
		ID:               "forest",
		Title:            "Forest Walk",
		Tagline:          "Calm VR",
		ShortDescription: "A stroll.",
		Platforms:        []string{"Meta Quest"},
		TechStack:        []string{"Unity", "XRI", "C#", "FMOD"},
		Features:         []string{"a", "b", "c", "d"},
		Duration:         "6 months",
		BaseDir:          "u/forest/",
		PreviewImage:     "./p.jpg",
		Media: []models.MediaItem{
			{URL: "https://vimeo.com/76979871", Alt: "trailer"},
			{URL: "./rain.gif", Alt: "rain"},
		},
	}
}

func TestBuildQuickLook(t *testing.T) {
	p := quickLookProject()
	d := BuildQuickLook(&p, 0)
	if len(d.Features) != 3 {
		t.Errorf("features = %v", d.Features)
	}
	want := []Spec{{"Platforms", "Meta Quest"}, {"Duration", "6 months"}, {"Key Tech", "Unity, XRI, C#..."}}
	for i := range want {
		if d.Specs[i] != want[i] {
			t.Errorf("spec %d = %+v, want %+v", i, d.Specs[i], want[i])
		}
	}
	if d.DetailURL != "#/project/forest" || !d.Thumbnails {
		t.Errorf("quick look = %+v", d)
	}

	p.TechStack = p.TechStack[:2]
	p.Features = nil
	d = BuildQuickLook(&p, 0)
	if d.Specs[2].Value != "Unity, XRI" || len(d.Features) != 0 {
		t.Errorf("short lists = %+v / %v", d.Specs[2], d.Features)
	}
}

func TestQuickLook_CloseContract(t *testing.T) {
	tpl := shippedTemplates(t)
	for _, how := range []string{"close", "backdrop", "escape"} {
		t.Run(how, func(t *testing.T) {
			region := NewRegion("quick-look")
			q := NewQuickLook(region, tpl)
			if err := q.Open(quickLookProject()); err != nil {
				t.Fatal(err)
			}
			if !q.IsOpen() || !strings.Contains(region.Markup(), "player.vimeo.com/video/76979871") {
				t.Fatalf("open failed:\n%s", region.Markup())
			}

			// Clicks inside the content never close.
			if err := region.Dispatch(Event{Action: "content"}); err != nil {
				t.Fatal(err)
			}
			if !q.IsOpen() {
				t.Fatal("content click closed the modal")
			}

			switch how {
			case "escape":
				if !q.Escape() {
					t.Error("Escape reported closed modal")
				}
			default:
				if err := region.Dispatch(Event{Action: how}); err != nil {
					t.Fatal(err)
				}
			}
			if q.IsOpen() {
				t.Error("still open")
			}
			if region.Markup() != "" {
				t.Errorf("embed not torn down: %q", region.Markup())
			}
			if q.Escape() {
				t.Error("Escape on a closed modal reported open")
			}
		})
	}
}

func TestQuickLook_Select(t *testing.T) {
	region := NewRegion("quick-look")
	q := NewQuickLook(region, shippedTemplates(t))
	if err := q.Select(1); err != nil {
		t.Fatalf("select on closed quick look: %v", err)
	}
	if region.Markup() != "" {
		t.Error("select opened a closed quick look")
	}

	if err := q.Open(quickLookProject()); err != nil {
		t.Fatal(err)
	}
	if err := region.Dispatch(Event{Action: "thumbnail", Value: "1"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(region.Markup(), `<img class="ql-main-media-element" src="u/forest/rain.gif" alt="rain">`) {
		t.Errorf("gif not main:\n%s", region.Markup())
	}
	if err := q.Select(5); err == nil {
		t.Error("out of range select accepted")
	}
}

func TestLightbox(t *testing.T) {
	region := NewRegion("lightbox")
	l := NewLightbox(region, shippedTemplates(t))
	p := quickLookProject()
	items := MediaOf(&p, 0)

	if err := l.Open(items[0]); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(region.Markup(), `<iframe class="lightbox-media lightbox-video" src="https://player.vimeo.com/video/76979871"`) {
		t.Errorf("markup:\n%s", region.Markup())
	}
	if err := region.Dispatch(Event{Action: "backdrop"}); err != nil {
		t.Fatal(err)
	}
	if l.IsOpen() || region.Markup() != "" {
		t.Error("backdrop click did not close and clear the lightbox")
	}

	if err := l.Open(items[1]); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(region.Markup(), `<img class="lightbox-media" src="u/forest/rain.gif" alt="rain">`) {
		t.Errorf("markup:\n%s", region.Markup())
	}
}
