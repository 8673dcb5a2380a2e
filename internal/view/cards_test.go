package view

import (
	"testing"

	"github.com/starford/folio/internal/media"
	"github.com/starford/folio/internal/models"
)

func TestPlatformIcon(t *testing.T) {
	tests := map[string]string{
		"Windows":      "fab fa-windows",
		"Meta Quest 3": "fas fa-vr-cardboard",
		"SteamVR":      "fas fa-vr-cardboard",
		"Oculus Rift":  "fas fa-vr-cardboard",
		"Android":      "fab fa-android",
		"WebGL":        "fas fa-globe",
		"PS5":          "fas fa-desktop",
		NotAvailable:   "fas fa-desktop",
	}
	for in, want := range tests {
		if got := PlatformIcon(in); got != want {
			t.Errorf("PlatformIcon(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNewCard(t *testing.T) {
	p := models.Project{
		ID:           "forest",
		Title:        "Forest",
		PreviewImage: "./media/loop.gif",
		BaseDir:      "unity/forest/",
		DevEndDate:   "20-12-2023",
		Platforms:    []string{"Meta Quest", "Windows"},
	}
	c := NewCard(&p)
	if c.Preview != "unity/forest/media/loop.gif" {
		t.Errorf("preview = %q", c.Preview)
	}
	if c.Overlay != media.GIF {
		t.Errorf("overlay = %q, want gif", c.Overlay)
	}
	if c.Year != "2023" || c.Platform != "Meta Quest" || c.PlatformIcon != "fas fa-vr-cardboard" {
		t.Errorf("card = %+v", c)
	}
	if c.DetailURL != "#/project/forest" {
		t.Errorf("detail url = %q", c.DetailURL)
	}

	bare := NewCard(&models.Project{ID: "x", PreviewImage: "https://cdn.example.com/x.png", DevEndDate: "soon"})
	if bare.Platform != NotAvailable || bare.Year != "" || bare.Overlay != "" {
		t.Errorf("bare card = %+v", bare)
	}
}

func TestMediaOf(t *testing.T) {
	p := models.Project{
		PreviewImage: "./preview.jpg",
		BaseDir:      "c/p/",
		Media: []models.MediaItem{
			{URL: "./shot.png", Alt: "shot"},
			{URL: "https://youtu.be/dQw4w9WgXcQ", Alt: "yt"},
			{URL: "https://vimeo.com/76979871", Alt: "vimeo"},
			{URL: "./clip.mp4", Alt: "clip", ThumbnailURL: "./clip.jpg"},
		},
	}
	got := MediaOf(&p, 1)
	if len(got) != 4 {
		t.Fatalf("len = %d", len(got))
	}
	if got[0].URL != "c/p/shot.png" || got[0].Thumb != "c/p/shot.png" || got[0].Type != media.Image {
		t.Errorf("image = %+v", got[0])
	}
	if !got[1].Active || got[0].Active {
		t.Error("active flag not on item 1")
	}
	if got[1].EmbedURL != "https://www.youtube.com/embed/dQw4w9WgXcQ" ||
		got[1].Thumb != "https://img.youtube.com/vi/dQw4w9WgXcQ/hqdefault.jpg" {
		t.Errorf("youtube = %+v", got[1])
	}
	if got[2].EmbedURL != "https://player.vimeo.com/video/76979871" || got[2].Thumb != "c/p/preview.jpg" {
		t.Errorf("vimeo = %+v", got[2])
	}
	if !got[3].IsVideo() || got[3].Thumb != "c/p/clip.jpg" {
		t.Errorf("mp4 = %+v", got[3])
	}
}
