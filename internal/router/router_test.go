package router

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync/atomic"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Intent
	}{
		{"", Intent{Kind: KindLanding}},
		{"#", Intent{Kind: KindLanding}},
		{"#/", Intent{Kind: KindLanding}},
		{"#/gallery", Intent{Kind: KindGallery}},
		{"#/gallery/", Intent{Kind: KindGallery}},
		{"#projects", Intent{Kind: KindGallery}},
		{"#/gallery/blender-projects", Intent{Kind: KindGallery, Category: "blender-projects"}},
		{"#/project/dolphin", Intent{Kind: KindDetail, ProjectID: "dolphin"}},
		{"project/dolphin", Intent{Kind: KindDetail, ProjectID: "dolphin"}},
		{"#/project/hl%20dolphin", Intent{Kind: KindDetail, ProjectID: "hl dolphin"}},
		{"#/project", Intent{Kind: KindUnknown, Section: "project"}},
		{"#about", Intent{Kind: KindUnknown, Section: "about"}},
		{"#/contact/me", Intent{Kind: KindUnknown, Section: "contact/me"}},
		{"#/gallery#top", Intent{Kind: KindGallery, Anchor: "top"}},
		{"#/#featured", Intent{Kind: KindLanding, Anchor: "featured"}},
	}
	for _, tt := range tests {
		if got := Parse(tt.in); got != tt.want {
			t.Errorf("Parse(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestIntent_FragmentRoundTrip(t *testing.T) {
	for _, f := range []string{
		"#/",
		"#/gallery",
		"#/gallery/unity-projects",
		"#/project/hl%20dolphin",
		"#/about",
		"#/gallery#top",
	} {
		if got := Parse(f).Fragment(); got != f {
			t.Errorf("Parse(%q).Fragment() = %q", f, got)
		}
	}
	if got := ProjectFragment("a b"); got != "#/project/a%20b" {
		t.Errorf("ProjectFragment = %q", got)
	}
}

func TestIntent_Title(t *testing.T) {
	if got := Parse("#about").Title(); got != "About" {
		t.Errorf("Title = %q, want About", got)
	}
	if got := Parse("#/").Title(); got != "" {
		t.Errorf("landing Title = %q", got)
	}
}

type fakeViewport struct {
	tops    int
	anchors []string
	known   map[string]bool
}

func (v *fakeViewport) ScrollTop() { v.tops++ }

func (v *fakeViewport) ScrollTo(anchor string) bool {
	v.anchors = append(v.anchors, anchor)
	return v.known[anchor]
}

type fakeTimer struct{ stopped atomic.Int32 }

func (f *fakeTimer) Stop() { f.stopped.Add(1) }

func TestRouter_TransitionStopsTimers(t *testing.T) {
	vp := &fakeViewport{}
	var rendered []Kind
	r := New(context.Background(), func(ctx context.Context, in Intent) error {
		rendered = append(rendered, in.Kind)
		return nil
	}, vp, testLogger())

	if _, ok := r.Current(); ok {
		t.Fatal("router reports a current intent before the first transition")
	}

	if _, err := r.Navigate("#/"); err != nil {
		t.Fatal(err)
	}
	slider := &fakeTimer{}
	r.Track(slider)

	if _, err := r.Navigate("#/gallery"); err != nil {
		t.Fatal(err)
	}
	if slider.stopped.Load() != 1 {
		t.Errorf("tracked timer stopped %d times, want 1", slider.stopped.Load())
	}

	// Timers are forgotten once stopped.
	if _, err := r.Navigate("#/"); err != nil {
		t.Fatal(err)
	}
	if slider.stopped.Load() != 1 {
		t.Errorf("timer stopped again on a later transition")
	}

	if len(rendered) != 3 || rendered[1] != KindGallery {
		t.Errorf("rendered = %v", rendered)
	}
	if vp.tops != 3 {
		t.Errorf("scroll resets = %d, want 3", vp.tops)
	}
	if cur, _ := r.Current(); cur.Kind != KindLanding {
		t.Errorf("current = %+v", cur)
	}
}

func TestRouter_AnchorScrollsAfterRender(t *testing.T) {
	vp := &fakeViewport{known: map[string]bool{"featured": true}}
	rendered := false
	r := New(context.Background(), func(ctx context.Context, in Intent) error {
		if len(vp.anchors) != 0 {
			t.Error("scrolled to anchor before render")
		}
		rendered = true
		return nil
	}, vp, testLogger())

	if _, err := r.Navigate("#/#featured"); err != nil {
		t.Fatal(err)
	}
	if !rendered {
		t.Fatal("handler not called")
	}
	if vp.tops != 0 || len(vp.anchors) != 1 || vp.anchors[0] != "featured" {
		t.Errorf("tops=%d anchors=%v", vp.tops, vp.anchors)
	}

	// A missing anchor falls back to the top of the page.
	if _, err := r.Navigate("#/gallery#nowhere"); err != nil {
		t.Fatal(err)
	}
	if vp.tops != 1 {
		t.Errorf("tops = %d after missing anchor, want 1", vp.tops)
	}
}

func TestRouter_NavigationCancelsRender(t *testing.T) {
	started := make(chan struct{})
	cancelled := make(chan struct{})
	var r *Router
	r = New(context.Background(), func(ctx context.Context, in Intent) error {
		if in.Kind != KindDetail {
			return nil
		}
		r.Go(func(ctx context.Context) {
			close(started)
			select {
			case <-ctx.Done():
				close(cancelled)
			case <-time.After(5 * time.Second):
			}
		})
		return nil
	}, nil, testLogger())

	if _, err := r.Navigate("#/project/slow"); err != nil {
		t.Fatal(err)
	}
	<-started
	if _, err := r.Navigate("#/gallery"); err != nil {
		t.Fatal(err)
	}

	select {
	case <-cancelled:
	case <-time.After(time.Second):
		t.Fatal("pending render not cancelled by navigation")
	}
	r.Wait()
}

func TestRouter_HandlerError(t *testing.T) {
	boom := errors.New("boom")
	vp := &fakeViewport{known: map[string]bool{"x": true}}
	r := New(context.Background(), func(ctx context.Context, in Intent) error {
		return boom
	}, vp, testLogger())

	in, err := r.Navigate("#/gallery#x")
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	if in.Kind != KindGallery {
		t.Errorf("intent = %+v", in)
	}
	if len(vp.anchors) != 0 {
		t.Error("scrolled to anchor after a failed render")
	}
}

func TestRouter_Close(t *testing.T) {
	r := New(context.Background(), func(context.Context, Intent) error { return nil }, nil, testLogger())
	if _, err := r.Navigate("#/"); err != nil {
		t.Fatal(err)
	}
	tm := &fakeTimer{}
	r.Track(tm)

	done := make(chan struct{})
	r.Go(func(ctx context.Context) {
		<-ctx.Done()
		close(done)
	})
	r.Close()

	select {
	case <-done:
	default:
		t.Error("Close returned before background render finished")
	}
	if tm.stopped.Load() != 1 {
		t.Error("Close did not stop tracked timers")
	}
}
