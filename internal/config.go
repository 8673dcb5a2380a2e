package internal

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/folio/internal/catalog"
	"github.com/starford/folio/internal/gallery"
	"github.com/starford/folio/internal/site"
	"github.com/starford/folio/internal/view"
)

// Config represents the application configuration.
type Config struct {
	App     ApplicationConfig `yaml:"app"`
	Content ContentConfig     `yaml:"content"`
	Gallery GalleryConfig     `yaml:"gallery"`
	Watch   WatchConfig       `yaml:"watch"`
	Slider  SliderConfig      `yaml:"slider"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return fmt.Errorf("app: %w", err)
	}
	if err := c.Content.Validate(); err != nil {
		return fmt.Errorf("content: %w", err)
	}
	if err := c.Gallery.Validate(); err != nil {
		return fmt.Errorf("gallery: %w", err)
	}
	if err := c.Watch.Validate(); err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	if err := c.Slider.Validate(); err != nil {
		return fmt.Errorf("slider: %w", err)
	}
	return nil
}

// Site returns the part of the configuration the site runtime needs.
func (c *Config) Site() site.Config {
	return site.Config{
		Categories:    c.Content.Categories,
		ViewsDir:      c.Content.Views,
		PageSize:      c.Gallery.PageSize,
		SlideInterval: c.Slider.Interval,
		PausePolicy:   view.PausePolicy(c.Slider.Pause),
	}
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// ContentConfig locates the content tree and lists its categories.
//
// Root is the local directory served by `serve` and read by `browse`
// when BaseURL is empty. With BaseURL set, `browse` fetches everything
// over HTTP instead.
type ContentConfig struct {
	Root       string             `yaml:"root"`
	BaseURL    string             `yaml:"base_url"`
	Timeout    time.Duration      `yaml:"timeout"`
	Views      string             `yaml:"views"`
	Categories []catalog.Category `yaml:"categories"`
}

var errDuplicateCategory = errors.New("duplicate category name")

// Validate validates the content configuration.
func (c *ContentConfig) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Root, validation.When(c.BaseURL == "", validation.Required)),
		validation.Field(&c.Timeout, validation.Min(time.Duration(0))),
		validation.Field(&c.Views, validation.Required),
		validation.Field(&c.Categories, validation.Required),
	); err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(c.Categories))
	for i, cat := range c.Categories {
		if cat.Name == "" {
			return fmt.Errorf("categories[%d]: name cannot be blank", i)
		}
		if _, dup := seen[cat.Name]; dup {
			return fmt.Errorf("categories[%d]: %w %q", i, errDuplicateCategory, cat.Name)
		}
		seen[cat.Name] = struct{}{}
	}
	return nil
}

// GalleryConfig controls the gallery page size.
type GalleryConfig struct {
	PageSize int `yaml:"page_size"`
}

// Validate validates the gallery configuration.
func (c *GalleryConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.PageSize, validation.Required, validation.Min(1)),
	)
}

// WatchConfig controls content reloads in `serve`.
type WatchConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Debounce time.Duration `yaml:"debounce"`
}

// Validate validates the watch configuration.
func (c *WatchConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Debounce, validation.Min(time.Duration(0))),
	)
}

// SliderConfig controls the featured slider on the landing page.
//
// Pause selects what suspends auto-advance: "anywhere" pauses while the
// pointer is over the slider and restarts the full interval on leave;
// "cta" pauses only over a slide's call-to-action and resumes with the
// remaining time.
type SliderConfig struct {
	Interval time.Duration `yaml:"interval"`
	Pause    string        `yaml:"pause"`
}

// Validate validates the slider configuration.
func (c *SliderConfig) Validate() error {
	if c.Pause == "" {
		c.Pause = string(view.PauseAnywhere)
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.Interval, validation.Min(time.Duration(0))),
		validation.Field(&c.Pause, validation.In(string(view.PauseAnywhere), string(view.PauseOnCTA))),
	)
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Content: ContentConfig{
			Root:    "./content",
			Timeout: 10 * time.Second,
			Views:   "views",
		},
		Gallery: GalleryConfig{
			PageSize: gallery.DefaultPageSize,
		},
		Watch: WatchConfig{
			Enabled:  true,
			Debounce: 500 * time.Millisecond,
		},
		Slider: SliderConfig{
			Interval: 5 * time.Second,
			Pause:    string(view.PauseAnywhere),
		},
	}
}
