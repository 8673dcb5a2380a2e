package api

import (
	"github.com/starford/folio/internal/gallery"
	"github.com/starford/folio/internal/media"
	"github.com/starford/folio/internal/models"
	"github.com/starford/folio/internal/router"
)

// CategorySummary is one configured category with its project count.
type CategorySummary struct {
	Name         string `json:"name" example:"unity-projects"`
	Title        string `json:"title" example:"Unity Projects"`
	Platformless bool   `json:"platformless"`
	Projects     int    `json:"projects" example:"12"`
}

// CategoryListResponse wraps the category listing.
type CategoryListResponse struct {
	Categories []CategorySummary `json:"categories"`
	Version    string            `json:"version"`
}

// ProjectPage is one gallery page: the filter state that produced it, the
// page of projects, and the options for the filter controls.
type ProjectPage struct {
	Category string                `json:"category"`
	State    gallery.State         `json:"state"`
	Items    []models.Project      `json:"items"`
	Page     int                   `json:"page"`
	Pages    int                   `json:"totalPages"`
	Total    int                   `json:"total"`
	Filters  gallery.FilterOptions `json:"filters"`
}

// ProjectContent is a project's long-form description rendered to HTML.
type ProjectContent struct {
	ID    string `json:"id"`
	Title string `json:"title,omitempty"`
	HTML  string `json:"html"`
}

// RouteResponse is the parsed form of a location fragment.
type RouteResponse struct {
	router.Intent
	Fragment string `json:"fragment" example:"#/project/dolphin-trainer"`
}

// MediaResponse classifies a media URL.
type MediaResponse struct {
	URL       string     `json:"url"`
	Type      media.Type `json:"type" example:"video"`
	EmbedURL  string     `json:"embedUrl,omitempty"`
	Thumbnail string     `json:"thumbnail,omitempty"`
}
