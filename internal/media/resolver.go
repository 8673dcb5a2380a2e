// Package media classifies media URLs and rewrites external video links
// into their embeddable form.
package media

import (
	"net/url"
	"path"
	"regexp"
	"slices"
	"strings"

	"github.com/starford/folio/internal/models"
)

// Type is the display class of a media URL.
type Type string

const (
	Image Type = "image"
	GIF   Type = "gif"
	Video Type = "video"
)

var (
	youtubeHosts = []string{"youtube.com", "youtu.be"}
	vimeoHosts   = []string{"vimeo.com"}
	videoHosts   = append(slices.Clone(youtubeHosts), vimeoHosts...)
)

var (
	youtubeRe = regexp.MustCompile(`^(?:https?://)?(?:[\w-]+\.)*(?:youtube\.com/(?:[^/\s]+/\S+/|(?:v|e(?:mbed)?|shorts)/|\S*?[?&]v=)|youtu\.be/)([a-zA-Z0-9_-]{11})`)
	vimeoRe   = regexp.MustCompile(`^(?:https?://)?(?:[\w-]+\.)*vimeo\.com/(?:video/)?(\d+)`)
)

// Classify returns Video for known video hosts and .mp4 files, GIF for
// .gif files and Image for everything else.
func Classify(raw string) Type {
	host, p := split(raw)
	if onHost(host, videoHosts) {
		return Video
	}
	switch strings.ToLower(path.Ext(p)) {
	case ".mp4":
		return Video
	case ".gif":
		return GIF
	}
	return Image
}

// TypeOf honours an explicit item type when it is one of the known
// values and falls back to Classify.
func TypeOf(item models.MediaItem) Type {
	switch t := Type(strings.ToLower(item.Type)); t {
	case Image, GIF, Video:
		return t
	}
	return Classify(item.URL)
}

// ToEmbeddable rewrites YouTube and Vimeo URLs to their canonical embed
// URL. Anything unrecognised passes through unchanged.
func ToEmbeddable(raw string) string {
	if id, ok := YouTubeID(raw); ok {
		return "https://www.youtube.com/embed/" + id
	}
	if host, _ := split(raw); onHost(host, vimeoHosts) {
		if m := vimeoRe.FindStringSubmatch(strings.TrimSpace(raw)); m != nil {
			return "https://player.vimeo.com/video/" + m[1]
		}
	}
	return raw
}

// YouTubeID extracts the 11-character video id from any common YouTube
// URL shape. URLs on other hosts never yield an id, even when they
// mention YouTube in their path or query.
func YouTubeID(raw string) (string, bool) {
	if host, _ := split(raw); !onHost(host, youtubeHosts) {
		return "", false
	}
	m := youtubeRe.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return "", false
	}
	return m[1], true
}

// AutoThumbnail returns the host-generated thumbnail of a video URL, when
// the host provides one at a predictable address.
func AutoThumbnail(raw string) (string, bool) {
	id, ok := YouTubeID(raw)
	if !ok {
		return "", false
	}
	return "https://img.youtube.com/vi/" + id + "/hqdefault.jpg", true
}

// ResolveThumbnail picks the image shown for a media item: an explicit
// thumbnail wins, videos try the host thumbnail then fall back to the
// project preview, and images use their own URL.
func ResolveThumbnail(item models.MediaItem, previewImage string) string {
	if item.ThumbnailURL != "" {
		return item.ThumbnailURL
	}
	if TypeOf(item) == Video {
		if thumb, ok := AutoThumbnail(item.URL); ok {
			return thumb
		}
		return previewImage
	}
	return item.URL
}

// onHost reports whether host is one of hosts or a subdomain of one.
func onHost(host string, hosts []string) bool {
	for _, h := range hosts {
		if host == h || strings.HasSuffix(host, "."+h) {
			return true
		}
	}
	return false
}

// split returns the lower-cased host (without www.) and the path of raw.
// Scheme-less input such as "youtu.be/abc" takes its first segment as the
// host; plain relative paths have none.
func split(raw string) (host, p string) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", raw
	}
	p = u.Path
	host = u.Hostname()
	if host == "" && u.Scheme == "" {
		first, _, found := strings.Cut(u.Path, "/")
		if found && strings.Contains(first, ".") && strings.Trim(first, ".") != "" {
			host = first
		}
	}
	return strings.TrimPrefix(strings.ToLower(host), "www."), p
}
