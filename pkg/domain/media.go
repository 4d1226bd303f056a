package domain

import (
	"net/url"
	"path"
	"strings"
)

// MediaKind classifies what a detected URL points at. Media kinds are
// previewed as the media itself; MediaLink goes through metadata resolution.
type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
	MediaGIF   MediaKind = "gif"
	MediaLink  MediaKind = "url"
)

// extensionKinds maps lowercase file extensions to their media kind.
var extensionKinds = map[string]MediaKind{
	".jpg":  MediaImage,
	".jpeg": MediaImage,
	".png":  MediaImage,
	".webp": MediaImage,
	".mp4":  MediaVideo,
	".webm": MediaVideo,
	".gif":  MediaGIF,
}

// ClassifyMedia derives the media kind from the lowercase file extension of
// the URL path. Unparseable URLs fall back to the raw string; anything
// unrecognized is a plain link.
func ClassifyMedia(rawURL string) MediaKind {
	p := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Path != "" {
		p = u.Path
	}
	if kind, ok := extensionKinds[strings.ToLower(path.Ext(p))]; ok {
		return kind
	}
	return MediaLink
}

// URLMetadata is the resolved preview for one detected URL. For media kinds
// only URL and Kind are set; for MediaLink the open-graph fields are filled
// in on a best-effort basis and may all be empty (the degraded fallback).
type URLMetadata struct {
	URL         string    `json:"url"`
	Kind        MediaKind `json:"type"`
	Title       string    `json:"title,omitempty"`
	Description string    `json:"description,omitempty"`
	Image       string    `json:"image,omitempty"`
	SiteName    string    `json:"siteName,omitempty"`
}
