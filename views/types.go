// Package views holds helper types and formatting functions shared by the
// templ templates of a Neuron site.
package views

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
}
