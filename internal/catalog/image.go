package catalog

import (
	"strings"

	"github.com/estudiocobogo/catalogo-api/internal/model"
)

// PlaceholderImage is returned when a product has no usable image data.
const PlaceholderImage = "/static/images/placeholder.png"

// staticImagesRoot is where bare legacy filenames are assumed to live.
const staticImagesRoot = "/static/images/"

// DisplayImageURL resolves the single thumbnail/list image for a
// product.  The precedence order is strict: image slot 1, slot 2,
// slot 3, then the legacy filename, then the placeholder.  The function
// is pure and never fails; an unusable value in one source simply moves
// resolution to the next.
func DisplayImageURL(p *model.Product) string {
	for _, u := range []string{p.Image1, p.Image2, p.Image3} {
		if s := strings.TrimSpace(u); s != "" {
			return s
		}
	}
	if u := legacyImageURL(p.ImageFilename); u != "" {
		return u
	}
	return PlaceholderImage
}

// legacyImageURL normalizes the free-text image_filename field into a
// servable URL.  Absolute URLs and already static-rooted paths pass
// through untouched; everything else is anchored under the static
// images root.  Empty input yields empty output.
func legacyImageURL(filename string) string {
	name := strings.TrimSpace(filename)
	if name == "" {
		return ""
	}
	switch {
	case strings.HasPrefix(name, "http"):
		return name
	case strings.HasPrefix(name, "/static/"):
		return name
	case strings.HasPrefix(name, "static/"):
		return "/" + name
	case strings.HasPrefix(name, "images/"):
		return "/static/" + name
	}
	return staticImagesRoot + name
}

// GalleryImageURLs collects every present image slot URL in slot order
// for the product-detail gallery.  Only when no slot is filled does the
// legacy filename contribute a single entry, using the plain
// static-root rule without any prefix normalization.
func GalleryImageURLs(p *model.Product) []string {
	var urls []string
	for _, u := range []string{p.Image1, p.Image2, p.Image3} {
		if s := strings.TrimSpace(u); s != "" {
			urls = append(urls, s)
		}
	}
	if len(urls) == 0 && strings.TrimSpace(p.ImageFilename) != "" {
		urls = append(urls, staticImagesRoot+strings.TrimSpace(p.ImageFilename))
	}
	return urls
}
