package catalog

import (
	"reflect"
	"testing"

	"github.com/estudiocobogo/catalogo-api/internal/model"
)

func TestDisplayImageURLPrecedence(t *testing.T) {
	cases := []struct {
		desc string
		p    model.Product
		want string
	}{
		{
			"slot 1 wins over everything",
			model.Product{Image1: "https://cdn.example.com/a.jpg", Image2: "https://cdn.example.com/b.jpg", ImageFilename: "foo.png"},
			"https://cdn.example.com/a.jpg",
		},
		{
			"blank slot 1 falls through to slot 2",
			model.Product{Image1: "   ", Image2: "https://cdn.example.com/b.jpg"},
			"https://cdn.example.com/b.jpg",
		},
		{
			"slot 3 used when 1 and 2 empty",
			model.Product{Image3: "https://cdn.example.com/c.jpg"},
			"https://cdn.example.com/c.jpg",
		},
		{
			"legacy bare filename",
			model.Product{ImageFilename: "foo.png"},
			"/static/images/foo.png",
		},
		{
			"legacy images/ prefix",
			model.Product{ImageFilename: "images/foo.png"},
			"/static/images/foo.png",
		},
		{
			"legacy static/ prefix gains leading slash",
			model.Product{ImageFilename: "static/images/foo.png"},
			"/static/images/foo.png",
		},
		{
			"legacy absolute static path verbatim",
			model.Product{ImageFilename: "/static/images/foo.png"},
			"/static/images/foo.png",
		},
		{
			"legacy absolute URL verbatim",
			model.Product{ImageFilename: "https://cdn.example.com/foo.png"},
			"https://cdn.example.com/foo.png",
		},
		{
			"nothing at all -> placeholder",
			model.Product{},
			PlaceholderImage,
		},
	}
	for _, c := range cases {
		if got := DisplayImageURL(&c.p); got != c.want {
			t.Errorf("%s: DisplayImageURL = %q, want %q", c.desc, got, c.want)
		}
	}
}

func TestGalleryImageURLs(t *testing.T) {
	p := model.Product{
		Image1:        "https://cdn.example.com/a.jpg",
		Image3:        "https://cdn.example.com/c.jpg",
		ImageFilename: "foo.png",
	}
	got := GalleryImageURLs(&p)
	want := []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/c.jpg"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("GalleryImageURLs = %v, want %v", got, want)
	}

	// Legacy filename only contributes when every slot is empty, and it
	// uses the plain static-root rule without prefix normalization.
	legacy := model.Product{ImageFilename: "foo.png"}
	got = GalleryImageURLs(&legacy)
	want = []string{"/static/images/foo.png"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("GalleryImageURLs legacy = %v, want %v", got, want)
	}

	if got := GalleryImageURLs(&model.Product{}); len(got) != 0 {
		t.Errorf("GalleryImageURLs empty product = %v, want empty", got)
	}
}
