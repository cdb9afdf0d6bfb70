package catalog

import "testing"

func TestBaseSlug(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Cobogó 40x40", "cobogo-40x40"},
		{"Revestimento Cimentício", "revestimento-cimenticio"},
		{"  Mosaico --- Hexagonal  ", "mosaico-hexagonal"},
		{"Tijolinho (Copy)", "tijolinho-copy"},
	}
	for _, c := range cases {
		if got := BaseSlug(c.name); got != c.want {
			t.Errorf("BaseSlug(%q) = %q, want %q", c.name, got, c.want)
		}
	}
}

func TestIsValidSlug(t *testing.T) {
	valid := []string{"cobogo-40x40", "abc_123", "A-B_c9"}
	invalid := []string{"", "cobogó", "two words", "a/b", "a.b"}
	for _, s := range valid {
		if !IsValidSlug(s) {
			t.Errorf("IsValidSlug(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidSlug(s) {
			t.Errorf("IsValidSlug(%q) = true, want false", s)
		}
	}
}

func TestNeedsSlug(t *testing.T) {
	cases := []struct {
		desc          string
		slug          string
		persistedName string
		name          string
		exists        bool
		want          bool
	}{
		{"empty slug on new product", "", "", "Cobogó", false, true},
		{"invalid characters", "cobogó 40", "Cobogó", "Cobogó", true, true},
		{"name unchanged", "cobogo-40x40", "Cobogó 40x40", "Cobogó 40x40", true, false},
		{"name changed", "cobogo-40x40", "Cobogó 40x40", "Cobogó 60x60", true, true},
		{"valid slug supplied on create", "custom-slug", "", "Whatever", false, false},
	}
	for _, c := range cases {
		if got := NeedsSlug(c.slug, c.persistedName, c.name, c.exists); got != c.want {
			t.Errorf("%s: NeedsSlug = %v, want %v", c.desc, got, c.want)
		}
	}
}

func TestCandidateSlug(t *testing.T) {
	if got := CandidateSlug("cobogo", 0); got != "cobogo" {
		t.Errorf("CandidateSlug n=0 = %q", got)
	}
	if got := CandidateSlug("cobogo", 2); got != "cobogo-2" {
		t.Errorf("CandidateSlug n=2 = %q", got)
	}
}

func TestCopyBase(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Product A", "Product A"},
		{"Product A (Copy)", "Product A"},
		{"Product A (Copy 3)", "Product A"},
		{"Product A (Copy) (Copy 2)", "Product A"},
		{"Copy House", "Copy House"},
	}
	for _, c := range cases {
		if got := CopyBase(c.in); got != c.want {
			t.Errorf("CopyBase(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestCopyName(t *testing.T) {
	if got := CopyName("Product A", 1); got != "Product A (Copy)" {
		t.Errorf("CopyName n=1 = %q", got)
	}
	if got := CopyName("Product A", 2); got != "Product A (Copy 2)" {
		t.Errorf("CopyName n=2 = %q", got)
	}
}
