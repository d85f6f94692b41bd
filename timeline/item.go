package timeline

import "sort"

// Item is one timeline entry: a historical event or concept.
type Item struct {
	ID      string   `json:"id,omitempty"`
	Year    string   `json:"year"`
	EndYear string   `json:"endYear,omitempty"`
	Era     string   `json:"era,omitempty"`
	Title   string   `json:"title"`
	Blurb   string   `json:"blurb"`
	Details string   `json:"details,omitempty"`
	Level   int      `json:"level,omitempty"`
	Domains []string `json:"domains,omitempty"`
	Tags    []string `json:"tags,omitempty"`
	People  []Person `json:"people,omitempty"`
	SeeAlso []string `json:"seeAlso,omitempty"`
	Sources []Source `json:"sources,omitempty"`
	Image   *Image   `json:"image,omitempty"`
}

// Person is someone associated with an item.
type Person struct {
	Name string `json:"name"`
	Link string `json:"link,omitempty"`
	Role string `json:"role,omitempty"`
}

// Source is a reference backing an item.
type Source struct {
	URL   string `json:"url"`
	Label string `json:"label,omitempty"`
}

// Image points at a static asset; Src is root-relative ("/images/x.png").
type Image struct {
	Src     string `json:"src"`
	Alt     string `json:"alt,omitempty"`
	Caption string `json:"caption,omitempty"`
}

// EffectiveLevel is the item's granularity level; items without one are level 1.
func (it Item) EffectiveLevel() int {
	if it.Level <= 0 {
		return 1
	}
	return it.Level
}

// Document is the typed view of a validated content file, in file order.
type Document []Item

// Filter selects items the way the site's filter panel does.
type Filter struct {
	// Domains keeps items sharing at least one domain; empty keeps all.
	Domains []string
	// MaxLevel keeps items whose level is at most MaxLevel; 0 keeps all.
	MaxLevel int
}

// Domains returns the distinct domains used by the document, sorted.
func (d Document) Domains() []string {
	seen := map[string]struct{}{}
	for _, it := range d {
		for _, dom := range it.Domains {
			seen[dom] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for dom := range seen {
		out = append(out, dom)
	}
	sort.Strings(out)
	return out
}

// MaxLevel returns the highest item level, at least 1.
func (d Document) MaxLevel() int {
	top := 1
	for _, it := range d {
		if it.Level > top {
			top = it.Level
		}
	}
	return top
}

// Filter returns the items matching f, preserving order.
func (d Document) Filter(f Filter) Document {
	want := make(map[string]struct{}, len(f.Domains))
	for _, dom := range f.Domains {
		want[dom] = struct{}{}
	}
	out := Document{}
	for _, it := range d {
		if f.MaxLevel > 0 && it.EffectiveLevel() > f.MaxLevel {
			continue
		}
		if len(want) > 0 && !sharesDomain(it, want) {
			continue
		}
		out = append(out, it)
	}
	return out
}

// ByID indexes items by id; items without an id are skipped.
func (d Document) ByID() map[string]Item {
	out := make(map[string]Item, len(d))
	for _, it := range d {
		if it.ID != "" {
			out[it.ID] = it
		}
	}
	return out
}

func sharesDomain(it Item, want map[string]struct{}) bool {
	for _, dom := range it.Domains {
		if _, ok := want[dom]; ok {
			return true
		}
	}
	return false
}
