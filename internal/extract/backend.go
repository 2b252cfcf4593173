package extract

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/net/html"
)

// Flavor names accepted in Options.Flavor.
const (
	FlavorStrict  = "strict"
	FlavorGoquery = "goquery"
	FlavorHTML5   = "html5"
)

// DefaultFlavors is the chain used when Options.Flavor is nil: the strict
// parser first, the lenient goquery parser when the markup is not
// well-formed.
var DefaultFlavors = []string{FlavorStrict, FlavorGoquery}

// Backend turns raw markup into a queryable document.
type Backend interface {
	Name() string
	Parse(doc []byte) (Document, error)
}

// Document answers the two element queries the extractor needs.
type Document interface {
	// Tables returns every <table> element in document order.
	Tables() []*html.Node
	// TablesWithAttrs returns the <table> elements whose attributes equal
	// every entry of attrs, in document order.
	TablesWithAttrs(attrs map[string]string) []*html.Node
}

var backends = map[string]func() Backend{
	FlavorStrict:  func() Backend { return strictBackend{} },
	FlavorGoquery: func() Backend { return goqueryBackend{} },
	FlavorHTML5:   func() Backend { return html5Backend{} },
}

// Flavors lists the known flavor names, sorted.
func Flavors() []string {
	names := make([]string, 0, len(backends))
	for n := range backends {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// resolveFlavors maps names to backends, preserving order and dropping
// repeats.
func resolveFlavors(names []string) ([]Backend, error) {
	if len(names) == 0 {
		names = DefaultFlavors
	}
	out := make([]Backend, 0, len(names))
	seen := map[string]bool{}
	for _, raw := range names {
		name := strings.ToLower(strings.TrimSpace(raw))
		mk, ok := backends[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q is not a valid flavor, valid flavors are %s", ErrInvalidArgument, raw, strings.Join(Flavors(), ", "))
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, mk())
	}
	return out, nil
}

// nodeDocument serves queries from an x/net/html tree.
type nodeDocument struct {
	root *html.Node
}

func (d nodeDocument) Tables() []*html.Node {
	return findAll(d.root, "table")
}

func (d nodeDocument) TablesWithAttrs(attrs map[string]string) []*html.Node {
	all := d.Tables()
	if len(attrs) == 0 {
		return all
	}
	out := all[:0:0]
	for _, t := range all {
		if hasAttrs(t, attrs) {
			out = append(out, t)
		}
	}
	return out
}
