package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// html5Backend uses the x/net/html tree builder, which repairs malformed
// markup the way browsers do.
type html5Backend struct{}

func (html5Backend) Name() string { return FlavorHTML5 }

func (html5Backend) Parse(doc []byte) (Document, error) {
	root, err := html.Parse(bytes.NewReader(doc))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return nodeDocument{root: root}, nil
}

// goqueryBackend answers queries with goquery selections.
type goqueryBackend struct{}

func (goqueryBackend) Name() string { return FlavorGoquery }

func (goqueryBackend) Parse(doc []byte) (Document, error) {
	d, err := goquery.NewDocumentFromReader(bytes.NewReader(doc))
	if err != nil {
		return nil, fmt.Errorf("goquery: %w", err)
	}
	return goqueryDocument{doc: d}, nil
}

type goqueryDocument struct {
	doc *goquery.Document
}

func (d goqueryDocument) Tables() []*html.Node {
	return d.doc.Find("table").Nodes
}

func (d goqueryDocument) TablesWithAttrs(attrs map[string]string) []*html.Node {
	sel := d.doc.Find("table")
	if len(attrs) == 0 {
		return sel.Nodes
	}
	return sel.FilterFunction(func(_ int, s *goquery.Selection) bool {
		for k, want := range attrs {
			got, ok := s.Attr(strings.ToLower(k))
			if !ok || got != want {
				return false
			}
		}
		return true
	}).Nodes
}
