package extract

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// strictBackend accepts only well-formed markup: every element closed,
// attributes quoted, entities known. It fails where a lenient parser would
// silently repair the document, which is what makes fallback meaningful.
type strictBackend struct{}

func (strictBackend) Name() string { return FlavorStrict }

func (strictBackend) Parse(doc []byte) (Document, error) {
	d := xml.NewDecoder(bytes.NewReader(doc))
	d.Strict = true
	d.Entity = xml.HTMLEntity
	// Input is already UTF-8 by the time it reaches a backend.
	d.CharsetReader = func(_ string, r io.Reader) (io.Reader, error) { return r, nil }

	root := &html.Node{Type: html.DocumentNode}
	cur := root
	for {
		tok, err := d.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("strict parse: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			name := strings.ToLower(t.Name.Local)
			n := &html.Node{Type: html.ElementNode, Data: name, DataAtom: atom.Lookup([]byte(name))}
			for _, a := range t.Attr {
				n.Attr = append(n.Attr, html.Attribute{Key: strings.ToLower(a.Name.Local), Val: a.Value})
			}
			cur.AppendChild(n)
			cur = n
		case xml.EndElement:
			if cur.Parent == nil {
				return nil, fmt.Errorf("strict parse: unexpected end element </%s>", t.Name.Local)
			}
			cur = cur.Parent
		case xml.CharData:
			cur.AppendChild(&html.Node{Type: html.TextNode, Data: string(t)})
		}
	}
	if cur != root {
		return nil, fmt.Errorf("strict parse: element <%s> not closed", cur.Data)
	}
	return nodeDocument{root: root}, nil
}
