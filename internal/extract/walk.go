package extract

import (
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// findAll collects every element named tag below n in document order.
func findAll(n *html.Node, tag string) []*html.Node {
	var res []*html.Node
	var dfs func(*html.Node)
	dfs = func(cur *html.Node) {
		if cur.Type == html.ElementNode && strings.EqualFold(cur.Data, tag) {
			res = append(res, cur)
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			dfs(c)
		}
	}
	dfs(n)
	return res
}

// hasAttrs reports whether n carries every key with exactly the given value.
func hasAttrs(n *html.Node, attrs map[string]string) bool {
	for k, want := range attrs {
		got, ok := attr(n, k)
		if !ok || got != want {
			return false
		}
	}
	return true
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val, true
		}
	}
	return "", false
}

// textOf returns the whitespace-collapsed text below n.
func textOf(n *html.Node) string {
	var b strings.Builder
	collectText(&b, n)
	return collapseSpaces(b.String())
}

func collectText(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.ElementNode:
		switch strings.ToLower(n.Data) {
		case "script", "style", "noscript", "template":
			return
		case "br":
			b.WriteByte(' ')
			return
		}
	case html.CommentNode:
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(b, c)
	}
	// Keep neighbouring cells and blocks apart.
	if n.Type == html.ElementNode {
		switch strings.ToLower(n.Data) {
		case "td", "th", "tr", "caption", "p", "div", "li":
			b.WriteByte(' ')
		}
	}
}

// collapseSpaces folds every run of Unicode white space, including
// non-breaking spaces, into one ASCII space and trims both ends.
func collapseSpaces(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	pending := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			pending = b.Len() > 0
			continue
		}
		if pending {
			b.WriteByte(' ')
			pending = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
