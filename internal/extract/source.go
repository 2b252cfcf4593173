package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/htmlindex"
)

type sourceKind int

const (
	sourceText sourceKind = iota
	sourcePath
	sourceURL
	sourceReader
)

// Source is where a document comes from. Build one with Path, URL, String,
// Reader or Auto.
type Source struct {
	kind sourceKind
	val  string
	r    io.Reader
}

// Path reads the document from a local file.
func Path(p string) Source { return Source{kind: sourcePath, val: p} }

// URL retrieves the document. http and https go through the fetch client,
// file URLs are read from disk, every other scheme is a network error.
func URL(u string) Source { return Source{kind: sourceURL, val: u} }

// String uses s itself as the markup.
func String(s string) Source { return Source{kind: sourceText, val: s} }

// Reader reads the markup from r until EOF.
func Reader(r io.Reader) Source { return Source{kind: sourceReader, r: r} }

// Auto classifies s: anything with a URL scheme is a URL, an existing file
// is a path, everything else is markup.
func Auto(s string) Source {
	if looksLikeURL(s) {
		return URL(s)
	}
	if !strings.ContainsAny(s, "<\n") {
		if fi, err := os.Stat(s); err == nil && !fi.IsDir() {
			return Path(s)
		}
	}
	return String(s)
}

// String describes the source for logs.
func (s Source) String() string {
	switch s.kind {
	case sourcePath:
		return "file " + s.val
	case sourceURL:
		return "url " + s.val
	case sourceReader:
		return "reader"
	}
	return fmt.Sprintf("string (%d bytes)", len(s.val))
}

func looksLikeURL(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, "<> \t\n") {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	// Single letters are Windows drive names, not schemes.
	return len(u.Scheme) > 1 && (u.Host != "" || u.Opaque != "" || u.Path != "")
}

// load returns the document bytes and, for http sources, the response
// content type.
func (s Source) load(ctx context.Context, o *Options) ([]byte, string, error) {
	switch s.kind {
	case sourceText:
		return []byte(s.val), "", nil
	case sourceReader:
		if s.r == nil {
			return nil, "", fmt.Errorf("%w: nil reader", ErrInvalidArgument)
		}
		b, err := io.ReadAll(s.r)
		if err != nil {
			return nil, "", fmt.Errorf("reading source: %w", err)
		}
		return b, "", nil
	case sourcePath:
		b, err := os.ReadFile(s.val)
		if err != nil {
			return nil, "", fmt.Errorf("opening file: %w", err)
		}
		return b, "", nil
	case sourceURL:
		u, err := url.Parse(s.val)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %w", ErrNetwork, err)
		}
		if strings.EqualFold(u.Scheme, "file") {
			p := filepath.FromSlash(u.Path)
			b, err := os.ReadFile(p)
			if err != nil {
				return nil, "", fmt.Errorf("%w: %w", ErrNetwork, err)
			}
			return b, "", nil
		}
		b, ct, err := o.client().Get(ctx, s.val)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %w", ErrNetwork, err)
		}
		return b, ct, nil
	}
	return nil, "", fmt.Errorf("%w: unknown source", ErrInvalidArgument)
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decode converts b to UTF-8. A forced encoding wins; otherwise the BOM,
// the content type and <meta> declarations are consulted.
func decode(b []byte, contentType, forced string) ([]byte, error) {
	if forced != "" {
		enc, err := htmlindex.Get(forced)
		if err != nil {
			return nil, fmt.Errorf("%w: unknown encoding %q", ErrInvalidArgument, forced)
		}
		out, err := enc.NewDecoder().Bytes(b)
		if err != nil {
			return nil, fmt.Errorf("%w: decoding as %s: %w", ErrParse, forced, err)
		}
		return bytes.TrimPrefix(out, utf8BOM), nil
	}
	enc, name, certain := charset.DetermineEncoding(b, contentType)
	// Valid UTF-8 beats an uncertain guess, which is usually a stale <meta>.
	if name == "utf-8" || enc == nil || (!certain && utf8.Valid(b)) {
		return bytes.TrimPrefix(b, utf8BOM), nil
	}
	out, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return nil, fmt.Errorf("%w: decoding as %s: %w", ErrParse, name, err)
	}
	return bytes.TrimPrefix(out, utf8BOM), nil
}
