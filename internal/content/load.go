package content

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed content.yaml
var defaultDocument []byte

// Links are the booking widget addresses substituted for placeholders.
type Links struct {
	Tour string
	Call string
}

// Default parses the embedded content document.
func Default(links Links) (*Table, error) {
	return Parse(defaultDocument, links)
}

// LoadFile parses a content document from disk. An empty path loads the embedded default.
func LoadFile(path string, links Links) (*Table, error) {
	if strings.TrimSpace(path) == "" {
		return Default(links)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("content: read %s: %w", path, err)
	}
	return Parse(raw, links)
}

// Parse decodes a YAML content document, resolves booking placeholders and
// validates the table.
func Parse(raw []byte, links Links) (*Table, error) {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)

	var table Table
	if err := dec.Decode(&table); err != nil {
		return nil, fmt.Errorf("content: decode: %w", err)
	}
	table.resolveLinks(links)
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return &table, nil
}

// Validate enforces the content invariants: ids present and unique per kind,
// and every story has at least one slide.
func (t *Table) Validate() error {
	seen := make(map[string]struct{}, len(t.Stories))
	for i, s := range t.Stories {
		if strings.TrimSpace(s.ID) == "" {
			return fmt.Errorf("content: story %d: %w", i, ErrMissingID)
		}
		if _, dup := seen[s.ID]; dup {
			return fmt.Errorf("content: story %q: %w", s.ID, ErrDuplicateID)
		}
		seen[s.ID] = struct{}{}
		if len(s.Slides) == 0 {
			return fmt.Errorf("content: story %q: %w", s.ID, ErrNoSlides)
		}
	}

	seen = make(map[string]struct{}, len(t.Posts))
	for i, p := range t.Posts {
		if strings.TrimSpace(p.ID) == "" {
			return fmt.Errorf("content: post %d: %w", i, ErrMissingID)
		}
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("content: post %q: %w", p.ID, ErrDuplicateID)
		}
		seen[p.ID] = struct{}{}
	}

	for i, p := range t.People {
		if strings.TrimSpace(p.ID) == "" {
			return fmt.Errorf("content: person %d: %w", i, ErrMissingID)
		}
	}
	return nil
}

func (t *Table) resolveLinks(links Links) {
	resolve := func(href string) string {
		switch strings.TrimSpace(href) {
		case TourPlaceholder:
			return links.Tour
		case CallPlaceholder:
			return links.Call
		default:
			return href
		}
	}
	for i := range t.Stories {
		for j := range t.Stories[i].Slides {
			if cta := t.Stories[i].Slides[j].CTA; cta != nil {
				cta.Href = resolve(cta.Href)
			}
		}
	}
	for i := range t.Posts {
		p := &t.Posts[i]
		p.PrimaryCTA.Href = resolve(p.PrimaryCTA.Href)
		p.FirstComment.CTAHref = resolve(p.FirstComment.CTAHref)
	}
}
