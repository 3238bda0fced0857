// Package content holds the static awareness material: the threat library,
// rotating insights, safety rules and reporting channels.
package content

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// ErrInvalidCatalog is returned when catalog data fails validation.
var ErrInvalidCatalog = errors.New("invalid content catalog")

// Threat describes one category of cyber crime.
type Threat struct {
	ID         string   `yaml:"id"`
	Title      string   `yaml:"title"`
	Summary    string   `yaml:"summary"`
	What       string   `yaml:"what"`
	How        string   `yaml:"how"`
	Example    string   `yaml:"example"`
	Prevention []string `yaml:"prevention"`
}

// Rule is a headline safety principle.
type Rule struct {
	Title string `yaml:"title"`
	Text  string `yaml:"text"`
}

// Helpline is a quick-access contact.
type Helpline struct {
	Label string `yaml:"label"`
	Value string `yaml:"value"`
	Link  string `yaml:"link"`
}

// ReportChannel is a place to file an incident report.
type ReportChannel struct {
	Category string `yaml:"category"`
	Title    string `yaml:"title"`
	Link     string `yaml:"link"`
}

// Catalog is the full set of static content.
type Catalog struct {
	Threats        []Threat        `yaml:"threats"`
	Insights       []string        `yaml:"insights"`
	Rules          []Rule          `yaml:"rules"`
	Checklist      []string        `yaml:"checklist"`
	Helplines      []Helpline      `yaml:"helplines"`
	ReportChannels []ReportChannel `yaml:"report_channels"`
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the embedded catalog. It panics if the embedded data is
// invalid, which is a build defect.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(catalogYAML)
		if err != nil {
			panic(fmt.Sprintf("embedded catalog: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Parse decodes and validates a YAML catalog. Unknown keys are rejected.
func Parse(raw []byte) (*Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)

	var c Catalog
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks that every section is populated and threat IDs are unique.
func (c *Catalog) Validate() error {
	if len(c.Threats) == 0 {
		return fmt.Errorf("%w: no threats", ErrInvalidCatalog)
	}
	if len(c.Insights) == 0 {
		return fmt.Errorf("%w: no insights", ErrInvalidCatalog)
	}
	seen := make(map[string]bool, len(c.Threats))
	for i, t := range c.Threats {
		if t.ID == "" || t.Title == "" {
			return fmt.Errorf("%w: threat %d missing id or title", ErrInvalidCatalog, i)
		}
		if seen[t.ID] {
			return fmt.Errorf("%w: duplicate threat id %q", ErrInvalidCatalog, t.ID)
		}
		seen[t.ID] = true
		if len(t.Prevention) == 0 {
			return fmt.Errorf("%w: threat %q has no prevention tips", ErrInvalidCatalog, t.ID)
		}
	}
	for i, h := range c.Helplines {
		if h.Label == "" || h.Value == "" {
			return fmt.Errorf("%w: helpline %d incomplete", ErrInvalidCatalog, i)
		}
	}
	return nil
}

// Threat returns the threat with the given ID.
func (c *Catalog) Threat(id string) (Threat, bool) {
	for _, t := range c.Threats {
		if t.ID == id {
			return t, true
		}
	}
	return Threat{}, false
}

// Insights cycles through the catalog's insights starting at a random index.
type Insights struct {
	items []string
	idx   int
}

// NewInsights creates a rotator over items. A nil rng uses the global source.
func NewInsights(items []string, rng *rand.Rand) *Insights {
	in := &Insights{items: items}
	if len(items) == 0 {
		return in
	}
	if rng != nil {
		in.idx = rng.IntN(len(items))
	} else {
		in.idx = rand.IntN(len(items))
	}
	return in
}

// Current returns the insight on display, or "" if there are none.
func (in *Insights) Current() string {
	if len(in.items) == 0 {
		return ""
	}
	return in.items[in.idx]
}

// Next advances to the following insight, wrapping at the end.
func (in *Insights) Next() string {
	if len(in.items) == 0 {
		return ""
	}
	in.idx = (in.idx + 1) % len(in.items)
	return in.items[in.idx]
}

// Index returns the position of the current insight.
func (in *Insights) Index() int {
	return in.idx
}
