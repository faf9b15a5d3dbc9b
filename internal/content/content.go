// Package content loads the text the foundation page shows: FAQ panels,
// events, featured banners and the choices offered by the forms.
package content

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// Content is the page content.
type Content struct {
	Site      string     `yaml:"site"`
	FAQ       []Panel    `yaml:"faq"`
	Events    []Event    `yaml:"events"`
	Featured  []Banner   `yaml:"featured"`
	Stats     []Stat     `yaml:"stats"`
	Amounts   []string   `yaml:"amounts"`
	States    []string   `yaml:"states"`
	Interests []Interest `yaml:"interests"`
}

// Panel is one FAQ entry.
type Panel struct {
	ID       string `yaml:"id"`
	Question string `yaml:"question"`
	Answer   string `yaml:"answer"`
}

// Event is one slide of the events carousel.
type Event struct {
	Title    string `yaml:"title"`
	Date     string `yaml:"date"`
	Location string `yaml:"location"`
	Summary  string `yaml:"summary"`
}

// Banner is one slide of the site-wide featured rotator.
type Banner struct {
	Title string `yaml:"title"`
	Text  string `yaml:"text"`
	Link  string `yaml:"link"`
}

// Stat is a headline number.
type Stat struct {
	Label  string `yaml:"label"`
	Target int    `yaml:"target"`
}

// Interest is one volunteer checkbox. Field is the form field name.
type Interest struct {
	Field string `yaml:"field"`
	Label string `yaml:"label"`
}

// Default returns the built-in content.
func Default() (*Content, error) {
	return Parse(bytes.NewReader(defaultYAML))
}

// Load reads content from path, or the built-in content when path is empty.
func Load(path string) (*Content, error) {
	if path == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening content %s: %w", path, err)
	}
	defer f.Close()

	c, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("content %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates content. Unknown keys are rejected.
func Parse(r io.Reader) (*Content, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var c Content
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("decoding content: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate rejects content the widgets cannot be built from.
func (c *Content) Validate() error {
	var errs []error

	seen := make(map[string]bool, len(c.FAQ))
	for i, p := range c.FAQ {
		switch {
		case strings.TrimSpace(p.ID) == "":
			errs = append(errs, fmt.Errorf("faq[%d]: id is required", i))
		case seen[p.ID]:
			errs = append(errs, fmt.Errorf("faq[%d]: duplicate id %q", i, p.ID))
		}
		seen[p.ID] = true
		if strings.TrimSpace(p.Question) == "" {
			errs = append(errs, fmt.Errorf("faq[%d]: question is required", i))
		}
	}
	for i, e := range c.Events {
		if strings.TrimSpace(e.Title) == "" {
			errs = append(errs, fmt.Errorf("events[%d]: title is required", i))
		}
	}
	for i, b := range c.Featured {
		if strings.TrimSpace(b.Title) == "" {
			errs = append(errs, fmt.Errorf("featured[%d]: title is required", i))
		}
	}
	for i, in := range c.Interests {
		if strings.TrimSpace(in.Field) == "" {
			errs = append(errs, fmt.Errorf("interests[%d]: field is required", i))
		}
	}
	if len(c.Amounts) == 0 {
		errs = append(errs, errors.New("amounts: at least one donation amount is required"))
	}

	return errors.Join(errs...)
}

// PanelIDs returns the FAQ ids in page order.
func (c *Content) PanelIDs() []string {
	ids := make([]string, len(c.FAQ))
	for i, p := range c.FAQ {
		ids[i] = p.ID
	}
	return ids
}

// InterestFields returns the volunteer checkbox field names.
func (c *Content) InterestFields() []string {
	fields := make([]string, len(c.Interests))
	for i, in := range c.Interests {
		fields[i] = in.Field
	}
	return fields
}
