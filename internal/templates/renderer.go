// Package templates generates reminder text: SMS options, channel/tone
// reminders, printable reminder cards and cancellation policies. Every
// generator is a pure function of its input.
package templates

import (
	"bytes"
	"fmt"
	"sort"
	"text/template"
)

// Renderer renders a fixed set of named text templates with strict
// missing-key semantics.
type Renderer struct {
	root *template.Template
}

// NewRenderer parses every source up front so rendering never hits a parse error.
func NewRenderer(sources map[string]string) (*Renderer, error) {
	if len(sources) == 0 {
		return nil, fmt.Errorf("templates: template text required")
	}
	names := make([]string, 0, len(sources))
	for name := range sources {
		names = append(names, name)
	}
	sort.Strings(names)

	root := template.New("root").Option("missingkey=error")
	for _, name := range names {
		if sources[name] == "" {
			return nil, fmt.Errorf("templates: %s: template text required", name)
		}
		if _, err := root.New(name).Parse(sources[name]); err != nil {
			return nil, fmt.Errorf("templates: parse %s: %w", name, err)
		}
	}
	return &Renderer{root: root}, nil
}

func mustRenderer(sources map[string]string) *Renderer {
	r, err := NewRenderer(sources)
	if err != nil {
		panic(err)
	}
	return r
}

// Has reports whether a template with the given name was registered.
func (r *Renderer) Has(name string) bool {
	return r != nil && r.root.Lookup(name) != nil
}

// Render executes the named template against data.
func (r *Renderer) Render(name string, data any) (string, error) {
	if !r.Has(name) {
		return "", fmt.Errorf("templates: unknown template %q", name)
	}
	var buf bytes.Buffer
	if err := r.root.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("templates: execute: %w", err)
	}
	return buf.String(), nil
}
