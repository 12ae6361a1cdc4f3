// Package content loads the static copy of the public landing page. Body
// fields are Markdown and are rendered to HTML once at load time.
package content

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	"gopkg.in/yaml.v3"
)

//go:embed landing.yaml
var defaultLanding []byte

type Section struct {
	Title string        `yaml:"title"`
	Body  string        `yaml:"body"`
	HTML  template.HTML `yaml:"-"`
}

type Landing struct {
	Brand string `yaml:"brand"`
	Hero  struct {
		Title   string        `yaml:"title"`
		Body    string        `yaml:"body"`
		Caption string        `yaml:"caption"`
		HTML    template.HTML `yaml:"-"`
	} `yaml:"hero"`
	Features struct {
		Heading    string    `yaml:"heading"`
		Subheading string    `yaml:"subheading"`
		Items      []Section `yaml:"items"`
	} `yaml:"features"`
	Tools struct {
		Caption string        `yaml:"caption"`
		Heading string        `yaml:"heading"`
		Body    string        `yaml:"body"`
		HTML    template.HTML `yaml:"-"`
	} `yaml:"tools"`
	CTA struct {
		Heading string        `yaml:"heading"`
		Body    string        `yaml:"body"`
		HTML    template.HTML `yaml:"-"`
	} `yaml:"cta"`
}

// DefaultLanding parses the embedded landing copy.
func DefaultLanding() (*Landing, error) {
	return ParseLanding(defaultLanding)
}

// ParseLanding decodes YAML landing copy and renders its Markdown bodies.
func ParseLanding(raw []byte) (*Landing, error) {
	var l Landing
	if err := yaml.Unmarshal(raw, &l); err != nil {
		return nil, fmt.Errorf("parse landing content: %w", err)
	}
	if l.Brand == "" {
		return nil, fmt.Errorf("parse landing content: brand is required")
	}

	md := goldmark.New()
	var err error
	if l.Hero.HTML, err = render(md, l.Hero.Body); err != nil {
		return nil, err
	}
	if l.Tools.HTML, err = render(md, l.Tools.Body); err != nil {
		return nil, err
	}
	if l.CTA.HTML, err = render(md, l.CTA.Body); err != nil {
		return nil, err
	}
	for i := range l.Features.Items {
		if l.Features.Items[i].HTML, err = render(md, l.Features.Items[i].Body); err != nil {
			return nil, err
		}
	}
	return &l, nil
}

// render converts Markdown to HTML. goldmark drops raw HTML by default, so
// the output is safe to embed.
func render(md goldmark.Markdown, src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}
