// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package profile loads the site owner's profile shown on the About page
// and in the blog header. A default profile is embedded in the binary; an
// operator can replace it with a YAML file.
package profile

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed site.yaml
var defaultSite []byte

// DefaultPhotoFallback is shown when the profile photo fails to load.
const DefaultPhotoFallback = "https://placehold.co/300x300/EFEFEF/333333?text=NN"

// Link is a labelled navigation, action or social link.
type Link struct {
	Label   string `yaml:"label"`
	URL     string `yaml:"url"`
	Icon    string `yaml:"icon"`
	Primary bool   `yaml:"primary"`
}

// Profile is the site owner's public profile.
type Profile struct {
	Name          string `yaml:"name"`
	SiteTitle     string `yaml:"site_title"`
	Role          string `yaml:"role"`
	RoleAccent    string `yaml:"role_accent"`
	Tagline       string `yaml:"tagline"`
	Photo         string `yaml:"photo"`
	PhotoAlt      string `yaml:"photo_alt"`
	PhotoFallback string `yaml:"photo_fallback"`
	Bio           string `yaml:"bio"` // markdown
	Nav           []Link `yaml:"nav"`
	Actions       []Link `yaml:"actions"`
	Social        []Link `yaml:"social"`
}

// Default returns the embedded profile.
func Default() (*Profile, error) {
	return Parse(defaultSite)
}

// Load reads a profile from path. An empty path returns the embedded
// default.
func Load(path string) (*Profile, error) {
	if path == "" {
		return Default()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile %s: %w", path, err)
	}
	p, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", path, err)
	}
	return p, nil
}

// Parse decodes and validates a YAML profile.
func Parse(b []byte) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(b, &p); err != nil {
		return nil, fmt.Errorf("unmarshal profile: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("validate profile: %w", err)
	}
	return &p, nil
}

// Validate checks required fields and fills in defaults.
func (p *Profile) Validate() error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return errors.New("name is required")
	}
	if p.SiteTitle == "" {
		p.SiteTitle = p.Name
	}
	if p.PhotoFallback == "" {
		p.PhotoFallback = DefaultPhotoFallback
	}
	if p.Photo == "" {
		p.Photo = p.PhotoFallback
	}
	if p.PhotoAlt == "" {
		p.PhotoAlt = p.Name
	}
	for i, l := range append(append(append([]Link{}, p.Nav...), p.Actions...), p.Social...) {
		if strings.TrimSpace(l.Label) == "" {
			return fmt.Errorf("link %d has no label", i)
		}
		if l.URL == "" {
			return fmt.Errorf("link %q has no url", l.Label)
		}
	}
	return nil
}

// Headline returns the role line shown under the name, e.g.
// "AI Software Engineer".
func (p *Profile) Headline() string {
	return strings.TrimSpace(p.Role + " " + p.RoleAccent)
}
