package seed

import (
	_ "embed"
	"fmt"
	"io"

	"datablog/internal/dto"

	"gopkg.in/yaml.v3"
)

//go:embed fixtures.yml
var defaultFixtures []byte

// Fixtures is the static reference data loaded before any demo content.
type Fixtures struct {
	Roles      []RoleFixture     `yaml:"roles"`
	Categories []CategoryFixture `yaml:"categories"`
	Tags       []TagFixture      `yaml:"tags"`
}

type RoleFixture struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// CategoryFixture is one node of the category tree with its children inline.
type CategoryFixture struct {
	Title     string            `yaml:"title"`
	MetaTitle string            `yaml:"metaTitle"`
	Slug      string            `yaml:"slug"`
	Children  []CategoryFixture `yaml:"children"`
}

type TagFixture struct {
	Title     string `yaml:"title"`
	MetaTitle string `yaml:"metaTitle"`
	Slug      string `yaml:"slug"`
}

func (c CategoryFixture) dto() dto.CategoryDTO {
	return dto.CategoryDTO{Title: c.Title, MetaTitle: c.MetaTitle, Slug: c.Slug}
}

func (t TagFixture) dto() dto.TagDTO {
	return dto.TagDTO{Title: t.Title, MetaTitle: t.MetaTitle, Slug: t.Slug}
}

// LoadFixtures decodes fixtures from YAML.
func LoadFixtures(r io.Reader) (*Fixtures, error) {
	var f Fixtures
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode fixtures: %w", err)
	}
	return &f, nil
}

// DefaultFixtures returns the fixtures embedded in the binary.
func DefaultFixtures() (*Fixtures, error) {
	var f Fixtures
	if err := yaml.Unmarshal(defaultFixtures, &f); err != nil {
		return nil, fmt.Errorf("decode embedded fixtures: %w", err)
	}
	return &f, nil
}
