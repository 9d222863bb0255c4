package vercel

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed frameworks.yaml
var frameworksYAML []byte

// Framework is a framework preset.
type Framework struct {
	Slug string `yaml:"slug"`
	Name string `yaml:"name"`
	Logo string `yaml:"logo"`
}

// Frameworks maps framework slugs to presets.
type Frameworks struct {
	bySlug   map[string]Framework
	fallback Framework
}

// LoadFrameworks decodes a frameworks table. Exactly one entry must omit
// its slug; it is returned for unknown slugs.
func LoadFrameworks(data []byte) (*Frameworks, error) {
	var doc struct {
		Frameworks []Framework `yaml:"frameworks"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse frameworks: %w", err)
	}

	f := &Frameworks{bySlug: make(map[string]Framework, len(doc.Frameworks))}
	fallbacks := 0
	for _, fw := range doc.Frameworks {
		if fw.Slug == "" {
			f.fallback = fw
			fallbacks++
			continue
		}
		f.bySlug[fw.Slug] = fw
	}
	if fallbacks != 1 {
		return nil, fmt.Errorf("frameworks table must have exactly one entry without slug, found %d", fallbacks)
	}
	return f, nil
}

// DefaultFrameworks returns the embedded table.
func DefaultFrameworks() *Frameworks {
	f, err := LoadFrameworks(frameworksYAML)
	if err != nil {
		panic(err)
	}
	return f
}

// Find returns the preset for slug, or the fallback preset.
func (f *Frameworks) Find(slug string) Framework {
	if fw, ok := f.bySlug[slug]; ok {
		return fw
	}
	return f.fallback
}
