// Package prompts holds the embedded catalog of demo prompt texts, so
// the commands share one source of truth for wording.
package prompts

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed prompts.yaml
var raw []byte

type Catalog struct {
	prompts map[string]string
}

func Load() (*Catalog, error) {
	prompts := make(map[string]string)
	if err := yaml.Unmarshal(raw, &prompts); err != nil {
		return nil, fmt.Errorf("failed to parse prompt catalog: %w", err)
	}
	return &Catalog{prompts: prompts}, nil
}

func (c *Catalog) Get(key string) (string, error) {
	text, ok := c.prompts[key]
	if !ok {
		return "", fmt.Errorf("unknown prompt %q", key)
	}
	return text, nil
}

// MustGet looks up a key known at compile time; a miss means the
// catalog and the commands drifted apart.
func (c *Catalog) MustGet(key string) string {
	text, err := c.Get(key)
	if err != nil {
		panic(err)
	}
	return text
}
