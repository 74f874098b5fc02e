// Package seed ships the first-run studies and the built-in planned
// suggestions, embedded as YAML.
package seed

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/rcliao/research-hub/internal/model"
)

//go:embed data/*.yaml
var files embed.FS

// Research returns a fresh copy of the seed studies.
func Research() []model.Research {
	var out []model.Research
	mustDecode("data/research.yaml", &out)
	for i := range out {
		if out[i].CreatedAt.IsZero() {
			panic(fmt.Sprintf("seed %s: missing createdAt", out[i].ID))
		}
		if out[i].KeyLearnings == nil {
			out[i].KeyLearnings = []string{}
		}
	}
	return out
}

// Suggestions returns the built-in planned studies in their shipped order.
func Suggestions() []model.Suggestion {
	var out []model.Suggestion
	mustDecode("data/planned.yaml", &out)
	return out
}

func mustDecode(name string, v any) {
	b, err := files.ReadFile(name)
	if err != nil {
		panic(fmt.Sprintf("seed: read %s: %v", name, err))
	}
	if err := yaml.Unmarshal(b, v); err != nil {
		panic(fmt.Sprintf("seed: decode %s: %v", name, err))
	}
}
