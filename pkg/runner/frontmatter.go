package runner

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/marky/pkg/config"
)

// EncodeFrontMatter serializes front matter in the given format.
// Keys come out sorted in both formats.
func EncodeFrontMatter(frontMatter map[string]string, format config.FrontMatterFormat) ([]byte, error) {
	if frontMatter == nil {
		frontMatter = map[string]string{}
	}

	switch format {
	case config.FrontMatterYAML:
		data, err := yaml.Marshal(frontMatter)
		if err != nil {
			return nil, fmt.Errorf("encode front matter yaml: %w", err)
		}
		return data, nil
	case config.FrontMatterJSON:
		data, err := json.MarshalIndent(frontMatter, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode front matter json: %w", err)
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("unsupported front matter format %q", format)
	}
}

func sidecarExt(format config.FrontMatterFormat) string {
	if format == config.FrontMatterJSON {
		return ".meta.json"
	}
	return ".meta.yaml"
}
