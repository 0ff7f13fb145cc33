package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mvello/sentigauge/pkg/models"
)

// ════════════════════════════════════════════════════════════════════
// Persisted artifacts — JSON spec, HTML page, raw SVG
// ════════════════════════════════════════════════════════════════════

// EncodeSpec serializes a ChartSpec to indented JSON.
func EncodeSpec(spec *models.ChartSpec) ([]byte, error) {
	if spec == nil {
		return nil, fmt.Errorf("chart spec is nil")
	}
	return json.MarshalIndent(spec, "", "  ")
}

// DecodeSpec parses a ChartSpec from its JSON serialization. Numeric
// values, the title, and the annotation text survive a round trip
// verbatim.
func DecodeSpec(data []byte) (*models.ChartSpec, error) {
	var spec models.ChartSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("decoding chart spec: %w", err)
	}
	return &spec, nil
}

// SaveSpec writes the JSON serialization of the spec to path.
func SaveSpec(spec *models.ChartSpec, path string) error {
	data, err := EncodeSpec(spec)
	if err != nil {
		return err
	}
	return writeFile(path, append(data, '\n'))
}

// LoadSpec reads a ChartSpec previously written by SaveSpec.
func LoadSpec(path string) (*models.ChartSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading chart spec: %w", err)
	}
	return DecodeSpec(data)
}

// WriteHTML renders the spec as a standalone HTML page and writes it
// to path.
func WriteHTML(spec *models.ChartSpec, cfg SVGConfig, path string) error {
	html, err := GenerateHTML(spec, cfg)
	if err != nil {
		return err
	}
	return writeFile(path, []byte(html))
}

// WriteSVG renders the gauge SVG and writes it to path.
func WriteSVG(spec *models.ChartSpec, cfg SVGConfig, path string) error {
	return writeFile(path, []byte(GaugeSVG(spec, cfg)))
}

// writeFile writes data to path, creating parent directories as needed.
func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
