package suite

import (
	"bytes"
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
	"github.com/mitchellh/mapstructure"

	"github.com/karupanerura/exprsuite/internal/types"
)

func ParseSuiteYAML(r io.Reader) (*Suite, error) {
	yamlBytes, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("io.ReadAll: %w", err)
	}

	jsonBytes, err := yaml.YAMLToJSON(yamlBytes)
	if err != nil {
		return nil, fmt.Errorf("yaml.YAMLToJSON: %w", err)
	}

	return ParseSuiteJSON(bytes.NewReader(jsonBytes))
}

func ParseSuiteJSON(r io.Reader) (*Suite, error) {
	decoder := json.NewDecoder(r)
	decoder.UseNumber()

	var defs []map[string]any
	if err := decoder.Decode(&defs); err != nil {
		return nil, fmt.Errorf("json.Decode: %w", err)
	}

	return compileSuite(defs)
}

type entryDef struct {
	Name       string         `json:"name" mapstructure:"name"`
	Expression string         `json:"expression" mapstructure:"expression"`
	Symbols    map[string]any `json:"symbols" mapstructure:"symbols"`
}

func compileSuite(defs []map[string]any) (*Suite, error) {
	s := Suite{
		Entries: make([]*Entry, len(defs)),
	}
	for i, raw := range defs {
		entry, err := compileEntry(raw)
		if err != nil {
			return nil, fmt.Errorf("entry[%d]: %w", i, err)
		}
		s.Entries[i] = entry
	}
	return &s, nil
}

func compileEntry(raw map[string]any) (*Entry, error) {
	var def entryDef
	if err := mapstructure.Decode(raw, &def); err != nil {
		return nil, fmt.Errorf("mapstructure.Decode: %w", err)
	}
	if def.Expression == "" {
		return nil, fmt.Errorf("expression is required")
	}

	symbols := make(map[string]any, len(def.Symbols))
	for name, value := range def.Symbols {
		v, err := types.NormalizeNumber(value)
		if err != nil {
			return nil, fmt.Errorf("symbol %q: %w", name, err)
		}
		symbols[name] = v
	}

	name := def.Name
	if name == "" {
		name = def.Expression
	}

	return &Entry{
		Name:    name,
		Source:  def.Expression,
		symbols: symbols,
	}, nil
}
