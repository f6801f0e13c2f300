// Package yaml loads parse vocabularies from YAML files.
//
// A vocabulary file overlays DefaultConfig: fields absent from the file keep
// their defaults, while a present rules list replaces the default rules in
// full so that rule order stays under the file author's control.
package yaml

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/cornellsun/sunreader"
	"gopkg.in/yaml.v3"
)

// LoadConfig decodes a ParseConfig from r and validates it.
// Unknown keys are rejected. An empty document yields DefaultConfig.
func LoadConfig(r io.Reader) (sunreader.ParseConfig, error) {
	cfg := sunreader.DefaultConfig()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return sunreader.ParseConfig{}, sunreader.Errorf(sunreader.EINVALID, "invalid vocabulary: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		return sunreader.ParseConfig{}, err
	}
	return cfg, nil
}

// LoadConfigFile reads and decodes the vocabulary file at path.
func LoadConfigFile(path string) (sunreader.ParseConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return sunreader.ParseConfig{}, sunreader.Errorf(sunreader.ENOTFOUND, "vocabulary file not found: %s", path)
		}
		return sunreader.ParseConfig{}, fmt.Errorf("open vocabulary: %w", err)
	}
	defer func() { _ = f.Close() }()

	return LoadConfig(f)
}
