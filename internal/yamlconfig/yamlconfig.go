// Package yamlconfig overlays a YAML config file onto
// config.Options, the way the teacher pack's own internal/config is
// extended by a CLI --config flag for persistent settings. Only fields
// present in the file override config.Defaults(); an absent file is
// not an error — callers get the defaults back unchanged.
package yamlconfig

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ivylang/ivyc/internal/config"
)

// Load reads path (if it exists) and overlays it onto base. A missing
// file returns base unchanged; a present-but-malformed file is an error.
func Load(path string, base config.Options) (config.Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return base, nil
		}
		return base, err
	}

	out := base
	if err := yaml.Unmarshal(data, &out); err != nil {
		return base, err
	}
	return out.Normalize(), nil
}

// Overlay unmarshals raw YAML bytes onto base, used when the
// caller already has the bytes in hand (e.g. embedded in an RPC
// request) rather than a filesystem path.
func Overlay(data []byte, base config.Options) (config.Options, error) {
	out := base
	if len(data) == 0 {
		return base, nil
	}
	if err := yaml.Unmarshal(data, &out); err != nil {
		return base, err
	}
	return out.Normalize(), nil
}
