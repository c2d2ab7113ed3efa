package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/ByLCY/mindexport/binding"
	"github.com/ByLCY/mindexport/errors"
)

// LoadVars reads the variables a .scene file is expanded with. The file is
// JSON, YAML or TOML by extension and must hold a mapping at the top level.
func LoadVars(path string) (binding.Vars, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read vars")
	}
	vars := map[string]any{}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(data, &vars)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &vars)
	case ".toml":
		err = toml.Unmarshal(data, &vars)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "vars %s: unsupported extension %q", path, ext)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse vars %s", path)
	}
	return binding.Vars(vars), nil
}
