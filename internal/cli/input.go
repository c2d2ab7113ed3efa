package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/ByLCY/mindexport/config"
	"github.com/ByLCY/mindexport/dsl"
	"github.com/ByLCY/mindexport/errors"
	"github.com/ByLCY/mindexport/richtext"
	"github.com/ByLCY/mindexport/scene"
)

// loadScene reads an input file by extension: .scene through the DSL, .json
// as a serialized scene, .html as a single node holding that markup.
// varsPath only applies to .scene files.
func loadScene(path, varsPath string) (*scene.Scene, dsl.Settings, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, dsl.Settings{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "open input")
	}
	defer f.Close()

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".scene":
		vars, err := config.LoadVars(varsPath)
		if err != nil {
			return nil, dsl.Settings{}, err
		}
		return dsl.Load(f, dsl.Options{Vars: vars})
	case ".json":
		var s scene.Scene
		if err := json.NewDecoder(f).Decode(&s); err != nil {
			return nil, dsl.Settings{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode scene %s", path)
		}
		return &s, dsl.Settings{Name: s.Name}, nil
	case ".html", ".htm":
		content, err := richtext.ParseHTML(f)
		if err != nil {
			return nil, dsl.Settings{}, err
		}
		s := &scene.Scene{Name: stem, Nodes: []scene.Node{{ID: stem, Content: content}}}
		return s, dsl.Settings{Name: stem}, nil
	default:
		return nil, dsl.Settings{}, errors.New(errors.ErrCodeInvalidFormat, "unsupported input %q (want .scene, .json or .html)", ext)
	}
}
