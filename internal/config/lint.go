package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	gotoml "github.com/pelletier/go-toml/v2"
)

// Lint decodes path strictly. Keys Load would silently ignore, such as a
// misspelled option, are reported with their position.
func Lint(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config lint: %w", err)
	}

	dec := gotoml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var raw fileConfig
	if err := dec.Decode(&raw); err != nil {
		var strict *gotoml.StrictMissingError
		if errors.As(err, &strict) {
			return fmt.Errorf("config lint (%s): unknown keys\n%s", path, strict.String())
		}
		return fmt.Errorf("config lint (%s): %w", path, err)
	}
	return nil
}
