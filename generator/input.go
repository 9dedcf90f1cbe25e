package generator

import (
	"fmt"
	"os"
)

// InputError reports a PRD file that could not be read.
type InputError struct {
	Path string
	Err  error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("Failed to read file %q: %v", e.Path, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

// LoadInput reads the whole PRD file. The content is returned unchanged.
func LoadInput(path string) (string, error) {
	if path == "" {
		return "", &InputError{Path: path, Err: os.ErrNotExist}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &InputError{Path: path, Err: err}
	}
	return string(data), nil
}
