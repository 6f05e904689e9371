package io

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/mulnet/pkg/errors"
	"github.com/matzehuels/mulnet/pkg/network"
	"github.com/matzehuels/mulnet/pkg/reticulate"
)

// Source is an input file ready to be built into a [reticulate.ReticulateTree].
type Source struct {
	Name  string
	Data  []byte
	Input reticulate.Input
}

// IsJSON reports whether data named name should be read as a JSON graph.
func IsJSON(name string, data []byte) bool {
	if strings.EqualFold(filepath.Ext(name), ".json") {
		return true
	}
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

// LoadFile reads path and classifies its content.
func LoadFile(path string) (*Source, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Load(path, data)
}

// Load classifies data that was read from name. Text inputs are not parsed
// until the returned Input is built; JSON graphs are decoded and validated
// here, so a cyclic graph fails with STRUCTURAL_ERROR.
func Load(name string, data []byte) (*Source, error) {
	src := &Source{Name: name, Data: data}
	if !IsJSON(name, data) {
		text := strings.TrimSpace(string(data))
		if text == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "%s is empty", name)
		}
		src.Input = reticulate.Text(text)
		return src, nil
	}

	g, err := ReadJSON(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	n, err := network.New(g)
	if err != nil {
		return nil, err
	}
	src.Input = reticulate.Graph(n)
	return src, nil
}
