package pipeline

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/mulnet/pkg/errors"
)

// Pair names two inputs to compare. A is the reference.
type Pair struct {
	Name string `json:"name,omitempty" toml:"name" yaml:"name"`
	A    string `json:"a" toml:"a" yaml:"a"`
	B    string `json:"b" toml:"b" yaml:"b"`
}

// Manifest is a batch of comparisons sharing one set of options.
//
//	[options]
//	threshold = 0.2
//	normalize = true
//	ged_timeout = "5s"
//
//	[[pairs]]
//	name = "rep1"
//	a = "truth/rep1.nwk"
//	b = "inferred/rep1.enwk"
type Manifest struct {
	Options Options `toml:"options" yaml:"options"`
	Pairs   []Pair  `toml:"pairs" yaml:"pairs"`
}

// LoadManifest reads a TOML or YAML manifest, chosen by extension. Relative
// input paths are resolved against the manifest's directory.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read manifest %s", path)
		}
		return nil, err
	}

	var m Manifest
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&m); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse manifest %s", path)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse manifest %s", path)
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "manifest %s: unsupported extension (want .toml, .yaml or .yml)", path)
	}

	if err := m.validate(filepath.Dir(path)); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Manifest) validate(base string) error {
	if len(m.Pairs) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "manifest has no pairs")
	}
	for i := range m.Pairs {
		p := &m.Pairs[i]
		if p.A == "" || p.B == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "pair %d: both a and b are required", i+1)
		}
		if !filepath.IsAbs(p.A) {
			p.A = filepath.Join(base, p.A)
		}
		if !filepath.IsAbs(p.B) {
			p.B = filepath.Join(base, p.B)
		}
	}
	return m.Options.Validate()
}
