package cache

import "time"

// Keyer derives cache keys from content hashes and options.
type Keyer interface {
	// CompareKey identifies the metrics of comparing input A with input B.
	CompareKey(hashA, hashB string, opts CompareKeyOpts) string
	// ConvertKey identifies the output of converting one input to a format.
	ConvertKey(inputHash string, opts ConvertKeyOpts) string
}

// CompareKeyOpts are the options that change a comparison result.
type CompareKeyOpts struct {
	Fold             string        `json:"fold"`
	GEDTimeout       time.Duration `json:"ged_timeout"`
	SkipEditDistance bool          `json:"skip_edit_distance"`
}

// ConvertKeyOpts are the options that change a conversion result.
type ConvertKeyOpts struct {
	Fold   string `json:"fold"`
	Format string `json:"format"`
}

// DefaultKeyer hashes its inputs with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// CompareKey returns "compare:<sha256>". The key is order sensitive: comparing
// A with B is not the same as comparing B with A because the reference side
// decides which differences count as false positives.
func (DefaultKeyer) CompareKey(hashA, hashB string, opts CompareKeyOpts) string {
	return hashKey("compare", hashA, hashB, opts)
}

// ConvertKey returns "convert:<sha256>".
func (DefaultKeyer) ConvertKey(inputHash string, opts ConvertKeyOpts) string {
	return hashKey("convert", inputHash, opts)
}

var _ Keyer = DefaultKeyer{}
