package pipeline

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/mulnet/pkg/cache"
	mulerrors "github.com/matzehuels/mulnet/pkg/errors"
	mio "github.com/matzehuels/mulnet/pkg/io"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestRunner(c cache.Cache) *Runner {
	return NewRunner(c, nil, log.NewWithOptions(io.Discard, log.Options{}))
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"newick", false},
		{"enewick", false},
		{"json", false},
		{"svg", true},
		{"Newick", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	var o Options
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if o.GEDTimeout != DefaultGEDTimeout {
		t.Errorf("GEDTimeout = %v, want %v", o.GEDTimeout, DefaultGEDTimeout)
	}
	if o.Workers != DefaultWorkers() {
		t.Errorf("Workers = %d, want %d", o.Workers, DefaultWorkers())
	}
	if o.Logger == nil {
		t.Error("Logger should default to a discarding logger")
	}

	neg := -0.5
	bad := Options{Threshold: &neg}
	if err := bad.ValidateAndSetDefaults(); !mulerrors.Is(err, mulerrors.ErrCodeInvalidConfig) {
		t.Errorf("negative threshold: err = %v, want INVALID_CONFIG", err)
	}
}

func TestFoldKey(t *testing.T) {
	th, norm := 0.2, true
	tests := []struct {
		name string
		opts Options
		want string
	}{
		{"strict", Options{}, "strict"},
		{"relaxed", Options{Threshold: &th, Normalize: &norm}, "relaxed:0.2:true"},
		{"partial", Options{Threshold: &th}, "strict:partial"},
	}
	for _, tt := range tests {
		if got := tt.opts.FoldKey(); got != tt.want {
			t.Errorf("%s: FoldKey() = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestCompareFilesIdentical(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.nwk", "((A,A),B);")
	b := writeFile(t, dir, "b.enwk", "(((A)#H1,#H1),B);")

	rec := newTestRunner(nil).CompareFiles(context.Background(), a, b, Options{})
	if !rec.OK() {
		t.Fatalf("status = %s, error = %s", rec.Status, rec.Error)
	}
	for _, k := range []string{"ret_count_diff", "edit_distance.value", "edit_distance_multree.value", "rf.value", "ploidy_diff.dist"} {
		v, ok := rec.Metrics[k]
		if !ok {
			t.Errorf("metric %s missing", k)
			continue
		}
		if v != 0 {
			t.Errorf("%s = %v, want 0", k, v)
		}
	}
	if rec.Metrics["edit_distance.exact"] != 1 {
		t.Errorf("edit_distance.exact = %v, want 1", rec.Metrics["edit_distance.exact"])
	}
	if rec.CacheHit {
		t.Error("first comparison should not be a cache hit")
	}
}

func TestCompareFilesCached(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.nwk", "((A,A),B);")
	b := writeFile(t, dir, "b.nwk", "((A,B),B);")

	fc, err := cache.NewFileCache(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatal(err)
	}
	r := newTestRunner(fc)
	ctx := context.Background()

	first := r.CompareFiles(ctx, a, b, Options{SkipEditDistance: true})
	if !first.OK() || first.CacheHit {
		t.Fatalf("first: status %s, hit %v, error %s", first.Status, first.CacheHit, first.Error)
	}
	second := r.CompareFiles(ctx, a, b, Options{SkipEditDistance: true})
	if !second.CacheHit {
		t.Error("second comparison should hit the cache")
	}
	for k, v := range first.Metrics {
		if second.Metrics[k] != v {
			t.Errorf("cached %s = %v, want %v", k, second.Metrics[k], v)
		}
	}
	if _, ok := second.Metrics["edit_distance.value"]; ok {
		t.Error("skipped edit distance should not be recorded")
	}

	refreshed := r.CompareFiles(ctx, a, b, Options{SkipEditDistance: true, Refresh: true})
	if refreshed.CacheHit {
		t.Error("Refresh should bypass the cache")
	}
	other := r.CompareFiles(ctx, a, b, Options{})
	if other.CacheHit {
		t.Error("different options should not share a cache entry")
	}
}

func TestCompareFilesErrors(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.nwk", "((A,A),B);")
	bad := writeFile(t, dir, "bad.nwk", "((A,A),B")
	undefined := writeFile(t, dir, "undef.enwk", "((A,#H1),B);")

	tests := []struct {
		name string
		a, b string
		code mulerrors.Code
	}{
		{"missing file", good, filepath.Join(dir, "nope.nwk"), mulerrors.ErrCodeFileNotFound},
		{"parse error", bad, good, mulerrors.ErrCodeParse},
		{"undefined reference", good, undefined, mulerrors.ErrCodeParse},
	}
	r := newTestRunner(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := r.CompareFiles(context.Background(), tt.a, tt.b, Options{})
			if rec.Status != StatusError {
				t.Fatalf("status = %s, want ERROR", rec.Status)
			}
			if rec.ErrorCode != tt.code {
				t.Errorf("code = %s, want %s (%s)", rec.ErrorCode, tt.code, rec.Error)
			}
			if rec.Metrics != nil {
				t.Error("failed record should carry no metrics")
			}
		})
	}
}

func TestCompareFilesPartialParamsWarns(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.nwk", "((A,A),B);")
	th := 0.3
	rec := newTestRunner(nil).CompareFiles(context.Background(), a, a, Options{Threshold: &th, SkipEditDistance: true})
	if !rec.OK() {
		t.Fatalf("status = %s: %s", rec.Status, rec.Error)
	}
	if len(rec.Warnings) == 0 {
		t.Error("partial fold parameters should produce a warning")
	}
}

func TestBuildLogsWarnings(t *testing.T) {
	var buf bytes.Buffer
	r := NewRunner(nil, nil, log.NewWithOptions(&buf, log.Options{}))
	src, err := mio.Load("a.nwk", []byte("((A,A),B);"))
	if err != nil {
		t.Fatal(err)
	}
	th := 0.3
	if _, err := r.Build(context.Background(), src, Options{Threshold: &th}); err != nil {
		t.Fatalf("Build: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "WARN") || !strings.Contains(out, "using strict folding") {
		t.Errorf("log output = %q, want a partial parameters warning", out)
	}
	if !strings.Contains(out, "a.nwk") {
		t.Errorf("log output = %q, want the input name", out)
	}
}

func TestConvert(t *testing.T) {
	src, err := mio.Load("t.nwk", []byte("((A,A),B);"))
	if err != nil {
		t.Fatal(err)
	}
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := newTestRunner(fc)
	ctx := context.Background()

	out, hit, err := r.Convert(ctx, src, FormatENewick, Options{})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if hit {
		t.Error("first conversion should miss the cache")
	}
	if got, want := string(out), "(((A)#H1,#H1),B);\n"; got != want {
		t.Errorf("Convert(enewick) = %q, want %q", got, want)
	}
	if _, hit, _ = r.Convert(ctx, src, FormatENewick, Options{}); !hit {
		t.Error("second conversion should hit the cache")
	}

	back, err := mio.Load("t.enwk", out)
	if err != nil {
		t.Fatal(err)
	}
	nwk, _, err := r.Convert(ctx, back, FormatNewick, Options{})
	if err != nil {
		t.Fatalf("Convert(newick): %v", err)
	}
	if got, want := string(nwk), "((A,A),B);\n"; got != want {
		t.Errorf("Convert(newick) = %q, want %q", got, want)
	}

	if _, _, err := r.Convert(ctx, src, "svg", Options{}); !mulerrors.Is(err, mulerrors.ErrCodeInvalidFormat) {
		t.Errorf("Convert(svg) = %v, want INVALID_FORMAT", err)
	}
}

func TestRunBatch(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.nwk", "((A,A),B);")
	b := writeFile(t, dir, "b.nwk", "((A,B),B);")
	bad := writeFile(t, dir, "bad.nwk", "((")

	pairs := []Pair{
		{Name: "same", A: a, B: a},
		{Name: "diff", A: a, B: b},
		{Name: "broken", A: a, B: bad},
	}
	var seen int
	res, err := newTestRunner(nil).RunBatch(context.Background(), pairs, Options{Workers: 2, SkipEditDistance: true}, func(Record) {
		seen++
	})
	if err != nil {
		t.Fatalf("RunBatch: %v", err)
	}
	if _, err := uuid.Parse(res.RunID); err != nil {
		t.Errorf("RunID %q is not a uuid: %v", res.RunID, err)
	}
	if seen != 3 || len(res.Records) != 3 {
		t.Fatalf("callbacks = %d, records = %d; want 3, 3", seen, len(res.Records))
	}
	for i, rec := range res.Records {
		if rec.Name != pairs[i].Name {
			t.Errorf("record %d name = %s, want %s", i, rec.Name, pairs[i].Name)
		}
		if rec.RunID != res.RunID {
			t.Errorf("record %d run id = %s, want %s", i, rec.RunID, res.RunID)
		}
	}
	if res.Records[2].Status != StatusError {
		t.Errorf("broken pair status = %s, want ERROR", res.Records[2].Status)
	}
	s := res.Summary
	if s.Total != 3 || s.Succeeded != 2 || s.Failed != 1 {
		t.Errorf("summary = %+v", s)
	}
	if s.ErrorCodes[mulerrors.ErrCodeParse] != 1 {
		t.Errorf("error codes = %v, want one PARSE_ERROR", s.ErrorCodes)
	}
	if s.Metrics["rf.value"].N != 2 {
		t.Errorf("rf.value sample size = %d, want 2", s.Metrics["rf.value"].N)
	}
}

func TestRunBatchCancelled(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.nwk", "((A,A),B);")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := newTestRunner(nil).RunBatch(ctx, []Pair{{A: a, B: a}, {A: a, B: a}}, Options{Workers: 1}, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if res == nil || len(res.Records) != 0 {
		t.Errorf("cancelled batch should return an empty result, got %+v", res)
	}
}

func TestSummarize(t *testing.T) {
	records := []Record{
		{Status: StatusSuccess, Metrics: map[string]float64{"rf.value": 2}},
		{Status: StatusSuccess, Metrics: map[string]float64{"rf.value": 4}, CacheHit: true},
		{Status: StatusError, ErrorCode: mulerrors.ErrCodeStructural},
	}
	s := Summarize(records)
	if s.Succeeded != 2 || s.Failed != 1 || s.CacheHits != 1 {
		t.Errorf("counts = %+v", s)
	}
	m := s.Metrics["rf.value"]
	if m.Mean != 3 || m.Min != 2 || m.Max != 4 || m.N != 2 {
		t.Errorf("rf.value = %+v", m)
	}
	if m.StdDev < 1.414 || m.StdDev > 1.415 {
		t.Errorf("rf.value stddev = %v, want ~1.4142", m.StdDev)
	}
	if names := s.MetricNames(); len(names) != 1 || names[0] != "rf.value" {
		t.Errorf("MetricNames = %v", names)
	}

	single := Summarize(records[:1])
	if single.Metrics["rf.value"].StdDev != 0 {
		t.Error("stddev of one value should be 0")
	}
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "runs.toml", `
[options]
threshold = 0.25
normalize = true
ged_timeout = "3s"
workers = 2

[[pairs]]
name = "rep1"
a = "truth/rep1.nwk"
b = "/abs/rep1.enwk"
`)
	writeFile(t, dir, "runs.yaml", `
options:
  skip_edit_distance: true
pairs:
  - name: rep1
    a: a.nwk
    b: b.nwk
`)

	m, err := LoadManifest(filepath.Join(dir, "runs.toml"))
	if err != nil {
		t.Fatalf("LoadManifest(toml): %v", err)
	}
	if len(m.Pairs) != 1 || m.Pairs[0].A != filepath.Join(dir, "truth/rep1.nwk") || m.Pairs[0].B != "/abs/rep1.enwk" {
		t.Errorf("pairs = %+v", m.Pairs)
	}
	if m.Options.FoldKey() != "relaxed:0.25:true" || m.Options.GEDTimeout.Seconds() != 3 || m.Options.Workers != 2 {
		t.Errorf("options = %+v", m.Options)
	}

	y, err := LoadManifest(filepath.Join(dir, "runs.yaml"))
	if err != nil {
		t.Fatalf("LoadManifest(yaml): %v", err)
	}
	if !y.Options.SkipEditDistance || y.Pairs[0].B != filepath.Join(dir, "b.nwk") {
		t.Errorf("yaml manifest = %+v", y)
	}
}

func TestLoadManifestErrors(t *testing.T) {
	dir := t.TempDir()
	empty := writeFile(t, dir, "empty.toml", "[options]\n")
	half := writeFile(t, dir, "half.yaml", "pairs:\n  - a: x.nwk\n")
	ext := writeFile(t, dir, "runs.ini", "")

	tests := []struct {
		path string
		code mulerrors.Code
	}{
		{empty, mulerrors.ErrCodeInvalidConfig},
		{half, mulerrors.ErrCodeInvalidConfig},
		{ext, mulerrors.ErrCodeInvalidFormat},
		{filepath.Join(dir, "missing.toml"), mulerrors.ErrCodeFileNotFound},
	}
	for _, tt := range tests {
		if _, err := LoadManifest(tt.path); !mulerrors.Is(err, tt.code) {
			t.Errorf("LoadManifest(%s) = %v, want %s", filepath.Base(tt.path), err, tt.code)
		}
	}
}
