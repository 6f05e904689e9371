package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mulnet/pkg/pipeline"
)

func TestSortedMetricKeys(t *testing.T) {
	m := map[string]float64{
		"rf.value":              1,
		"edit_distance.value":   2,
		"ret_count_diff":        0,
		"ploidy_diff.TP":        3,
		"ret_leaf_jaccard.dist": 0.5,
		"zzz":                   9,
	}
	got := sortedMetricKeys(m)
	want := []string{"ret_count_diff", "ploidy_diff.TP", "ret_leaf_jaccard.dist", "rf.value", "edit_distance.value", "zzz"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("sortedMetricKeys = %v, want %v", got, want)
	}
}

func TestFormatMetric(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{0, "0"},
		{3, "3"},
		{-2, "-2"},
		{0.25, "0.2500"},
		{1.0 / 3, "0.3333"},
	}
	for _, tt := range tests {
		if got := formatMetric(tt.v); got != tt.want {
			t.Errorf("formatMetric(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestPrintRecord(t *testing.T) {
	var buf bytes.Buffer
	printRecord(&buf, pipeline.Record{
		A: "a.nwk", B: "b.nwk",
		Status:   pipeline.StatusSuccess,
		Metrics:  map[string]float64{"rf.value": 2},
		Warnings: []string{"reticulation r0 has 3 parents"},
	})
	out := buf.String()
	for _, want := range []string{"a.nwk", "rf.value", "2", "3 parents", "fresh"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	printRecord(&buf, pipeline.Record{A: "a", B: "b", Status: pipeline.StatusError, ErrorCode: "PARSE_ERROR", Error: "missing ';'"})
	if !strings.Contains(buf.String(), "PARSE_ERROR") {
		t.Errorf("error output should carry the code:\n%s", buf.String())
	}
}

func TestSearchLogger(t *testing.T) {
	var buf bytes.Buffer
	ctx := withLogger(context.Background(), newLogger(&buf, log.DebugLevel))
	s := newSearchLogger(ctx, 0)

	s.onProgress(0, 0, -1)
	if buf.Len() != 0 {
		t.Error("no solution yet should not log")
	}
	s.onProgress(10, 2, 7)
	s.onProgress(20, 5, 4)
	s.onProgress(30, 9, 4)

	out := buf.String()
	if !strings.Contains(out, "Initial: edit cost 7") {
		t.Errorf("missing initial line:\n%s", out)
	}
	if !strings.Contains(out, "Improved: edit cost 4") {
		t.Errorf("missing improvement line:\n%s", out)
	}
	if strings.Count(out, "\n") != 2 {
		t.Errorf("unchanged cost before the heartbeat should not log:\n%s", out)
	}
}
