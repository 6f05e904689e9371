package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/mulnet/pkg/pipeline"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	// StyleError for failed records.
	StyleError = lipgloss.NewStyle().Foreground(colorRed)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleHeader = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printError(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconError.Render(iconError)+" "+fmt.Sprintf(format, args...))
}

func printWarning(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

// printDetail prints an indented dim line.
func printDetail(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a file output line.
func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

func printKeyValue(w io.Writer, key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Fprintln(w, keyStyle.Render(key)+" "+StyleValue.Render(value))
}

// cacheStatus renders the cached/fresh marker.
func cacheStatus(cached bool) string {
	if cached {
		return styleCached.Render(iconCached)
	}
	return styleComputed.Render(iconFresh)
}

// =============================================================================
// Tables
// =============================================================================

// metricGroups orders the metric table; keys not listed sort last.
var metricGroups = []string{
	"ret_count_diff",
	"ploidy_diff",
	"ret_leaf_jaccard",
	"ret_sisters_jaccard",
	"rf",
	"edit_distance",
	"edit_distance_multree",
}

func metricRank(key string) int {
	group, _, _ := strings.Cut(key, ".")
	for i, g := range metricGroups {
		if g == group {
			return i
		}
	}
	return len(metricGroups)
}

func sortedMetricKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ri, rj := metricRank(keys[i]), metricRank(keys[j])
		if ri != rj {
			return ri < rj
		}
		return keys[i] < keys[j]
	})
	return keys
}

func formatMetric(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.4f", v)
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 { // header
				return styleHeader.Padding(0, 1)
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorGray).Padding(0, 1)
			}
			return lipgloss.NewStyle().Foreground(colorWhite).Padding(0, 1)
		})
}

// renderMetrics renders one record's metrics as a two-column table.
func renderMetrics(m map[string]float64) string {
	t := newTable("Metric", "Value")
	for _, k := range sortedMetricKeys(m) {
		t.Row(k, formatMetric(m[k]))
	}
	return t.Render()
}

// renderSummary renders per-metric batch statistics.
func renderSummary(s pipeline.Summary) string {
	t := newTable("Metric", "N", "Mean", "StdDev", "Min", "Max")
	names := s.MetricNames()
	sort.SliceStable(names, func(i, j int) bool { return metricRank(names[i]) < metricRank(names[j]) })
	for _, k := range names {
		ms := s.Metrics[k]
		t.Row(k, fmt.Sprintf("%d", ms.N), formatMetric(ms.Mean), formatMetric(ms.StdDev), formatMetric(ms.Min), formatMetric(ms.Max))
	}
	return t.Render()
}

// printRecord prints a comparison record for humans.
func printRecord(w io.Writer, rec pipeline.Record) {
	if !rec.OK() {
		printError(w, "%s vs %s: %s", rec.A, rec.B, rec.Error)
		printDetail(w, "code: %s", rec.ErrorCode)
		return
	}
	printSuccess(w, "%s %s %s  %s", StyleValue.Render(rec.A), StyleDim.Render("vs"), StyleValue.Render(rec.B), cacheStatus(rec.CacheHit))
	fmt.Fprintln(w, renderMetrics(rec.Metrics))
	for _, warn := range rec.Warnings {
		printWarning(w, "%s", warn)
	}
}
