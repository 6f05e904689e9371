package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/mulnet/pkg/pipeline"
)

// recentRows is the number of finished records shown under the bar.
const recentRows = 8

var (
	barDoneStyle = lipgloss.NewStyle().Foreground(colorCyan)
	barTodoStyle = lipgloss.NewStyle().Foreground(colorDim)
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// recordMsg reports one finished comparison.
type recordMsg pipeline.Record

// batchDoneMsg reports the end of the batch.
type batchDoneMsg struct {
	res *pipeline.BatchResult
	err error
}

// batchModel is the bubbletea model for the live batch view.
type batchModel struct {
	Total     int
	Done      int
	Failed    int
	CacheHits int
	Recent    []pipeline.Record
	Width     int

	Result     *pipeline.BatchResult
	Err        error
	Cancelling bool

	cancel context.CancelFunc
}

func newBatchModel(total int, cancel context.CancelFunc) batchModel {
	return batchModel{Total: total, Width: 40, cancel: cancel}
}

func (m batchModel) Init() tea.Cmd {
	return nil
}

func (m batchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			if m.cancel != nil {
				m.cancel()
			}
			m.Cancelling = true
		}
	case tea.WindowSizeMsg:
		m.Width = msg.Width - 20
		if m.Width < 10 {
			m.Width = 10
		}
	case recordMsg:
		rec := pipeline.Record(msg)
		m.Done++
		if !rec.OK() {
			m.Failed++
		}
		if rec.CacheHit {
			m.CacheHits++
		}
		m.Recent = append(m.Recent, rec)
		if len(m.Recent) > recentRows {
			m.Recent = m.Recent[len(m.Recent)-recentRows:]
		}
	case batchDoneMsg:
		m.Result, m.Err = msg.res, msg.err
		return m, tea.Quit
	}
	return m, nil
}

func (m batchModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Comparing networks"))
	b.WriteString("\n\n")
	b.WriteString(m.bar())
	fmt.Fprintf(&b, " %s/%d\n", StyleNumber.Render(fmt.Sprint(m.Done)), m.Total)
	fmt.Fprintf(&b, "%s  %s  %s\n\n",
		StyleSuccess.Render(fmt.Sprintf("%d ok", m.Done-m.Failed)),
		StyleError.Render(fmt.Sprintf("%d failed", m.Failed)),
		styleCached.Render(fmt.Sprintf("%d cached", m.CacheHits)))

	for _, rec := range m.Recent {
		b.WriteString(recordLine(rec))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.Cancelling {
		b.WriteString(StyleWarning.Render("cancelling..."))
	} else {
		b.WriteString(listDimStyle.Render("q cancel"))
	}
	b.WriteString("\n")
	return b.String()
}

func (m batchModel) bar() string {
	filled := 0
	if m.Total > 0 {
		filled = m.Width * m.Done / m.Total
	}
	return barDoneStyle.Render(strings.Repeat("█", filled)) +
		barTodoStyle.Render(strings.Repeat("░", m.Width-filled))
}

// recordLine summarizes one record on a single line.
func recordLine(rec pipeline.Record) string {
	name := rec.Name
	if name == "" {
		name = rec.A + " vs " + rec.B
	}
	if !rec.OK() {
		return styleIconError.Render(iconError) + " " + name + " " + listDimStyle.Render(string(rec.ErrorCode))
	}
	detail := fmt.Sprintf("rf %s · leaves %s",
		formatMetric(rec.Metrics["rf.normalized"]),
		formatMetric(rec.Metrics["ret_leaf_jaccard.dist"]))
	if v, ok := rec.Metrics["edit_distance.value"]; ok {
		detail += " · ged " + formatMetric(v)
	}
	return styleIconSuccess.Render(iconSuccess) + " " + name + " " + listDimStyle.Render(detail) + " " + cacheStatus(rec.CacheHit)
}
