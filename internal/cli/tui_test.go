package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/mulnet/pkg/errors"
	"github.com/matzehuels/mulnet/pkg/pipeline"
)

func TestBatchModelCountsRecords(t *testing.T) {
	var m tea.Model = newBatchModel(3, nil)

	m, _ = m.Update(recordMsg(pipeline.Record{Name: "one", Status: pipeline.StatusSuccess, Metrics: map[string]float64{"rf.normalized": 0.5}}))
	m, _ = m.Update(recordMsg(pipeline.Record{Name: "two", Status: pipeline.StatusSuccess, CacheHit: true}))
	m, _ = m.Update(recordMsg(pipeline.Record{Name: "three", Status: pipeline.StatusError, ErrorCode: errors.ErrCodeParse}))

	bm := m.(batchModel)
	if bm.Done != 3 || bm.Failed != 1 || bm.CacheHits != 1 {
		t.Errorf("done/failed/cached = %d/%d/%d, want 3/1/1", bm.Done, bm.Failed, bm.CacheHits)
	}

	view := bm.View()
	for _, want := range []string{"3/3", "one", "PARSE_ERROR", "1 failed"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestBatchModelKeepsRecentRows(t *testing.T) {
	var m tea.Model = newBatchModel(20, nil)
	for i := 0; i < 20; i++ {
		m, _ = m.Update(recordMsg(pipeline.Record{Status: pipeline.StatusSuccess}))
	}
	if got := len(m.(batchModel).Recent); got != recentRows {
		t.Errorf("recent rows = %d, want %d", got, recentRows)
	}
}

func TestBatchModelCancel(t *testing.T) {
	cancelled := false
	var m tea.Model = newBatchModel(1, func() { cancelled = true })

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !cancelled {
		t.Error("ctrl+c should cancel the batch")
	}
	if cmd != nil {
		t.Error("the view should wait for the batch to finish")
	}
	if !m.(batchModel).Cancelling {
		t.Error("model should show cancelling")
	}

	res := &pipeline.BatchResult{RunID: "r"}
	m, cmd = m.Update(batchDoneMsg{res: res})
	if cmd == nil {
		t.Fatal("batch completion should quit")
	}
	if m.(batchModel).Result != res {
		t.Error("result should be kept on the model")
	}
}
