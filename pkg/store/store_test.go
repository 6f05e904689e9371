package store

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/mulnet/pkg/errors"
	"github.com/matzehuels/mulnet/pkg/pipeline"
)

func TestJSONLSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jsonl")
	ctx := context.Background()

	s, err := CreateJSONL(path)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.Write(ctx, pipeline.Record{
				A: "a.nwk", B: "b.nwk", Status: pipeline.StatusSuccess,
				Metrics: map[string]float64{"rf.value": float64(i)},
			}))
		}()
	}
	wg.Wait()
	require.NoError(t, s.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	lines := 0
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var rec pipeline.Record
		require.NoError(t, json.Unmarshal(sc.Bytes(), &rec), "line %d", lines+1)
		assert.Equal(t, pipeline.StatusSuccess, rec.Status)
		lines++
	}
	assert.Equal(t, 8, lines)
}

func TestCreateJSONLAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jsonl")
	ctx := context.Background()
	for i := 0; i < 2; i++ {
		s, err := CreateJSONL(path)
		require.NoError(t, err)
		require.NoError(t, s.Write(ctx, pipeline.Record{Status: pipeline.StatusError, ErrorCode: errors.ErrCodeParse}))
		require.NoError(t, s.Close())
	}
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, countLines(data))
}

func countLines(b []byte) int {
	n := 0
	for _, c := range b {
		if c == '\n' {
			n++
		}
	}
	return n
}

func TestSplitMongoTarget(t *testing.T) {
	tests := []struct {
		target   string
		uri      string
		db, coll string
	}{
		{"mongodb://localhost:27017", "mongodb://localhost:27017", DefaultDatabase, DefaultCollection},
		{"mongodb://localhost:27017/bench?collection=runs", "mongodb://localhost:27017/bench", "bench", "runs"},
		{"mongodb://h/bench?collection=runs&w=majority", "mongodb://h/bench?w=majority", "bench", "runs"},
	}
	for _, tt := range tests {
		uri, db, coll, err := splitMongoTarget(tt.target)
		require.NoError(t, err, tt.target)
		assert.Equal(t, tt.uri, uri, tt.target)
		assert.Equal(t, tt.db, db, tt.target)
		assert.Equal(t, tt.coll, coll, tt.target)
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	_, err := Open(ctx, "")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig))

	s, err := Open(ctx, filepath.Join(t.TempDir(), "r.jsonl"))
	require.NoError(t, err)
	assert.IsType(t, &JSONLSink{}, s)
	require.NoError(t, s.Close())

	s, err = Open(ctx, "-")
	require.NoError(t, err)
	require.NoError(t, s.Close())
}

func TestMongoSink(t *testing.T) {
	uri := os.Getenv("MULNET_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("MULNET_TEST_MONGO_URI not set")
	}
	ctx := context.Background()
	s, err := NewMongoSink(ctx, uri, "mulnet_test", t.Name())
	require.NoError(t, err)
	defer s.Close()
	defer s.coll.Drop(ctx)

	require.NoError(t, s.Write(ctx, pipeline.Record{A: "a", B: "b", Status: pipeline.StatusSuccess}))
	require.NoError(t, s.WriteMany(ctx, []pipeline.Record{{A: "c", B: "d", Status: pipeline.StatusError}}))

	n, err := s.coll.CountDocuments(ctx, map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}
