package pipeline

import (
	"time"

	"github.com/matzehuels/mulnet/pkg/errors"
)

// Status is the outcome of one comparison.
type Status string

const (
	StatusSuccess Status = "SUCCESS"
	StatusError   Status = "ERROR"
)

// Record is the flat result of comparing two inputs. Failed comparisons
// carry an error code and message instead of metrics.
type Record struct {
	RunID     string             `json:"run_id,omitempty" bson:"run_id,omitempty"`
	Name      string             `json:"name,omitempty" bson:"name,omitempty"`
	A         string             `json:"a" bson:"a"`
	B         string             `json:"b" bson:"b"`
	Status    Status             `json:"status" bson:"status"`
	ErrorCode errors.Code        `json:"error_code,omitempty" bson:"error_code,omitempty"`
	Error     string             `json:"error,omitempty" bson:"error,omitempty"`
	Metrics   map[string]float64 `json:"metrics,omitempty" bson:"metrics,omitempty"`
	Warnings  []string           `json:"warnings,omitempty" bson:"warnings,omitempty"`
	CacheHit  bool               `json:"cache_hit" bson:"cache_hit"`
	Duration  time.Duration      `json:"duration_ns" bson:"duration_ns"`
}

// OK reports whether the comparison succeeded.
func (r Record) OK() bool { return r.Status == StatusSuccess }

func (r *Record) fail(err error) {
	r.Status = StatusError
	r.ErrorCode = errors.GetCode(err)
	if r.ErrorCode == "" {
		r.ErrorCode = errors.ErrCodeInternal
	}
	r.Error = errors.UserMessage(err)
	r.Metrics = nil
}
