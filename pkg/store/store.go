// Package store persists comparison records.
//
// A [Sink] receives records one at a time as a batch progresses. Two sinks
// exist: [JSONLSink] appends one JSON object per line to a file or stream,
// and [MongoSink] inserts documents into a MongoDB collection. [Open] picks
// one from a target string.
package store

import (
	"context"
	"net/url"
	"strings"

	"github.com/matzehuels/mulnet/pkg/errors"
	"github.com/matzehuels/mulnet/pkg/pipeline"
)

// Sink receives comparison records. Implementations must be safe for
// concurrent use.
type Sink interface {
	Write(ctx context.Context, rec pipeline.Record) error
	Close() error
}

// DefaultDatabase and DefaultCollection are used when a MongoDB target does
// not name them.
const (
	DefaultDatabase   = "mulnet"
	DefaultCollection = "comparisons"
)

// Open returns a sink for target:
//
//	-                                   JSON lines on stdout
//	results.jsonl                       JSON lines appended to a file
//	mongodb://host:27017/db?collection=c  documents in MongoDB
func Open(ctx context.Context, target string) (Sink, error) {
	if target == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "sink target is empty")
	}
	if strings.HasPrefix(target, "mongodb://") || strings.HasPrefix(target, "mongodb+srv://") {
		uri, db, coll, err := splitMongoTarget(target)
		if err != nil {
			return nil, err
		}
		return NewMongoSink(ctx, uri, db, coll)
	}
	if target == "-" {
		return NewJSONLSink(nopCloser{stdout()}), nil
	}
	return CreateJSONL(target)
}

// splitMongoTarget removes the collection parameter, which the driver does
// not understand, and reads the database from the path.
func splitMongoTarget(target string) (uri, db, coll string, err error) {
	u, err := url.Parse(target)
	if err != nil {
		return "", "", "", errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid mongodb target")
	}
	q := u.Query()
	coll = q.Get("collection")
	if coll == "" {
		coll = DefaultCollection
	}
	q.Del("collection")
	u.RawQuery = q.Encode()

	db = strings.Trim(u.Path, "/")
	if db == "" {
		db = DefaultDatabase
	}
	return u.String(), db, coll, nil
}
