package store

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/mulnet/pkg/errors"
	"github.com/matzehuels/mulnet/pkg/pipeline"
)

// disconnectTimeout bounds Close.
const disconnectTimeout = 10 * time.Second

// MongoSink inserts each record as a document. Documents use the bson tags
// of [pipeline.Record] plus a created_at timestamp; metric names are stored
// with '_' in place of '.' so they stay plain field names.
type MongoSink struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// mongoRecord adds insertion metadata to a record.
type mongoRecord struct {
	pipeline.Record `bson:",inline"`
	Metrics         map[string]float64 `bson:"metrics,omitempty"`
	CreatedAt       time.Time          `bson:"created_at"`
}

func newMongoRecord(rec pipeline.Record, now time.Time) mongoRecord {
	doc := mongoRecord{CreatedAt: now}
	if rec.Metrics != nil {
		doc.Metrics = make(map[string]float64, len(rec.Metrics))
		for k, v := range rec.Metrics {
			doc.Metrics[strings.ReplaceAll(k, ".", "_")] = v
		}
	}
	rec.Metrics = nil
	doc.Record = rec
	return doc
}

// NewMongoSink connects to uri and checks the connection.
func NewMongoSink(ctx context.Context, uri, database, collection string) (*MongoSink, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "connect to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "ping mongodb")
	}
	return &MongoSink{
		client: client,
		coll:   client.Database(database).Collection(collection),
	}, nil
}

// Write inserts rec.
func (s *MongoSink) Write(ctx context.Context, rec pipeline.Record) error {
	_, err := s.coll.InsertOne(ctx, newMongoRecord(rec, time.Now().UTC()))
	return err
}

// WriteMany inserts several records in one round trip.
func (s *MongoSink) WriteMany(ctx context.Context, recs []pipeline.Record) error {
	if len(recs) == 0 {
		return nil
	}
	now := time.Now().UTC()
	docs := make([]any, len(recs))
	for i, r := range recs {
		docs[i] = newMongoRecord(r, now)
	}
	_, err := s.coll.InsertMany(ctx, docs)
	return err
}

// Close disconnects the client.
func (s *MongoSink) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), disconnectTimeout)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ Sink = (*MongoSink)(nil)
