package storage

import (
	"context"
	"regexp"

	"github.com/thebartekbanach/tryon/pkg/storage/connections"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	areaCollectionName     = "storageArea"
	countersCollectionName = "counters"
)

type areaDocument struct {
	Key   string `bson:"_id"`
	Value []byte `bson:"value,omitempty"`
	Size  int64  `bson:"size"`
	Seq   int64  `bson:"seq"`
}

type mongoArea struct {
	conn connections.StorageDBConnection
}

var _ Area = (*mongoArea)(nil)

// NewMongoArea stores every key as a document; insertion order is kept by a
// sequence number drawn from a counters collection on each write.
func NewMongoArea(conn connections.StorageDBConnection) Area {
	return &mongoArea{conn}
}

func (a *mongoArea) Get(ctx context.Context, key string) ([]byte, error) {
	var doc areaDocument
	if err := a.conn.Collection(areaCollectionName).FindOne(ctx, bson.M{"_id": key}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrKeyNotFound
		}

		return nil, err
	}

	return doc.Value, nil
}

func (a *mongoArea) Set(ctx context.Context, key string, value []byte) error {
	seq, err := a.nextSeq(ctx)
	if err != nil {
		return err
	}

	doc := areaDocument{
		Key:   key,
		Value: value,
		Size:  EntrySize(key, value),
		Seq:   seq,
	}

	_, err = a.conn.Collection(areaCollectionName).ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	return err
}

func (a *mongoArea) Delete(ctx context.Context, key string) error {
	result, err := a.conn.Collection(areaCollectionName).DeleteOne(ctx, bson.M{"_id": key})
	if err != nil {
		return err
	}

	if result.DeletedCount == 0 {
		return ErrKeyNotFound
	}

	return nil
}

func (a *mongoArea) Entries(ctx context.Context, prefix string) ([]Entry, error) {
	filter := bson.M{"_id": bson.M{"$regex": "^" + regexp.QuoteMeta(prefix)}}
	opts := options.Find().
		SetSort(bson.D{{Key: "seq", Value: 1}}).
		SetProjection(bson.M{"size": 1, "seq": 1})

	cursor, err := a.conn.Collection(areaCollectionName).Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	var docs []areaDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	entries := make([]Entry, len(docs))
	for i, doc := range docs {
		entries[i] = Entry{Key: doc.Key, Size: doc.Size}
	}

	return entries, nil
}

func (a *mongoArea) BytesInUse(ctx context.Context) (int64, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$size"}}},
		}}},
	}

	cursor, err := a.conn.Collection(areaCollectionName).Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}

	var results []struct {
		Total int64 `bson:"total"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, err
	}

	if len(results) == 0 {
		return 0, nil
	}

	return results[0].Total, nil
}

func (a *mongoArea) nextSeq(ctx context.Context) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	err := a.conn.Collection(countersCollectionName).
		FindOneAndUpdate(ctx, bson.M{"_id": areaCollectionName}, bson.M{"$inc": bson.M{"seq": int64(1)}}, opts).
		Decode(&counter)

	return counter.Seq, err
}
