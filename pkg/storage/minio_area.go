package storage

import (
	"bytes"
	"context"
	"io/ioutil"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/thebartekbanach/tryon/pkg/storage/connections"
)

// sequenceMetadata is the user metadata entry carrying an object's insertion
// sequence, a nanosecond timestamp kept strictly increasing per process.
const sequenceMetadata = "Sequence"

type minioArea struct {
	lastSequence int64
	conn         connections.MinioBlockStorageConnection
}

var _ Area = (*minioArea)(nil)

// NewMinioArea stores every key as an object. Insertion order follows the
// sequence stored in object metadata, or the modification time (second
// precision) for objects listed without it.
func NewMinioArea(conn connections.MinioBlockStorageConnection) Area {
	return &minioArea{conn: conn}
}

func (a *minioArea) Get(ctx context.Context, key string) ([]byte, error) {
	object, err := a.conn.GetObject(ctx, a.makeObjectName(key))
	if err != nil {
		return nil, a.convertToKnownError(err)
	}
	defer object.Close()

	if _, err := object.Stat(); err != nil {
		return nil, a.convertToKnownError(err)
	}

	data, err := ioutil.ReadAll(object)
	if err != nil {
		return nil, a.convertToKnownError(err)
	}

	return data, nil
}

func (a *minioArea) Set(ctx context.Context, key string, value []byte) error {
	metadata := map[string]string{sequenceMetadata: strconv.FormatInt(a.nextSequence(), 10)}
	return a.conn.PutObject(ctx, a.makeObjectName(key), int64(len(value)), "application/json", bytes.NewReader(value), metadata)
}

func (a *minioArea) Delete(ctx context.Context, key string) error {
	objectName := a.makeObjectName(key)
	exists, err := a.conn.ObjectExists(ctx, objectName)
	if err != nil {
		return err
	}
	if !exists {
		return ErrKeyNotFound
	}

	return a.conn.DeleteObject(ctx, objectName)
}

func (a *minioArea) Entries(ctx context.Context, prefix string) ([]Entry, error) {
	objects, err := a.conn.ListObjects(ctx, a.makeObjectName(prefix))
	if err != nil {
		return nil, err
	}

	sort.SliceStable(objects, func(i, j int) bool {
		return objectSequence(objects[i]) < objectSequence(objects[j])
	})

	entries := make([]Entry, 0, len(objects))
	for _, object := range objects {
		key, err := url.PathUnescape(object.Key)
		if err != nil {
			continue
		}

		entries = append(entries, Entry{Key: key, Size: int64(len(key)) + object.Size})
	}

	return entries, nil
}

func (a *minioArea) BytesInUse(ctx context.Context) (int64, error) {
	entries, err := a.Entries(ctx, "")
	if err != nil {
		return 0, err
	}

	var usage int64
	for _, entry := range entries {
		usage += entry.Size
	}

	return usage, nil
}

func (a *minioArea) nextSequence() int64 {
	for {
		last := atomic.LoadInt64(&a.lastSequence)
		next := time.Now().UnixNano()
		if next <= last {
			next = last + 1
		}

		if atomic.CompareAndSwapInt64(&a.lastSequence, last, next) {
			return next
		}
	}
}

// objectSequence reads the stored sequence. Listings return metadata names
// with varying prefixes and casing, e.g. X-Amz-Meta-Sequence.
func objectSequence(object minio.ObjectInfo) int64 {
	for name, value := range object.UserMetadata {
		if !strings.HasSuffix(strings.ToLower(name), strings.ToLower(sequenceMetadata)) {
			continue
		}

		if sequence, err := strconv.ParseInt(value, 10, 64); err == nil {
			return sequence
		}
	}

	return object.LastModified.UnixNano()
}

func (a *minioArea) convertToKnownError(err error) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return ErrKeyNotFound
	}

	return err
}

func (a *minioArea) makeObjectName(key string) string {
	return url.PathEscape(key)
}
