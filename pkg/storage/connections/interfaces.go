package connections

import (
	"context"
	"io"

	"github.com/minio/minio-go/v7"
	"go.mongodb.org/mongo-driver/mongo"
)

type StorageDBConnection interface {
	Collection(collectionName string) *mongo.Collection
}

type MinioBlockStorageConnection interface {
	GetObject(ctx context.Context, objectName string) (*minio.Object, error)
	PutObject(ctx context.Context, objectName string, objectSize int64, mimeType string, reader io.Reader, userMetadata map[string]string) error
	DeleteObject(ctx context.Context, objectName string) error
	ObjectExists(ctx context.Context, objectName string) (exists bool, err error)
	ListObjects(ctx context.Context, prefix string) ([]minio.ObjectInfo, error)
}
