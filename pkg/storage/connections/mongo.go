package connections

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const defaultDatabaseName = "tryon"

type StorageDBConfig struct {
	ConnectionString string
	DatabaseName     string
}

type StorageDBProductionConnection struct {
	config StorageDBConfig
	client *mongo.Client
}

var _ StorageDBConnection = (*StorageDBProductionConnection)(nil)

func NewStorageDBProductionConnection(ctx context.Context, config StorageDBConfig) (*StorageDBProductionConnection, error) {
	if config.DatabaseName == "" {
		config.DatabaseName = defaultDatabaseName
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(config.ConnectionString))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		client.Disconnect(context.Background())
		return nil, err
	}

	return &StorageDBProductionConnection{
		config: config,
		client: client,
	}, nil
}

func (c *StorageDBProductionConnection) Collection(collectionName string) *mongo.Collection {
	return c.client.Database(c.config.DatabaseName).Collection(collectionName)
}

func (c *StorageDBProductionConnection) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}
