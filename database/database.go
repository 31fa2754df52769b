package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Connect opens a client to uri and pings the primary.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	// Ping MongoDB
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	log.Println("Connected to MongoDB successfully")
	return client, nil
}

// ConnectWithRetry calls Connect up to attempts times, waiting wait between
// failures.
func ConnectWithRetry(ctx context.Context, uri string, attempts int, wait time.Duration) (*mongo.Client, error) {
	var lastErr error
	for i := 1; i <= attempts; i++ {
		client, err := Connect(ctx, uri)
		if err == nil {
			return client, nil
		}
		lastErr = err
		log.Printf("❌ MongoDB connection attempt %d failed: %v", i, err)
		if i < attempts {
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return nil, fmt.Errorf("connect to MongoDB after %d attempts: %w", attempts, lastErr)
}

type index struct {
	collection string
	keys       bson.D
	unique     bool
	// partial limits the index to records matching the filter.
	partial bson.M
}

// Sub-collection records live in "{parent}_{name}" collections scoped by
// _parent (see store.MongoStore).
var indexes = []index{
	{collection: "users", keys: bson.D{{Key: "email", Value: 1}}, unique: true},
	{collection: "users", keys: bson.D{{Key: "username", Value: 1}}, unique: true, partial: bson.M{"username": bson.M{"$gt": ""}}},
	{collection: "users", keys: bson.D{{Key: "name", Value: 1}}},
	{collection: "users", keys: bson.D{{Key: "stats.hoursVolunteered", Value: -1}}},
	{collection: "posts", keys: bson.D{{Key: "isActive", Value: 1}, {Key: "createdAt", Value: -1}}},
	{collection: "posts", keys: bson.D{{Key: "authorId", Value: 1}, {Key: "createdAt", Value: -1}}},
	{collection: "posts", keys: bson.D{{Key: "hashtags", Value: 1}, {Key: "createdAt", Value: -1}}},
	{collection: "posts_comments", keys: bson.D{{Key: "_parent", Value: 1}, {Key: "createdAt", Value: 1}}},
	{collection: "posts_likes", keys: bson.D{{Key: "_parent", Value: 1}}},
	{collection: "programs_applications", keys: bson.D{{Key: "_parent", Value: 1}}},
	{collection: "conversations_messages", keys: bson.D{{Key: "_parent", Value: 1}, {Key: "createdAt", Value: 1}}},
	{collection: "hashtags", keys: bson.D{{Key: "postsCount", Value: -1}}},
	{collection: "notifications", keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
	{collection: "follows", keys: bson.D{{Key: "followerId", Value: 1}, {Key: "createdAt", Value: -1}}},
	{collection: "follows", keys: bson.D{{Key: "followingId", Value: 1}, {Key: "createdAt", Value: -1}}},
	{collection: "conversations", keys: bson.D{{Key: "participants", Value: 1}, {Key: "lastMessageAt", Value: -1}}},
}

// EnsureIndexes creates the indexes behind the API's queries. Existing
// indexes are left alone.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for _, ix := range indexes {
		model := mongo.IndexModel{Keys: ix.keys}
		if ix.unique || ix.partial != nil {
			opts := options.Index().SetUnique(ix.unique)
			if ix.partial != nil {
				opts.SetPartialFilterExpression(ix.partial)
			}
			model.Options = opts
		}
		if _, err := db.Collection(ix.collection).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("create index on %s: %w", ix.collection, err)
		}
	}
	return nil
}

func Disconnect(client *mongo.Client) error {
	if client == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.Disconnect(ctx); err != nil {
		return err
	}

	log.Println("Disconnected from MongoDB")
	return nil
}
