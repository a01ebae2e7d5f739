/*
 * TgSaver - YouTube & JioSaavn Downloader Bot
 *
 *  Licensed under GNU GPL v3
 */

package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Instance is the process-wide registry. It stays nil when no MONGO_URI is
// configured; every call site nil-guards.
var Instance *Database

const dbName = "tgsaver"

// Database tracks the users and chats that have interacted with the bot, for
// /stats counts and /broadcast fan-out. No request state lives here.
type Database struct {
	client *mongo.Client
	users  *mongo.Collection
	chats  *mongo.Collection
}

// Ctx returns the default per-operation context.
func Ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 5*time.Second)
}

// InitDatabase connects to Mongo and sets Instance. An empty URI is not an
// error: the bot runs without a registry.
func InitDatabase(ctx context.Context, uri string) error {
	if uri == "" {
		return nil
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return err
	}

	if err := client.Ping(ctx, nil); err != nil {
		return err
	}

	database := client.Database(dbName)
	Instance = &Database{
		client: client,
		users:  database.Collection("users"),
		chats:  database.Collection("chats"),
	}

	return nil
}

type peerDoc struct {
	ID       int64     `bson:"_id"`
	LastSeen time.Time `bson:"last_seen"`
}

func upsertPeer(ctx context.Context, coll *mongo.Collection, id int64) error {
	filter := bson.M{"_id": id}
	update := bson.M{"$set": bson.M{"last_seen": time.Now()}}
	_, err := coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// AddUser records a private-chat user.
func (d *Database) AddUser(ctx context.Context, userID int64) error {
	return upsertPeer(ctx, d.users, userID)
}

// AddChat records a group chat.
func (d *Database) AddChat(ctx context.Context, chatID int64) error {
	return upsertPeer(ctx, d.chats, chatID)
}

func allIDs(ctx context.Context, coll *mongo.Collection) ([]int64, error) {
	cursor, err := coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var docs []peerDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(docs))
	for _, doc := range docs {
		ids = append(ids, doc.ID)
	}
	return ids, nil
}

// GetAllUsers returns every recorded user id.
func (d *Database) GetAllUsers(ctx context.Context) ([]int64, error) {
	return allIDs(ctx, d.users)
}

// GetAllChats returns every recorded chat id.
func (d *Database) GetAllChats(ctx context.Context) ([]int64, error) {
	return allIDs(ctx, d.chats)
}

// Close disconnects the client.
func (d *Database) Close(ctx context.Context) error {
	return d.client.Disconnect(ctx)
}
