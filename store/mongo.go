package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Reserved fields of the MongoDB layout. Sub-collection records share one
// MongoDB collection per collection name ("posts/{id}/comments" lives in
// posts_comments); _parent holds the owning record path, _key the record id
// and _id the full record path so ids only need to be unique per parent.
const (
	fieldParent = "_parent"
	fieldKey    = "_key"
)

type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewMongoStore(client *mongo.Client, database string) *MongoStore {
	return &MongoStore{client: client, db: client.Database(database)}
}

func (s *MongoStore) Database() *mongo.Database {
	return s.db
}

type location struct {
	coll   *mongo.Collection
	parent string
}

func (s *MongoStore) locate(path string) (location, error) {
	name, parent, err := splitPath(path)
	if err != nil {
		return location{}, err
	}
	return location{coll: s.db.Collection(name), parent: parent}, nil
}

func (l location) key(id string) string {
	if l.parent == "" {
		return id
	}
	return l.parent + "/" + id
}

// field maps a query field to its stored name. The record id is _key in
// sub-collections and _id at the top level.
func (l location) field(name string) string {
	if name != "id" {
		return name
	}
	if l.parent == "" {
		return "_id"
	}
	return fieldKey
}

func (l location) scope() bson.D {
	if l.parent == "" {
		return bson.D{}
	}
	return bson.D{{Key: fieldParent, Value: l.parent}}
}

func (s *MongoStore) Find(ctx context.Context, path string, q Query) ([]Document, error) {
	loc, err := s.locate(path)
	if err != nil {
		return nil, err
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}

	filter := loc.scope()
	if clauses := mongoClauses(loc, q); len(clauses) > 0 {
		filter = append(filter, bson.E{Key: "$and", Value: clauses})
	}

	opts := options.Find()
	if q.OrderBy != "" {
		dir := 1
		if q.Direction == Desc {
			dir = -1
		}
		sort := bson.D{{Key: loc.field(q.OrderBy), Value: dir}}
		if q.OrderBy != "id" {
			sort = append(sort, bson.E{Key: "_id", Value: 1})
		}
		opts.SetSort(sort)
	}
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}

	cursor, err := loc.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var raw []bson.M
	if err := cursor.All(ctx, &raw); err != nil {
		return nil, err
	}
	docs := make([]Document, 0, len(raw))
	for _, m := range raw {
		docs = append(docs, fromMongo(m))
	}
	return docs, nil
}

func mongoClauses(loc location, q Query) bson.A {
	clauses := bson.A{}
	for _, f := range q.Where {
		v := f.Value
		var cond interface{}
		switch f.Op {
		case OpEqual, OpArrayContains:
			cond = bson.M{"$eq": v}
		case OpNotEqual:
			cond = bson.M{"$ne": v, "$exists": true}
		case OpLess:
			cond = bson.M{"$lt": v}
		case OpLessEqual:
			cond = bson.M{"$lte": v}
		case OpGreater:
			cond = bson.M{"$gt": v}
		case OpGreaterEqual:
			cond = bson.M{"$gte": v}
		case OpIn:
			cond = bson.M{"$in": v}
		}
		clauses = append(clauses, bson.M{loc.field(f.Field): cond})
	}
	if q.OrderBy != "" {
		clauses = append(clauses, bson.M{loc.field(q.OrderBy): bson.M{"$exists": true}})
	}
	return clauses
}

func (s *MongoStore) Get(ctx context.Context, path, id string) (Document, error) {
	loc, err := s.locate(path)
	if err != nil {
		return nil, err
	}
	if err := checkID(id); err != nil {
		return nil, err
	}
	var m bson.M
	err = loc.coll.FindOne(ctx, bson.M{"_id": loc.key(id)}).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return fromMongo(m), nil
}

func (s *MongoStore) Insert(ctx context.Context, path string, doc Document) (string, error) {
	loc, err := s.locate(path)
	if err != nil {
		return "", err
	}
	id := doc.ID()
	if id == "" {
		id = primitive.NewObjectID().Hex()
	}
	if err := checkID(id); err != nil {
		return "", err
	}
	if _, err := loc.coll.InsertOne(ctx, toMongo(loc, id, doc)); err != nil {
		return "", duplicate(err)
	}
	return id, nil
}

func (s *MongoStore) Set(ctx context.Context, path, id string, doc Document) error {
	loc, err := s.locate(path)
	if err != nil {
		return err
	}
	if err := checkID(id); err != nil {
		return err
	}
	_, err = loc.coll.ReplaceOne(ctx, bson.M{"_id": loc.key(id)}, toMongo(loc, id, doc), options.Replace().SetUpsert(true))
	return duplicate(err)
}

func (s *MongoStore) Update(ctx context.Context, path, id string, fields Document) error {
	set := bson.M{}
	for k, v := range fields {
		if k == "id" || k == "_id" || k == fieldParent || k == fieldKey {
			continue
		}
		set[k] = v
	}
	if len(set) == 0 {
		_, err := s.Get(ctx, path, id)
		return err
	}
	return s.updateOne(ctx, path, id, bson.M{"$set": set})
}

func (s *MongoStore) Increment(ctx context.Context, path, id, field string, delta int64) error {
	return s.updateOne(ctx, path, id, bson.M{"$inc": bson.M{field: delta}})
}

func (s *MongoStore) updateOne(ctx context.Context, path, id string, update bson.M) error {
	loc, err := s.locate(path)
	if err != nil {
		return err
	}
	if err := checkID(id); err != nil {
		return err
	}
	res, err := loc.coll.UpdateOne(ctx, bson.M{"_id": loc.key(id)}, update)
	if err != nil {
		return duplicate(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, path, id string) error {
	loc, err := s.locate(path)
	if err != nil {
		return err
	}
	if err := checkID(id); err != nil {
		return err
	}
	_, err = loc.coll.DeleteOne(ctx, bson.M{"_id": loc.key(id)})
	return err
}

// Watch opens a change stream on the collection. Change streams need a
// replica set or sharded cluster.
func (s *MongoStore) Watch(ctx context.Context, path string) (<-chan struct{}, error) {
	loc, err := s.locate(path)
	if err != nil {
		return nil, err
	}

	pipeline := mongo.Pipeline{}
	if loc.parent != "" {
		prefix := "^" + regexp.QuoteMeta(loc.parent+"/")
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: bson.M{
			"documentKey._id": bson.M{"$regex": prefix},
		}}})
	}

	stream, err := loc.coll.Watch(ctx, pipeline)
	if err != nil {
		return nil, err
	}

	ch := make(chan struct{}, 256)
	go func() {
		defer close(ch)
		defer stream.Close(context.Background())
		for stream.Next(ctx) {
			select {
			case ch <- struct{}{}:
			default:
			}
		}
		if err := stream.Err(); err != nil && ctx.Err() == nil {
			log.Printf("[store] change stream on %s ended: %v", path, err)
		}
	}()
	return ch, nil
}

func (s *MongoStore) RunInTransaction(ctx context.Context, fn func(ctx context.Context, tx Store) error) error {
	session, err := s.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc, s)
	})
	return err
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// duplicate wraps unique index violations in ErrDuplicate.
func duplicate(err error) error {
	if err != nil && mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	return err
}

func toMongo(loc location, id string, doc Document) bson.M {
	m := bson.M{}
	for k, v := range doc {
		if k == "id" {
			continue
		}
		m[k] = v
	}
	m["_id"] = loc.key(id)
	if loc.parent != "" {
		m[fieldParent] = loc.parent
		m[fieldKey] = id
	}
	return m
}

func fromMongo(m bson.M) Document {
	d := Document(normalizeMap(m))
	id, _ := d["_id"].(string)
	if key, ok := d[fieldKey].(string); ok {
		id = key
	}
	delete(d, "_id")
	delete(d, fieldKey)
	delete(d, fieldParent)
	d["id"] = id
	return d
}
