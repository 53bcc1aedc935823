package mongostore

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"notodo/internal/models"
	"notodo/internal/store"
)

const (
	usersCollection      = "users"
	categoriesCollection = "categories"
	notesCollection      = "notes"
	tasksCollection      = "tasks"
)

// MongoStore implements store.Store on a MongoDB database, one collection per record type.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

var _ store.Store = (*MongoStore)(nil)

// New connects to uri, selects database name and ensures indexes exist.
func New(ctx context.Context, uri, name string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	s := &MongoStore{client: client, db: client.Database(name)}
	if err := s.ensureIndexes(ctx); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("ensure indexes: %w", err)
	}
	return s, nil
}

func (s *MongoStore) ensureIndexes(ctx context.Context) error {
	_, err := s.db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}
	for _, name := range []string{categoriesCollection, notesCollection, tasksCollection} {
		_, err := s.db.Collection(name).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "created_at", Value: -1}},
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *MongoStore) Close() error {
	return s.client.Disconnect(context.Background())
}

func (s *MongoStore) insert(ctx context.Context, collection string, doc interface{}) error {
	_, err := s.db.Collection(collection).InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
	}
	return err
}

func (s *MongoStore) findOne(ctx context.Context, collection string, filter bson.M, dest interface{}) error {
	err := s.db.Collection(collection).FindOne(ctx, filter).Decode(dest)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return store.ErrNotFound
	}
	return err
}

func (s *MongoStore) find(ctx context.Context, collection string, filter bson.M, opts *options.FindOptions, dest interface{}) error {
	cursor, err := s.db.Collection(collection).Find(ctx, filter, opts)
	if err != nil {
		return err
	}
	return cursor.All(ctx, dest)
}

func (s *MongoStore) setByID(ctx context.Context, collection, id string, fields bson.M) error {
	res, err := s.db.Collection(collection).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *MongoStore) deleteByID(ctx context.Context, collection, id string) error {
	res, err := s.db.Collection(collection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

// Users

func (s *MongoStore) CreateUser(ctx context.Context, u *models.User) error {
	return s.insert(ctx, usersCollection, u)
}

func (s *MongoStore) GetUser(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := s.findOne(ctx, usersCollection, bson.M{"_id": id}, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *MongoStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.findOne(ctx, usersCollection, bson.M{"email": email}, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Categories

func (s *MongoStore) ListCategories(ctx context.Context, ownerID string) ([]models.Category, error) {
	categories := []models.Category{}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	err := s.find(ctx, categoriesCollection, bson.M{"owner_id": ownerID}, opts, &categories)
	return categories, err
}

func (s *MongoStore) CreateCategory(ctx context.Context, c *models.Category) error {
	return s.insert(ctx, categoriesCollection, c)
}

func (s *MongoStore) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	var c models.Category
	if err := s.findOne(ctx, categoriesCollection, bson.M{"_id": id}, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *MongoStore) DeleteCategory(ctx context.Context, id string) error {
	return s.deleteByID(ctx, categoriesCollection, id)
}

// Notes

func (s *MongoStore) ListNotes(ctx context.Context, ownerID string) ([]models.Note, error) {
	notes := []models.Note{}
	opts := options.Find().SetSort(bson.D{{Key: "is_pinned", Value: -1}, {Key: "updated_at", Value: -1}})
	err := s.find(ctx, notesCollection, bson.M{"owner_id": ownerID}, opts, &notes)
	return notes, err
}

func (s *MongoStore) RecentNotes(ctx context.Context, ownerID string, limit int) ([]models.Note, error) {
	notes := []models.Note{}
	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}}).SetLimit(int64(limit))
	err := s.find(ctx, notesCollection, bson.M{"owner_id": ownerID}, opts, &notes)
	return notes, err
}

func (s *MongoStore) CreateNote(ctx context.Context, n *models.Note) error {
	return s.insert(ctx, notesCollection, n)
}

func (s *MongoStore) GetNote(ctx context.Context, id string) (*models.Note, error) {
	var n models.Note
	if err := s.findOne(ctx, notesCollection, bson.M{"_id": id}, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

func (s *MongoStore) UpdateNote(ctx context.Context, n *models.Note) error {
	return s.setByID(ctx, notesCollection, n.ID, bson.M{
		"title":      n.Title,
		"content":    n.Content,
		"category":   n.Category,
		"is_pinned":  n.IsPinned,
		"updated_at": n.UpdatedAt,
	})
}

func (s *MongoStore) DeleteNote(ctx context.Context, id string) error {
	return s.deleteByID(ctx, notesCollection, id)
}

// Tasks

func (s *MongoStore) ListTasks(ctx context.Context, ownerID string) ([]models.Task, error) {
	tasks := []models.Task{}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	err := s.find(ctx, tasksCollection, bson.M{"owner_id": ownerID}, opts, &tasks)
	return tasks, err
}

func (s *MongoStore) RecentTasks(ctx context.Context, ownerID string, limit int) ([]models.Task, error) {
	tasks := []models.Task{}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(int64(limit))
	err := s.find(ctx, tasksCollection, bson.M{"owner_id": ownerID}, opts, &tasks)
	return tasks, err
}

func (s *MongoStore) CountTasks(ctx context.Context, ownerID string, completedOnly bool) (int, error) {
	filter := bson.M{"owner_id": ownerID}
	if completedOnly {
		filter["is_complete"] = true
	}
	n, err := s.db.Collection(tasksCollection).CountDocuments(ctx, filter)
	return int(n), err
}

func (s *MongoStore) CreateTask(ctx context.Context, t *models.Task) error {
	return s.insert(ctx, tasksCollection, t)
}

func (s *MongoStore) GetTask(ctx context.Context, id string) (*models.Task, error) {
	var t models.Task
	if err := s.findOne(ctx, tasksCollection, bson.M{"_id": id}, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *MongoStore) UpdateTask(ctx context.Context, t *models.Task) error {
	return s.setByID(ctx, tasksCollection, t.ID, bson.M{
		"title":       t.Title,
		"description": t.Description,
		"priority":    t.Priority,
		"category":    t.Category,
		"is_complete": t.IsComplete,
		"due_date":    t.DueDate,
		"updated_at":  t.UpdatedAt,
	})
}

func (s *MongoStore) DeleteTask(ctx context.Context, id string) error {
	return s.deleteByID(ctx, tasksCollection, id)
}
