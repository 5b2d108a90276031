package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/VinayakFrontend/task-manager-app/models"
)

// MongoUserStore persists users in the "users" collection.
type MongoUserStore struct {
	coll *mongo.Collection
}

func NewMongoUserStore(db *mongo.Database) *MongoUserStore {
	return &MongoUserStore{coll: db.Collection("users")}
}

func (s *MongoUserStore) Create(ctx context.Context, user models.User) (models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := s.coll.FindOne(ctx, bson.M{"email": user.Email}).Err()
	if err == nil {
		return models.User{}, ErrEmailTaken
	}
	if err != mongo.ErrNoDocuments {
		return models.User{}, fmt.Errorf("checking email: %w", err)
	}

	res, err := s.coll.InsertOne(ctx, user)
	if err != nil {
		return models.User{}, fmt.Errorf("inserting user: %w", err)
	}
	user.ID = res.InsertedID.(primitive.ObjectID)
	return user, nil
}

func (s *MongoUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var user models.User
	err := s.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("finding user by email: %w", err)
	}
	return &user, nil
}

func (s *MongoUserStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var user models.User
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("finding user %s: %w", id.Hex(), err)
	}
	return &user, nil
}

func (s *MongoUserStore) List(ctx context.Context) ([]models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decoding users: %w", err)
	}
	return users, nil
}

func (s *MongoUserStore) Update(ctx context.Context, id primitive.ObjectID, name, email string, role models.Role) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// The new email must not belong to another user.
	err := s.coll.FindOne(ctx, bson.M{"email": email, "_id": bson.M{"$ne": id}}).Err()
	if err == nil {
		return nil, ErrEmailTaken
	}
	if err != mongo.ErrNoDocuments {
		return nil, fmt.Errorf("checking email %s: %w", email, err)
	}

	after := options.After
	opts := options.FindOneAndUpdate().SetReturnDocument(after)
	update := bson.M{"$set": bson.M{"name": name, "email": email, "role": role}}

	var user models.User
	err = s.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("updating user %s: %w", id.Hex(), err)
	}
	return &user, nil
}

func (s *MongoUserStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("deleting user %s: %w", id.Hex(), err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	// Tasks assigned to the user are left untouched; their assignee
	// reference dangles and resolves to null in task views.
	return nil
}

// MongoTaskStore persists tasks in the "tasks" collection. Comments live
// embedded in the task document, so append and status changes are single
// atomic updates.
type MongoTaskStore struct {
	coll *mongo.Collection
}

func NewMongoTaskStore(db *mongo.Database) *MongoTaskStore {
	return &MongoTaskStore{coll: db.Collection("tasks")}
}

func (s *MongoTaskStore) Create(ctx context.Context, task models.Task) (models.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := s.coll.InsertOne(ctx, task)
	if err != nil {
		return models.Task{}, fmt.Errorf("inserting task: %w", err)
	}
	task.ID = res.InsertedID.(primitive.ObjectID)
	return task, nil
}

func (s *MongoTaskStore) List(ctx context.Context) ([]models.Task, error) {
	return s.find(ctx, bson.M{})
}

func (s *MongoTaskStore) ListByAssignee(ctx context.Context, userID primitive.ObjectID) ([]models.Task, error) {
	return s.find(ctx, bson.M{"assigned_to": userID})
}

func (s *MongoTaskStore) find(ctx context.Context, filter bson.M) ([]models.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := s.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer cursor.Close(ctx)

	var tasks []models.Task
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("decoding tasks: %w", err)
	}
	return tasks, nil
}

func (s *MongoTaskStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var task models.Task
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&task)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("finding task %s: %w", id.Hex(), err)
	}
	return &task, nil
}

func (s *MongoTaskStore) SetStatus(ctx context.Context, id primitive.ObjectID, status models.TaskStatus) (*models.Task, error) {
	update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now().UTC()}}
	return s.findOneAndUpdate(ctx, id, update)
}

func (s *MongoTaskStore) AppendComment(ctx context.Context, id primitive.ObjectID, comment models.Comment) (*models.Task, error) {
	update := bson.M{
		"$push": bson.M{"comments": comment},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}
	return s.findOneAndUpdate(ctx, id, update)
}

func (s *MongoTaskStore) Replace(ctx context.Context, id primitive.ObjectID, title, description string, assignedTo primitive.ObjectID) (*models.Task, error) {
	update := bson.M{"$set": bson.M{
		"title":       title,
		"description": description,
		"assigned_to": assignedTo,
		"updated_at":  time.Now().UTC(),
	}}
	return s.findOneAndUpdate(ctx, id, update)
}

func (s *MongoTaskStore) findOneAndUpdate(ctx context.Context, id primitive.ObjectID, update bson.M) (*models.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	after := options.After
	opts := options.FindOneAndUpdate().SetReturnDocument(after)

	var task models.Task
	err := s.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&task)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("updating task %s: %w", id.Hex(), err)
	}
	return &task, nil
}

func (s *MongoTaskStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("deleting task %s: %w", id.Hex(), err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
