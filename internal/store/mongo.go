package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/harentsoaR/clinic-api/internal/models"
)

const usersCollection = "users"

type mongoUserStore struct {
	db *mongo.Database
}

// NewMongoUserStore wraps a connected database as a UserStore.
func NewMongoUserStore(db *mongo.Database) UserStore {
	return &mongoUserStore{db: db}
}

// EnsureIndexes creates the unique index on the login id. Must run before
// the first signup: the index is what makes concurrent signups with the
// same id collapse to a single winner.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create unique index on users.id: %w", err)
	}
	return nil
}

func (s *mongoUserStore) users() *mongo.Collection {
	return s.db.Collection(usersCollection)
}

func (s *mongoUserStore) FindByIDAndRole(ctx context.Context, id string, role models.Role) (*models.User, error) {
	var user models.User
	err := s.users().FindOne(ctx, bson.M{"id": id, "role": role}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user %q: %w", id, err)
	}
	return &user, nil
}

func (s *mongoUserStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := s.users().FindOne(ctx, bson.M{"id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user %q: %w", id, err)
	}
	return &user, nil
}

func (s *mongoUserStore) Insert(ctx context.Context, user *models.User) error {
	_, err := s.users().InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateID
	}
	if err != nil {
		return fmt.Errorf("insert user %q: %w", user.ID, err)
	}
	return nil
}

func (s *mongoUserStore) Delete(ctx context.Context, id string, role models.Role) error {
	// Deliberately no error when nothing matches: deleting an absent
	// account reports success to the caller.
	if _, err := s.users().DeleteOne(ctx, bson.M{"id": id, "role": role}); err != nil {
		return fmt.Errorf("delete user %q: %w", id, err)
	}
	return nil
}

func (s *mongoUserStore) ListByRole(ctx context.Context, role models.Role) ([]models.User, error) {
	cursor, err := s.users().Find(ctx, bson.M{"role": role})
	if err != nil {
		return nil, fmt.Errorf("list users by role %q: %w", role, err)
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}

func (s *mongoUserStore) UpdatePatient(ctx context.Context, id string, medicalInfo *string, notification *models.Notification) error {
	update := bson.M{}
	if medicalInfo != nil {
		update["$set"] = bson.M{"medicalInfo": *medicalInfo}
	}
	if notification != nil {
		update["$push"] = bson.M{"notifications": notification}
	}
	if len(update) == 0 {
		return nil
	}

	result, err := s.users().UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("update user %q: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
