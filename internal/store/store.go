package store

import (
	"context"
	"errors"

	"github.com/harentsoaR/clinic-api/internal/models"
)

// Sentinel errors the handlers translate into HTTP statuses.
var (
	ErrNotFound    = errors.New("user not found")
	ErrDuplicateID = errors.New("user id already exists")
)

// UserStore is the persistence boundary for accounts. The Mongo
// implementation lives in mongo.go; tests use an in-memory fake.
type UserStore interface {
	// FindByIDAndRole returns the user matching both id and role, or ErrNotFound.
	FindByIDAndRole(ctx context.Context, id string, role models.Role) (*models.User, error)
	// FindByID returns the user with the given id regardless of role, or ErrNotFound.
	FindByID(ctx context.Context, id string) (*models.User, error)
	// Insert stores a new user. Returns ErrDuplicateID when the id is taken;
	// uniqueness is enforced by the store, so concurrent inserts of the same
	// id cannot both succeed.
	Insert(ctx context.Context, user *models.User) error
	// Delete removes the user matching both id and role. Deleting a missing
	// user is not an error.
	Delete(ctx context.Context, id string, role models.Role) error
	// ListByRole returns every user with the given role.
	ListByRole(ctx context.Context, role models.Role) ([]models.User, error)
	// UpdatePatient applies the provided changes to one record in a single
	// write: medicalInfo overwrites the field when non-nil, notification is
	// appended when non-nil. Returns ErrNotFound when no record matches id.
	UpdatePatient(ctx context.Context, id string, medicalInfo *string, notification *models.Notification) error
}
