package repository

import (
	"context"

	"edukit/lesson-planner/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with teacher accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}

// PlanRepository defines the interface for archived lesson-plan metadata.
// The docx bytes themselves live in object storage; this is the catalog.
type PlanRepository interface {
	Create(ctx context.Context, plan *domain.LessonPlan) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.LessonPlan, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.LessonPlan, error)
	Delete(ctx context.Context, id, userID primitive.ObjectID) error // scoped to owner
}
