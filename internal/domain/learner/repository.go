package learner

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound       = errors.New("learner not found")
	ErrEmailDuplicate = errors.New("email already registered")
)

type Repository interface {
	Create(ctx context.Context, l Learner) error
	GetByID(ctx context.Context, id uuid.UUID) (Learner, error)
	GetByEmail(ctx context.Context, email string) (Learner, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, p Profile) (Learner, error)
}
