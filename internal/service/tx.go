package service

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/campus-events-api/internal/models"
)

// txRunner runs fn inside one database transaction, rolling back when fn fails.
type txRunner interface {
	WithinTx(ctx context.Context, fn func(exec sqlx.ExtContext) error) error
}

// collegeLocker serialises per-college id allocation.
type collegeLocker interface {
	LockForUpdate(ctx context.Context, exec sqlx.ExtContext, id string) (*models.College, error)
}
