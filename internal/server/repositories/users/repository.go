package users

import (
	"context"
	"time"

	"github.com/languagesphere/server/internal/server/models"
)

// Repository persists user records and their per-product entitlements.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetPayments(ctx context.Context, userID string) (models.Payments, error)
	UpsertPayment(ctx context.Context, userID, product, paymentID string, paidAt time.Time) error
}
