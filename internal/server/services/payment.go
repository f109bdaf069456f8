package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/languagesphere/server/internal/common"
	"github.com/languagesphere/server/internal/dbx"
	"github.com/languagesphere/server/internal/server/models"
	"github.com/languagesphere/server/internal/server/providers"
	"github.com/languagesphere/server/internal/server/repositories/repomanager"
)

// PaymentService records and reports per-product payment completion.
type PaymentService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	verifier    providers.Verifier
}

func NewPaymentService(db *sql.DB, m repomanager.RepositoryManager, verifier providers.Verifier) *PaymentService {
	return &PaymentService{db: db, repomanager: m, verifier: verifier}
}

// Verify confirms an external payment and marks the product as paid for the
// user. Repeat calls overwrite the stored payment id and date (last write
// wins, no history). Returns the updated payments map.
func (s *PaymentService) Verify(ctx context.Context, userID, product, paymentID string) (models.Payments, error) {
	if !models.ValidProduct(product) {
		return nil, fmt.Errorf("%w: unknown product %q", common.ErrorInvalidRequest, product)
	}
	if paymentID == "" {
		return nil, fmt.Errorf("%w: payment id is required", common.ErrorInvalidRequest)
	}

	repo := s.repomanager.Users(s.db)
	if _, err := repo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	if err := s.verifier.Verify(ctx, paymentID); err != nil {
		if errors.Is(err, providers.ErrPaymentNotCaptured) {
			return nil, fmt.Errorf("%w: payment %s not confirmed by provider", common.ErrorInvalidRequest, paymentID)
		}
		return nil, fmt.Errorf("error verifying payment: %w", err)
	}

	// Write and read back inside one transaction so the returned map is the
	// state this call produced.
	var payments models.Payments
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		txRepo := s.repomanager.Users(tx)
		if err := txRepo.UpsertPayment(ctx, userID, product, paymentID, time.Now()); err != nil {
			return err
		}
		var readErr error
		payments, readErr = txRepo.GetPayments(ctx, userID)
		return readErr
	})
	if err != nil {
		return nil, fmt.Errorf("error recording payment: %w", err)
	}

	return payments, nil
}

// Status returns the current payments map for the user. Missing payment rows
// read as unpaid; a missing user yields common.ErrorNotFound.
func (s *PaymentService) Status(ctx context.Context, userID string) (models.Payments, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.Payments, nil
}
