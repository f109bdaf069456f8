package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/languagesphere/server/internal/common"
	"github.com/languagesphere/server/internal/dbx"
	"github.com/languagesphere/server/internal/server/models"
)

// pgUniqueViolation is the SQLSTATE code Postgres reports when an insert
// breaks a unique constraint (here: users.email).
const pgUniqueViolation = "23505"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	query :=
		`INSERT INTO users (id, name, email, password_hash)
         VALUES ($1, $2, $3, $4)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.ID, user.Name, user.Email, user.PasswordHash).Scan(&user.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	user.Payments = models.NewPayments()
	return user, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query :=
		`SELECT id, name, email, password_hash, created_at FROM users
		 WHERE email = $1
		 `
	return r.getOne(ctx, query, email)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query :=
		`SELECT id, name, email, password_hash, created_at FROM users
		 WHERE id = $1
		 `
	return r.getOne(ctx, query, id)
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, arg any) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	payments, err := r.GetPayments(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	user.Payments = payments

	return user, nil
}

func (r *PostgresRepository) GetPayments(ctx context.Context, userID string) (models.Payments, error) {
	query :=
		`SELECT product, paid, payment_date, payment_id FROM payments
		 WHERE user_id = $1
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	payments := models.Payments{}
	for rows.Next() {
		var (
			product   string
			paid      bool
			paidAt    sql.NullTime
			paymentID sql.NullString
		)
		if err := rows.Scan(&product, &paid, &paidAt, &paymentID); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		e := models.Entitlement{Paid: paid, PaymentID: paymentID.String}
		if paidAt.Valid {
			t := paidAt.Time
			e.PaymentDate = &t
		}
		payments[product] = e
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return payments.Normalized(), nil
}

func (r *PostgresRepository) UpsertPayment(ctx context.Context, userID, product, paymentID string, paidAt time.Time) error {
	query :=
		`INSERT INTO payments (user_id, product, paid, payment_date, payment_id)
		 VALUES ($1, $2, true, $3, $4)
		 ON CONFLICT (user_id, product)
		 DO UPDATE SET paid = true, payment_date = EXCLUDED.payment_date, payment_id = EXCLUDED.payment_id
		 `

	if _, err := r.db.ExecContext(ctx, query, userID, product, paidAt, paymentID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
