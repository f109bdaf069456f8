package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"golang.org/x/crypto/bcrypt"

	"github.com/languagesphere/server/internal/common"
	"github.com/languagesphere/server/internal/dbx"
	"github.com/languagesphere/server/internal/server/auth"
	"github.com/languagesphere/server/internal/server/config"
	"github.com/languagesphere/server/internal/server/models"
	usersrepo "github.com/languagesphere/server/internal/server/repositories/users"
)

// --- shared fakes and helpers ---

type upsertCall struct {
	userID    string
	product   string
	paymentID string
}

type fakeUsersRepo struct {
	createOut *fakeCreate
	createErr error

	byEmailOut *models.User
	byEmailErr error

	byIDOut *models.User
	byIDErr error

	paymentsOut models.Payments
	paymentsErr error

	upsertErr error
	upserts   []upsertCall
}

type fakeCreate struct{ user *models.User }

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut.user, nil
	}
	u.Payments = models.NewPayments()
	return u, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.byEmailErr != nil {
		return nil, f.byEmailErr
	}
	return f.byEmailOut, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if f.byIDErr != nil {
		return nil, f.byIDErr
	}
	return f.byIDOut, nil
}

func (f *fakeUsersRepo) GetPayments(ctx context.Context, userID string) (models.Payments, error) {
	if f.paymentsErr != nil {
		return nil, f.paymentsErr
	}
	if f.paymentsOut != nil {
		return f.paymentsOut, nil
	}
	return models.NewPayments(), nil
}

func (f *fakeUsersRepo) UpsertPayment(ctx context.Context, userID, product, paymentID string, paidAt time.Time) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upserts = append(f.upserts, upsertCall{userID: userID, product: product, paymentID: paymentID})
	return nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository      { return m.u }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:             "k",
		TokenValidityDuration: 7 * 24 * time.Hour,
		BcryptCost:            bcrypt.MinCost,
		PDFURLTTL:             time.Hour,
	}
}

func newUserService(t *testing.T, db *sql.DB, repo *fakeUsersRepo) *UserService {
	t.Helper()
	return NewUserService(db, &fakeRepoManager{u: repo}, testConfig())
}

func hashFor(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt error: %v", err)
	}
	return string(h)
}

// --- Register ---

func TestRegister_Success(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	repo := &fakeUsersRepo{}
	s := newUserService(t, db, repo)

	token, user, err := s.Register(context.Background(), "Alice", "Alice@X.com", "secret1")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if user.ID == "" {
		t.Fatal("expected generated user id")
	}
	if user.Email != "alice@x.com" {
		t.Fatalf("email not normalized: %q", user.Email)
	}
	if user.PasswordHash == "secret1" || user.PasswordHash == "" {
		t.Fatal("password must be stored hashed")
	}
	if user.Payments.PaidFor(models.ProductBook) || user.Payments.PaidFor(models.ProductCourse) {
		t.Fatalf("fresh user must start unpaid: %+v", user.Payments)
	}

	gotID, err := auth.GetUserIDFromToken(token, []byte("k"))
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if gotID != user.ID {
		t.Fatalf("token user id mismatch: got %q want %q", gotID, user.ID)
	}
}

func TestRegister_ReportsAllViolations(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	s := newUserService(t, db, &fakeUsersRepo{})

	_, _, err := s.Register(context.Background(), "  ", "not-an-email", "short")

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("want *ValidationError, got %v", err)
	}
	if len(verr.Fields) != 3 {
		t.Fatalf("want 3 violations, got %d: %+v", len(verr.Fields), verr.Fields)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	repo := &fakeUsersRepo{createErr: common.ErrorAlreadyExists}
	s := newUserService(t, db, repo)

	_, _, err := s.Register(context.Background(), "Alice", "alice@x.com", "secret1")
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("want common.ErrorAlreadyExists, got %v", err)
	}
}

// --- Login ---

func TestLogin_Success(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	repo := &fakeUsersRepo{byEmailOut: &models.User{
		ID:           "u-1",
		Email:        "alice@x.com",
		PasswordHash: hashFor(t, "secret1"),
		Payments:     models.NewPayments(),
	}}
	s := newUserService(t, db, repo)

	token, user, err := s.Login(context.Background(), "alice@x.com", "secret1")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if user.ID != "u-1" {
		t.Fatalf("unexpected user: %+v", user)
	}

	gotID, err := auth.GetUserIDFromToken(token, []byte("k"))
	if err != nil || gotID != "u-1" {
		t.Fatalf("token must verify to the same user: id=%q err=%v", gotID, err)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	repo := &fakeUsersRepo{byEmailOut: &models.User{
		ID:           "u-1",
		PasswordHash: hashFor(t, "secret1"),
	}}
	s := newUserService(t, db, repo)

	_, _, err := s.Login(context.Background(), "alice@x.com", "wrong")
	if !errors.Is(err, common.ErrorInvalidCredentials) {
		t.Fatalf("want common.ErrorInvalidCredentials, got %v", err)
	}
}

func TestLogin_UnknownEmailIndistinguishable(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	repo := &fakeUsersRepo{byEmailErr: common.ErrorNotFound}
	s := newUserService(t, db, repo)

	_, _, err := s.Login(context.Background(), "ghost@x.com", "whatever")
	if !errors.Is(err, common.ErrorInvalidCredentials) {
		t.Fatalf("unknown email must look like wrong password, got %v", err)
	}
}

// --- GetUser ---

func TestGetUser_Success(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	repo := &fakeUsersRepo{byIDOut: &models.User{ID: "u-1", Name: "Alice", Payments: models.NewPayments()}}
	s := newUserService(t, db, repo)

	user, err := s.GetUser(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("GetUser error: %v", err)
	}
	if user.Name != "Alice" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestGetUser_NotFound(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	repo := &fakeUsersRepo{byIDErr: common.ErrorNotFound}
	s := newUserService(t, db, repo)

	_, err := s.GetUser(context.Background(), "gone")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}
