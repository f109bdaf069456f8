// Package httpapi exposes the service layer over HTTP: JSON endpoints for
// registration, login, payment verification and status, and gated delivery
// of the book PDF.
package httpapi

import (
	"database/sql"

	"github.com/languagesphere/server/internal/logging"
	"github.com/languagesphere/server/internal/server/config"
	"github.com/languagesphere/server/internal/server/services"
)

// Server holds the handler dependencies. Construct it with NewServer and
// mount Router on an http.Server.
type Server struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	users    *services.UserService
	payments *services.PaymentService
	books    *services.BookService
}

func NewServer(cfg *config.Config, logger logging.Logger, db *sql.DB,
	users *services.UserService, payments *services.PaymentService, books *services.BookService) *Server {
	return &Server{
		config:   cfg,
		logger:   logger,
		db:       db,
		users:    users,
		payments: payments,
		books:    books,
	}
}
