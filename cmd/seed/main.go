// Command seed creates a user account from the terminal, prompting for the
// password without echo. Useful for bootstrapping an environment or creating
// test accounts without going through the HTTP API.
package main

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/term"

	"github.com/languagesphere/server/internal/server/config"
	"github.com/languagesphere/server/internal/server/repositories/repomanager"
	"github.com/languagesphere/server/internal/server/services"
)

func main() {
	if err := run(context.Background()); err != nil {
		log.Fatalf("%v", err)
	}
}

func run(ctx context.Context) error {
	cfg := config.LoadConfig()

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("db init error: %w", err)
	}
	defer db.Close()

	manager := repomanager.NewPostgresRepositoryManager()
	if err := manager.RunMigrations(ctx, db); err != nil {
		return fmt.Errorf("db migration error: %w", err)
	}

	reader := bufio.NewReader(os.Stdin)

	fmt.Println("Enter name")
	name, err := reader.ReadString('\n')
	if err != nil {
		return err
	}

	fmt.Println("Enter email")
	email, err := reader.ReadString('\n')
	if err != nil {
		return err
	}

	fmt.Println("Enter password")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return err
	}

	us := services.NewUserService(db, manager, cfg)
	_, user, err := us.Register(ctx, strings.TrimSpace(name), strings.TrimSpace(email), string(password))
	if err != nil {
		return err
	}

	fmt.Printf("Created user %s (%s)\n", user.Email, user.ID)
	return nil
}
