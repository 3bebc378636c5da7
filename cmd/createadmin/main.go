package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/anonto42/social-admin/backend/internal/auth"
	"github.com/anonto42/social-admin/backend/internal/models"
	"github.com/anonto42/social-admin/backend/internal/repositories"
	"github.com/anonto42/social-admin/backend/internal/validators"
	"github.com/anonto42/social-admin/backend/pkg/config"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
)

var cmd = &cli.Command{
	Name:  "createadmin",
	Usage: "Create an admin account for the dashboard",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "name",
			Usage:   "Display name of the admin",
			Value:   "Admin",
			Sources: cli.EnvVars("ADMIN_NAME"),
		},
		&cli.StringFlag{
			Name:     "email",
			Usage:    "Login email of the admin",
			Required: true,
			Sources:  cli.EnvVars("ADMIN_EMAIL"),
		},
		&cli.StringFlag{
			Name:     "password",
			Usage:    "Login password of the admin, at least 8 characters",
			Required: true,
			Sources:  cli.EnvVars("ADMIN_PASSWORD"),
		},
		&cli.BoolFlag{
			Name:  "migrate",
			Usage: "Create missing tables before inserting the admin",
		},
	},
	Action: func(ctx context.Context, c *cli.Command) error {
		req := models.CreateAdminRequest{
			Name:     c.String("name"),
			Email:    strings.ToLower(strings.TrimSpace(c.String("email"))),
			Password: c.String("password"),
		}
		if err := validators.NewValidator().Struct(req); err != nil {
			return errors.Wrap(err, "invalid admin")
		}

		cfg := config.Load()
		config.SetupLogger(cfg)
		if cfg.PostgresURL == "" {
			return errors.New("POSTGRES_CONN_STR environment variable not set")
		}

		db, err := config.InitDB(cfg)
		if err != nil {
			return err
		}
		defer db.CloseDB()

		if c.Bool("migrate") {
			if err := config.Migrate(db.Postgres); err != nil {
				return errors.Wrap(err, "migrate")
			}
		}

		return createAdmin(ctx, repositories.NewPostgresUserRepository(db.Postgres), req)
	},
}

// createAdmin inserts the admin unless an admin with the same email exists.
// An existing non-admin account with that email is an error.
func createAdmin(ctx context.Context, users repositories.UserRepository, req models.CreateAdminRequest) error {
	existing, err := users.GetUserByEmail(ctx, req.Email)
	if err == nil {
		if existing.Role != models.RoleAdmin {
			return errors.Errorf("%s already belongs to a %q account", existing.Email, existing.Role)
		}
		logrus.WithFields(logrus.Fields{
			"email": existing.Email,
			"role":  existing.Role,
		}).Info("Admin already exists, skipping")
		return nil
	}
	if !errors.Is(err, repositories.ErrUserNotFound) {
		return err
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return err
	}

	admin := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hashed,
		Role:     models.RoleAdmin,
	}
	if err := users.CreateUser(ctx, admin); err != nil {
		return err
	}

	logrus.WithField("id", admin.ID).Infof("Admin %s created", admin.Email)
	return nil
}

func main() {
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
