package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/familybank/allowance/internal/config"
	domainErrors "github.com/familybank/allowance/internal/domain/errors"
	"github.com/familybank/allowance/internal/domain/repository"
	"github.com/familybank/allowance/internal/logger"
	pkgAuth "github.com/familybank/allowance/internal/pkg/auth"
	"github.com/familybank/allowance/internal/storage/postgres"
)

// SeedCmd creates the admin account the rest of the accounts are managed from.
type SeedCmd struct {
	Username    string `default:"parent" help:"Admin username."`
	Password    string `required:"" help:"Admin password."`
	DisplayName string `default:"Parent" help:"Admin display name."`
}

func (c *SeedCmd) Run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx := context.Background()
	storage, err := postgres.New(ctx, cfg.DatabaseURI, logger.New())
	if err != nil {
		return err
	}
	defer storage.Close()

	hash, err := pkgAuth.NewBcryptHasher(0).Hash(c.Password)
	if err != nil {
		return err
	}

	admin, err := storage.Users().Create(ctx, repository.CreateUserInput{
		Username:     c.Username,
		PasswordHash: hash,
		DisplayName:  c.DisplayName,
		IsAdmin:      true,
	})
	if err != nil {
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			return fmt.Errorf("user %q already exists", c.Username)
		}
		return err
	}

	fmt.Printf("created admin %q (id %d)\n", admin.Username, admin.ID)
	return nil
}
