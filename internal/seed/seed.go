package seed

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	appModels "github.com/yigit/conduct/internal/app/models"
	appRepos "github.com/yigit/conduct/internal/app/repositories"
	"github.com/yigit/conduct/internal/pkg/apperrors"
	"github.com/yigit/conduct/internal/pkg/auth"
)

// Admin holds the credentials of the account created on first start
type Admin struct {
	Username string
	Password string
}

// CreateDefaultData creates the admin account and the default behavior types if they don't exist.
// Every step runs even when an earlier one fails; the failures are joined.
func CreateDefaultData(
	ctx context.Context,
	userRepo appRepos.IUserRepository,
	typeRepo appRepos.IBehaviorTypeRepository,
	admin Admin,
	lgr zerolog.Logger,
) error {
	lgr.Info().Msg("Checking/Creating default data (admin user, behavior types)...")
	var finalErr error

	if err := ensureAdmin(ctx, userRepo, admin, lgr); err != nil {
		finalErr = errors.Join(finalErr, err)
	}

	for _, def := range appModels.DefaultBehaviorTypes {
		_, err := typeRepo.FindByName(ctx, def.Name)
		if err == nil {
			continue
		}
		if !errors.Is(err, apperrors.ErrBehaviorTypeNotFound) {
			lgr.Error().Err(err).Str("name", def.Name).Msg("Error looking up behavior type")
			finalErr = errors.Join(finalErr, err)
			continue
		}

		bt := def
		if _, err := typeRepo.Create(ctx, &bt); err != nil && !errors.Is(err, apperrors.ErrResourceAlreadyExists) {
			lgr.Error().Err(err).Str("name", def.Name).Msg("Error creating behavior type")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		lgr.Info().Str("name", bt.Name).Str("category", string(bt.Category)).Msg("Default behavior type created")
	}

	lgr.Info().Msg("Default data check/creation finished.")
	return finalErr
}

func ensureAdmin(ctx context.Context, userRepo appRepos.IUserRepository, admin Admin, lgr zerolog.Logger) error {
	username := strings.TrimSpace(admin.Username)
	if username == "" || admin.Password == "" {
		lgr.Warn().Msg("Seed admin credentials not configured, skipping admin creation")
		return nil
	}

	exists, err := userRepo.UsernameExists(ctx, username)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking if admin user exists")
		return err
	}
	if exists {
		lgr.Info().Msg("Admin user already exists, skipping creation")
		return nil
	}

	hashedPassword, err := auth.HashPassword(admin.Password)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing admin password")
		return err
	}

	adminID, err := userRepo.Create(ctx, &appModels.User{
		Username:  username,
		Password:  hashedPassword,
		Role:      appModels.RoleAdmin,
		CreatedAt: time.Now(),
	})
	if err != nil {
		lgr.Error().Err(err).Msg("Error creating admin user")
		return err
	}
	lgr.Info().Int64("adminID", adminID).Msg("Default admin user created successfully")
	return nil
}
