package seed

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appModels "github.com/yigit/conduct/internal/app/models"
	"github.com/yigit/conduct/internal/pkg/apperrors"
	"github.com/yigit/conduct/internal/pkg/auth"
)

type memUsers struct {
	users     []*appModels.User
	existsErr error
}

func (m *memUsers) Create(_ context.Context, u *appModels.User) (int64, error) {
	u.ID = int64(len(m.users) + 1)
	m.users = append(m.users, u)
	return u.ID, nil
}
func (m *memUsers) GetByID(context.Context, int64) (*appModels.User, error) {
	return nil, apperrors.ErrUserNotFound
}
func (m *memUsers) GetByUsername(context.Context, string) (*appModels.User, error) {
	return nil, apperrors.ErrUserNotFound
}
func (m *memUsers) UsernameExists(_ context.Context, username string) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	for _, u := range m.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

type memTypes struct {
	types []*appModels.BehaviorType
}

func (m *memTypes) Create(_ context.Context, bt *appModels.BehaviorType) (int64, error) {
	bt.ID = int64(len(m.types) + 1)
	m.types = append(m.types, bt)
	return bt.ID, nil
}
func (m *memTypes) GetAll(context.Context) ([]*appModels.BehaviorType, error) { return m.types, nil }
func (m *memTypes) GetByID(context.Context, int64) (*appModels.BehaviorType, error) {
	return nil, apperrors.ErrBehaviorTypeNotFound
}
func (m *memTypes) FindByName(_ context.Context, name string) (*appModels.BehaviorType, error) {
	for _, bt := range m.types {
		if bt.Name == name {
			return bt, nil
		}
	}
	return nil, apperrors.ErrBehaviorTypeNotFound
}
func (m *memTypes) Update(context.Context, *appModels.BehaviorType) error { return nil }
func (m *memTypes) Delete(context.Context, int64) error                   { return nil }

func TestCreateDefaultDataIsIdempotent(t *testing.T) {
	users, types := &memUsers{}, &memTypes{}
	admin := Admin{Username: "admin", Password: "admin123"}

	require.NoError(t, CreateDefaultData(context.Background(), users, types, admin, zerolog.Nop()))
	require.NoError(t, CreateDefaultData(context.Background(), users, types, admin, zerolog.Nop()))

	require.Len(t, users.users, 1)
	assert.Equal(t, appModels.RoleAdmin, users.users[0].Role)
	assert.True(t, auth.CheckPassword(users.users[0].Password, "admin123"))
	assert.Len(t, types.types, len(appModels.DefaultBehaviorTypes))
}

func TestCreateDefaultDataKeepsRenamedVocabulary(t *testing.T) {
	users := &memUsers{}
	types := &memTypes{}
	_, _ = types.Create(context.Background(), &appModels.BehaviorType{Name: "迟到", Category: appModels.CategoryExcellent})

	require.NoError(t, CreateDefaultData(context.Background(), users, types, Admin{}, zerolog.Nop()))

	assert.Empty(t, users.users, "no credentials, no admin")
	assert.Len(t, types.types, len(appModels.DefaultBehaviorTypes))
	assert.Equal(t, appModels.CategoryExcellent, types.types[0].Category, "existing type untouched")
}

func TestCreateDefaultDataJoinsErrors(t *testing.T) {
	boom := errors.New("connection reset")
	users, types := &memUsers{existsErr: boom}, &memTypes{}

	err := CreateDefaultData(context.Background(), users, types, Admin{Username: "admin", Password: "x"}, zerolog.Nop())

	assert.ErrorIs(t, err, boom)
	assert.Len(t, types.types, len(appModels.DefaultBehaviorTypes), "types are still seeded")
}
