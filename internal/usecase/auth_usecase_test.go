package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"matchmakr-backend/internal/domain"
	"matchmakr-backend/internal/usecase"
	"matchmakr-backend/pkg/apperror"
	"matchmakr-backend/pkg/audit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates account and employer profile", func(t *testing.T) {
		users, profiles := new(MockUserRepo), new(MockProfileRepo)
		uc := usecase.NewAuthUsecase(MockTransactor{}, users, profiles, stubTokens{}, audit.NewNop())

		users.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.User).ID = 7
		})
		profiles.On("Create", ctx, mock.AnythingOfType("*domain.UserProfile")).Return(nil)

		res, err := uc.Register(ctx, domain.RegisterInput{
			Username:   "  acme ",
			Email:      "HR@Acme.io",
			Password:   "s3cret-pass",
			IsEmployer: true,
		})
		require.NoError(t, err)

		assert.Equal(t, "token", res.Token)
		assert.Equal(t, "acme", res.User.Username)
		assert.Equal(t, "hr@acme.io", res.User.Email)
		assert.Equal(t, int64(7), res.Profile.UserID)
		assert.Equal(t, domain.RoleEmployer, res.Profile.RoleType)
		assert.True(t, res.Profile.IsEmployer)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(res.User.PasswordHash), []byte("s3cret-pass")))
	})

	t.Run("Duplicate username is a conflict", func(t *testing.T) {
		users := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(MockTransactor{}, users, new(MockProfileRepo), stubTokens{}, audit.NewNop())
		users.On("Create", ctx, mock.Anything).Return(domain.ErrConflict)

		_, err := uc.Register(ctx, domain.RegisterInput{Username: "acme", Password: "x"})
		assert.Equal(t, http.StatusConflict, apperror.CodeOf(err))
	})

	t.Run("Unknown role is rejected", func(t *testing.T) {
		uc := usecase.NewAuthUsecase(MockTransactor{}, new(MockUserRepo), new(MockProfileRepo), stubTokens{}, audit.NewNop())
		_, err := uc.Register(ctx, domain.RegisterInput{Username: "a", Password: "x", RoleType: "PIRATE"})
		assert.Equal(t, http.StatusBadRequest, apperror.CodeOf(err))
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &domain.User{ID: 1, Username: "alice", PasswordHash: string(hash)}

	users, profiles := new(MockUserRepo), new(MockProfileRepo)
	uc := usecase.NewAuthUsecase(MockTransactor{}, users, profiles, stubTokens{}, audit.NewNop())
	users.On("GetByUsername", ctx, "alice").Return(user, nil)
	users.On("GetByUsername", ctx, "nobody").Return(nil, domain.ErrNotFound)
	profiles.On("GetByUserID", ctx, int64(1)).Return(&domain.UserProfile{UserID: 1}, nil)

	res, err := uc.Login(ctx, "alice", "correct")
	require.NoError(t, err)
	assert.Equal(t, "token", res.Token)

	_, err = uc.Login(ctx, "alice", "wrong")
	assert.Equal(t, http.StatusUnauthorized, apperror.CodeOf(err))

	_, err = uc.Login(ctx, "nobody", "correct")
	assert.Equal(t, http.StatusUnauthorized, apperror.CodeOf(err))
	assert.Equal(t, "Invalid username or password", err.Error())
}

func TestResolveCaller(t *testing.T) {
	ctx := context.Background()
	users, profiles := new(MockUserRepo), new(MockProfileRepo)
	uc := usecase.NewAuthUsecase(MockTransactor{}, users, profiles, stubTokens{}, audit.NewNop())

	users.On("GetByID", ctx, int64(2)).Return(&domain.User{ID: 2, Username: "acme", IsStaff: true}, nil)
	profiles.On("GetByUserID", ctx, int64(2)).Return(&domain.UserProfile{UserID: 2, RoleType: domain.RoleEmployer}, nil)
	users.On("GetByID", ctx, int64(3)).Return(nil, domain.ErrNotFound)

	caller, err := uc.ResolveCaller(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, domain.Caller{UserID: 2, Username: "acme", IsStaff: true, IsEmployer: true}, caller)

	_, err = uc.ResolveCaller(ctx, 3)
	assert.Equal(t, http.StatusUnauthorized, apperror.CodeOf(err))
}
