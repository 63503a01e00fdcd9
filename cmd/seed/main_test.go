package main

import (
	"context"
	"errors"
	"testing"

	"matchmakr-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeSkills struct {
	domain.SkillRepository
	names map[string]bool
	fail  error
}

func (f *fakeSkills) Create(_ context.Context, s *domain.Skill) error {
	if f.fail != nil {
		return f.fail
	}
	if f.names[s.Name] {
		return domain.ErrConflict
	}
	f.names[s.Name] = true
	s.ID = int64(len(f.names))
	return nil
}

type fakeUsers struct {
	domain.UserRepository
	byName map[string]*domain.User
}

func (f *fakeUsers) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	if u, ok := f.byName[username]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUsers) Create(_ context.Context, u *domain.User) error {
	u.ID = int64(len(f.byName) + 1)
	f.byName[u.Username] = u
	return nil
}

type fakeProfiles struct {
	domain.ProfileRepository
	created []*domain.UserProfile
}

func (f *fakeProfiles) Create(_ context.Context, p *domain.UserProfile) error {
	f.created = append(f.created, p)
	return nil
}

func TestSeedSkillsIsIdempotent(t *testing.T) {
	repo := &fakeSkills{names: map[string]bool{"Go": true}}

	added, err := seedSkills(context.Background(), repo)
	require.NoError(t, err)
	assert.Equal(t, len(catalogue)-1, added)

	added, err = seedSkills(context.Background(), repo)
	require.NoError(t, err)
	assert.Zero(t, added)
}

func TestSeedSkillsStopsOnStorageError(t *testing.T) {
	repo := &fakeSkills{names: map[string]bool{}, fail: errors.New("connection reset")}

	_, err := seedSkills(context.Background(), repo)
	assert.ErrorContains(t, err, "connection reset")
}

func TestSeedStaff(t *testing.T) {
	users := &fakeUsers{byName: map[string]*domain.User{}}
	profiles := &fakeProfiles{}

	require.NoError(t, seedStaff(context.Background(), users, profiles, "ops", "s3cret-pass"))
	require.NoError(t, seedStaff(context.Background(), users, profiles, "ops", "s3cret-pass"))

	u := users.byName["ops"]
	require.NotNil(t, u)
	assert.True(t, u.IsStaff)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("s3cret-pass")))

	require.Len(t, profiles.created, 1)
	assert.Equal(t, domain.RoleAdmin, profiles.created[0].RoleType)
	assert.Equal(t, u.ID, profiles.created[0].UserID)
}
