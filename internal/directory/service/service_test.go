package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/medforce/fieldtrack/internal/directory/domain"
	"github.com/medforce/fieldtrack/internal/directory/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

func newTestDirectory(t *testing.T) (*gorm.DB, domain.Service) {
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}))

	svc := New(Params{
		DB:   db,
		Log:  zaptest.NewLogger(t),
		Repo: repository.Provide(),
	})
	return db, svc
}

func TestResolveIdentity(t *testing.T) {
	db, svc := newTestDirectory(t)
	node, _ := snowflake.NewNode(1)
	ctx := context.Background()

	// One user's display name collides with another's email local part, so
	// lookups must try email before name.
	byEmail := domain.User{ID: node.Generate(), Name: "Asha Mehta", Email: "asha@medforce.in", Role: domain.RoleManager}
	byName := domain.User{ID: node.Generate(), Name: "asha@medforce.in", Email: "other@medforce.in", Role: domain.RoleRepresentative}
	require.NoError(t, db.Create(&byEmail).Error)
	require.NoError(t, db.Create(&byName).Error)

	t.Run("email match wins", func(t *testing.T) {
		user, err := svc.ResolveIdentity(ctx, "ASHA@medforce.in")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, byEmail.ID, user.ID)
	})

	t.Run("falls back to display name", func(t *testing.T) {
		user, err := svc.ResolveIdentity(ctx, "asha mehta")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, byEmail.ID, user.ID)
	})

	t.Run("unknown identity is nil not error", func(t *testing.T) {
		user, err := svc.ResolveIdentity(ctx, "ghost@medforce.in")
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("blank identity is nil", func(t *testing.T) {
		user, err := svc.ResolveIdentity(ctx, "   ")
		require.NoError(t, err)
		assert.Nil(t, user)
	})
}

func TestManagedRepresentatives(t *testing.T) {
	db, svc := newTestDirectory(t)
	node, _ := snowflake.NewNode(1)
	ctx := context.Background()

	rep1 := domain.User{ID: node.Generate(), Name: "Ravi Kumar", Email: "ravi@medforce.in", Role: domain.RoleRepresentative, AssignedManager: "Asha Mehta"}
	rep2 := domain.User{ID: node.Generate(), Name: "Meena Iyer", Email: "meena@medforce.in", Role: domain.RoleRepresentative, AssignedManager: "ASHA MEHTA"}
	rep3 := domain.User{ID: node.Generate(), Name: "Vikram Shah", Email: "vikram@medforce.in", Role: domain.RoleRepresentative, AssignedManager: ""}
	for _, u := range []domain.User{rep1, rep2, rep3} {
		require.NoError(t, db.Create(&u).Error)
	}

	reps, err := svc.ManagedRepresentatives(ctx, "asha mehta")
	require.NoError(t, err)
	require.Len(t, reps, 2)

	// A blank manager identity must not sweep up unassigned users.
	reps, err = svc.ManagedRepresentatives(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, reps)
}
