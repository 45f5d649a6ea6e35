//go:build integration

package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seminar/internal/model"
	"seminar/internal/testutil/containers"
)

func TestGormStore_Integration(t *testing.T) {
	store := NewStore(containers.NewMySQL(t))
	ctx := context.Background()

	require.NoError(t, store.Ping(ctx))

	year := 2
	owner := &model.User{
		Email:             "ins@tructor.com",
		Username:          "ins",
		PasswordHash:      "x",
		InstructorProfile: &model.InstructorProfile{Company: "waffle", Year: &year},
	}
	require.NoError(t, store.Users().Create(ctx, owner))

	t.Run("duplicate email is translated", func(t *testing.T) {
		err := store.Users().Create(ctx, &model.User{Email: "ins@tructor.com", Username: "dup", PasswordHash: "x"})
		assert.True(t, errors.Is(err, ErrDuplicate), "got %v", err)
	})

	t.Run("user lookups preload profiles", func(t *testing.T) {
		u, err := store.Users().FindByEmail(ctx, "ins@tructor.com")
		require.NoError(t, err)
		require.NotNil(t, u.InstructorProfile)
		assert.Equal(t, "waffle", u.InstructorProfile.Company)
		assert.Nil(t, u.ParticipantProfile)

		_, err = store.Users().FindByID(ctx, 99999)
		assert.True(t, IsNotFound(err))
	})

	t.Run("participant profile is unique per user", func(t *testing.T) {
		require.NoError(t, store.Users().CreateParticipantProfile(ctx, &model.ParticipantProfile{UserID: owner.ID, IsRegistered: false}))
		err := store.Users().CreateParticipantProfile(ctx, &model.ParticipantProfile{UserID: owner.ID})
		assert.True(t, errors.Is(err, ErrDuplicate), "got %v", err)

		u, err := store.Users().FindByID(ctx, owner.ID)
		require.NoError(t, err)
		require.NotNil(t, u.ParticipantProfile)
		assert.False(t, u.ParticipantProfile.IsRegistered)
	})

	t.Run("touch last login", func(t *testing.T) {
		at := time.Date(2022, 10, 1, 9, 0, 0, 0, time.UTC)
		require.NoError(t, store.Users().TouchLastLogin(ctx, owner.ID, at))
		u, err := store.Users().FindByID(ctx, owner.ID)
		require.NoError(t, err)
		require.NotNil(t, u.LastLogin)
		assert.True(t, at.Equal(*u.LastLogin))
	})

	var seminarIDs []uint
	for i := 1; i <= 7; i++ {
		sem := &model.Seminar{Name: fmt.Sprintf("Seminar_%d", i), Capacity: 2, Count: 1, Time: "09:00", Online: i%2 == 0, OwnerID: owner.ID}
		require.NoError(t, store.Seminars().Create(ctx, sem))
		seminarIDs = append(seminarIDs, sem.ID)
	}

	t.Run("offline flag round trips", func(t *testing.T) {
		sem, err := store.Seminars().FindByID(ctx, seminarIDs[0])
		require.NoError(t, err)
		assert.False(t, sem.Online)
	})

	t.Run("list windows and counts", func(t *testing.T) {
		items, total, err := store.Seminars().List(ctx, SeminarQuery{Order: SeminarOrderEarliest, Offset: 6, Limit: 3})
		require.NoError(t, err)
		assert.Equal(t, int64(7), total)
		require.Len(t, items, 1)
		assert.Equal(t, seminarIDs[6], items[0].ID)

		items, _, err = store.Seminars().List(ctx, SeminarQuery{Order: SeminarOrderLatest, Limit: 2})
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, seminarIDs[6], items[0].ID)
	})

	t.Run("name filter is case-insensitive and literal", func(t *testing.T) {
		_, total, err := store.Seminars().List(ctx, SeminarQuery{Name: "SEMINAR", Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(7), total)

		_, total, err = store.Seminars().List(ctx, SeminarQuery{Name: "r_1", Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)

		_, total, err = store.Seminars().List(ctx, SeminarQuery{Name: "%", Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(0), total)
	})

	t.Run("memberships", func(t *testing.T) {
		m := &model.UserSeminar{
			UserID: owner.ID, SeminarID: seminarIDs[0], Role: model.SeminarRoleInstructor,
			Status: model.MembershipStatusActive, JoinedAt: time.Now(),
		}
		require.NoError(t, store.Memberships().Create(ctx, m))

		dup := &model.UserSeminar{
			UserID: owner.ID, SeminarID: seminarIDs[0], Role: model.SeminarRoleParticipant,
			Status: model.MembershipStatusActive, JoinedAt: time.Now(),
		}
		assert.True(t, errors.Is(store.Memberships().Create(ctx, dup), ErrDuplicate))

		n, err := store.Memberships().CountActiveByUser(ctx, owner.ID, model.SeminarRoleInstructor)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		rows, err := store.Memberships().ListActive(ctx, seminarIDs, model.SeminarRoleInstructor)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "ins@tructor.com", rows[0].User.Email)
		require.NotNil(t, rows[0].User.InstructorProfile)

		counts, err := store.Memberships().CountActiveBySeminars(ctx, seminarIDs, model.SeminarRoleInstructor)
		require.NoError(t, err)
		assert.Equal(t, int64(1), counts[seminarIDs[0]])
		assert.Zero(t, counts[seminarIDs[1]])

		now := time.Now()
		m.Status, m.DroppedAt = model.MembershipStatusDropped, &now
		require.NoError(t, store.Memberships().Update(ctx, m))
		n, err = store.Memberships().CountActiveBySeminar(ctx, seminarIDs[0], model.SeminarRoleInstructor)
		require.NoError(t, err)
		assert.Zero(t, n)

		found, err := store.Memberships().Find(ctx, owner.ID, seminarIDs[0])
		require.NoError(t, err)
		assert.Equal(t, model.MembershipStatusDropped, found.Status)
	})

	t.Run("transaction rolls back on error", func(t *testing.T) {
		boom := errors.New("boom")
		err := store.WithTransaction(ctx, func(ctx context.Context, tx Store) error {
			sem, err := tx.Seminars().FindByIDForUpdate(ctx, seminarIDs[1])
			if err != nil {
				return err
			}
			sem.Name = "renamed"
			if err := tx.Seminars().Update(ctx, sem); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)

		sem, err := store.Seminars().FindByID(ctx, seminarIDs[1])
		require.NoError(t, err)
		assert.Equal(t, "Seminar_2", sem.Name)
	})
}
