package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"seminar/internal/auth"
	"seminar/internal/errors"
	"seminar/internal/model"
)

func TestUserService_GetUser(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()
	u := &model.User{Email: "me@example.com", Username: "me", ParticipantProfile: &model.ParticipantProfile{University: "SNU", IsRegistered: true}}
	require.NoError(t, store.Users().Create(ctx, u))

	svc := NewUserService(store.Users(), nil, 0)

	view, err := svc.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "me@example.com", view.Email)
	require.NotNil(t, view.Participant)
	assert.Equal(t, "SNU", view.Participant.University)
	assert.Nil(t, view.Instructor)

	_, err = svc.GetUser(ctx, 9999)
	assert.Equal(t, errors.NotFound(errors.MsgUserNotFound), err)
}

func TestUserService_EditUser(t *testing.T) {
	ctx := context.Background()
	year := 1

	t.Run("updates fields for the profiles the user holds", func(t *testing.T) {
		store := newMemStore()
		u := &model.User{
			Email:             "ins@tructor.com",
			Username:          "old",
			InstructorProfile: &model.InstructorProfile{Company: "old co", Year: &year},
		}
		require.NoError(t, store.Users().Create(ctx, u))
		svc := NewUserService(store.Users(), nil, 0)

		view, err := svc.EditUser(ctx, u.ID, EditUserInput{
			Username:   strPtr("new"),
			Password:   strPtr("secret"),
			Company:    strPtr("waffle"),
			Year:       intPtr(4),
			University: strPtr("ignored"),
		})

		require.NoError(t, err)
		assert.Equal(t, "new", view.Username)
		assert.Equal(t, "waffle", view.Instructor.Company)
		assert.Equal(t, 4, *view.Instructor.Year)
		assert.Nil(t, view.Participant)

		saved, err := store.Users().FindByID(ctx, u.ID)
		require.NoError(t, err)
		assert.True(t, auth.CheckPassword(saved.PasswordHash, "secret"))
	})

	t.Run("negative year", func(t *testing.T) {
		svc := NewUserService(newMemStore().Users(), nil, 0)
		_, err := svc.EditUser(ctx, 1, EditUserInput{Year: intPtr(-1)})
		assert.Equal(t, errors.BadRequest(errors.MsgInvalidYear), err)
	})

	t.Run("blank username", func(t *testing.T) {
		svc := NewUserService(newMemStore().Users(), nil, 0)
		_, err := svc.EditUser(ctx, 1, EditUserInput{Username: strPtr("  ")})
		assert.Equal(t, errors.BadRequest(errors.MsgMissingFields), err)
	})

	t.Run("unknown user", func(t *testing.T) {
		svc := NewUserService(newMemStore().Users(), nil, 0)
		_, err := svc.EditUser(ctx, 1, EditUserInput{Username: strPtr("x")})
		assert.Equal(t, http.StatusNotFound, errors.StatusOf(err))
	})
}

func TestUserService_RegisterParticipant(t *testing.T) {
	ctx := context.Background()

	t.Run("instructor gains participant profile", func(t *testing.T) {
		store := newMemStore()
		u := &model.User{Email: "ins@tructor.com", InstructorProfile: &model.InstructorProfile{}}
		require.NoError(t, store.Users().Create(ctx, u))
		svc := NewUserService(store.Users(), nil, 0)

		view, err := svc.RegisterParticipant(ctx, u.ID, RegisterParticipantInput{University: "SNU"})

		require.NoError(t, err)
		require.NotNil(t, view.Participant)
		assert.True(t, view.Participant.IsRegistered)
		assert.NotNil(t, view.Instructor)

		saved, err := store.Users().FindByID(ctx, u.ID)
		require.NoError(t, err)
		assert.True(t, saved.IsParticipant())
	})

	t.Run("explicitly unregistered", func(t *testing.T) {
		store := newMemStore()
		u := &model.User{Email: "ins@tructor.com", InstructorProfile: &model.InstructorProfile{}}
		require.NoError(t, store.Users().Create(ctx, u))
		svc := NewUserService(store.Users(), nil, 0)

		view, err := svc.RegisterParticipant(ctx, u.ID, RegisterParticipantInput{IsRegistered: boolPtr(false)})

		require.NoError(t, err)
		assert.False(t, view.Participant.IsRegistered)
	})

	t.Run("already a participant", func(t *testing.T) {
		store := newMemStore()
		u := &model.User{Email: "par@ticipant.com", ParticipantProfile: &model.ParticipantProfile{IsRegistered: true}}
		require.NoError(t, store.Users().Create(ctx, u))
		svc := NewUserService(store.Users(), nil, 0)

		_, err := svc.RegisterParticipant(ctx, u.ID, RegisterParticipantInput{})

		assert.Equal(t, errors.Conflict(errors.MsgAlreadyParticipant), err)
	})

	t.Run("concurrent registration loses on unique profile", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("FindByID", mock.Anything, uint(5)).Return(&model.User{ID: 5}, nil)
		repo.On("CreateParticipantProfile", mock.Anything, mock.AnythingOfType("*model.ParticipantProfile")).Return(gorm.ErrDuplicatedKey)
		svc := NewUserService(repo, nil, 0)

		_, err := svc.RegisterParticipant(ctx, 5, RegisterParticipantInput{})

		assert.Equal(t, errors.Conflict(errors.MsgAlreadyParticipant), err)
		repo.AssertExpectations(t)
	})
}
