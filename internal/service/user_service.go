package service

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"seminar/internal/auth"
	"seminar/internal/cache"
	"seminar/internal/errors"
	"seminar/internal/metrics"
	"seminar/internal/model"
	"seminar/internal/repository"
)

const defaultUserCacheTTL = 5 * time.Minute

// EditUserInput is a partial profile update. Profile fields only apply when
// the user holds that profile.
type EditUserInput struct {
	Username   *string
	Password   *string
	University *string
	Company    *string
	Year       *int
}

// RegisterParticipantInput adds a participant profile to an existing user.
type RegisterParticipantInput struct {
	University   string
	IsRegistered *bool
}

// UserService exposes user profile operations.
type UserService interface {
	GetUser(ctx context.Context, id uint) (*model.UserView, error)
	EditUser(ctx context.Context, id uint, in EditUserInput) (*model.UserView, error)
	RegisterParticipant(ctx context.Context, id uint, in RegisterParticipantInput) (*model.UserView, error)
}

type userService struct {
	repo  repository.UserRepository
	cache *cache.Client
	ttl   time.Duration
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, cache *cache.Client, ttl time.Duration) UserService {
	if ttl <= 0 {
		ttl = defaultUserCacheTTL
	}
	return &userService{repo: repo, cache: cache, ttl: ttl}
}

func (s *userService) cacheKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

func (s *userService) GetUser(ctx context.Context, id uint) (*model.UserView, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.UserView
		if err := json.Unmarshal(data, &cached); err == nil {
			metrics.CacheLookups.WithLabelValues("user", "hit").Inc()
			return &cached, nil
		}
	}
	metrics.CacheLookups.WithLabelValues("user", "miss").Inc()

	user, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	view := model.NewUserView(user)
	if payload, err := json.Marshal(view); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, s.ttl)
	}
	return view, nil
}

func (s *userService) EditUser(ctx context.Context, id uint, in EditUserInput) (*model.UserView, error) {
	if in.Year != nil && *in.Year < 0 {
		return nil, errors.BadRequest(errors.MsgInvalidYear)
	}
	if in.Username != nil && strings.TrimSpace(*in.Username) == "" {
		return nil, errors.BadRequest(errors.MsgMissingFields)
	}

	user, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Username != nil {
		user.Username = *in.Username
	}
	if in.Password != nil {
		hash, err := auth.HashPassword(*in.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = hash
	}
	if p := user.ParticipantProfile; p != nil && in.University != nil {
		p.University = *in.University
	}
	if p := user.InstructorProfile; p != nil {
		if in.Company != nil {
			p.Company = *in.Company
		}
		if in.Year != nil {
			p.Year = in.Year
		}
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return model.NewUserView(user), nil
}

func (s *userService) RegisterParticipant(ctx context.Context, id uint, in RegisterParticipantInput) (*model.UserView, error) {
	user, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.IsParticipant() {
		return nil, errors.Conflict(errors.MsgAlreadyParticipant)
	}

	registered := true
	if in.IsRegistered != nil {
		registered = *in.IsRegistered
	}
	profile := &model.ParticipantProfile{
		UserID:       user.ID,
		University:   in.University,
		IsRegistered: registered,
	}
	if err := s.repo.CreateParticipantProfile(ctx, profile); err != nil {
		if stderrors.Is(err, repository.ErrDuplicate) {
			return nil, errors.Conflict(errors.MsgAlreadyParticipant)
		}
		return nil, fmt.Errorf("create participant profile: %w", err)
	}
	user.ParticipantProfile = profile

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return model.NewUserView(user), nil
}

func (s *userService) find(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, errors.NotFound(errors.MsgUserNotFound)
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}
