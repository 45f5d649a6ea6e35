package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"seminar/internal/auth"
	"seminar/internal/errors"
	"seminar/internal/model"
	"seminar/internal/repository"
)

// SignUpInput describes a new account. Role selects which profile is created.
type SignUpInput struct {
	Email    string
	Username string
	Password string
	Role     string

	// participant profile
	University   string
	IsRegistered *bool

	// instructor profile
	Company string
	Year    *int
}

// AuthService handles authentication operations.
type AuthService interface {
	SignUp(ctx context.Context, in SignUpInput) (token string, user *model.User, err error)
	LogIn(ctx context.Context, email, password string) (token string, user *model.User, err error)
	// Authenticate resolves a bearer token into its claims.
	Authenticate(ctx context.Context, token string) (*auth.Claims, error)
	Logout(ctx context.Context, token string) error
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
	now        func() time.Time
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		tokenStore: tokenStore,
		now:        time.Now,
	}
}

// SignUp creates an account with the profile matching its role and returns an
// access token for it.
func (s *authService) SignUp(ctx context.Context, in SignUpInput) (string, *model.User, error) {
	role, ok := model.ParseSeminarRole(in.Role)
	if !ok {
		return "", nil, errors.BadRequest(errors.MsgInvalidRole)
	}
	if in.Year != nil && *in.Year < 0 {
		return "", nil, errors.BadRequest(errors.MsgInvalidYear)
	}

	email := strings.TrimSpace(in.Email)
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return "", nil, errors.Conflict(errors.MsgEmailExists)
	}
	if err != nil && !repository.IsNotFound(err) {
		return "", nil, fmt.Errorf("check user existence: %w", err)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return "", nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:        email,
		Username:     in.Username,
		PasswordHash: hash,
	}
	switch role {
	case model.SeminarRoleParticipant:
		registered := true
		if in.IsRegistered != nil {
			registered = *in.IsRegistered
		}
		user.ParticipantProfile = &model.ParticipantProfile{
			University:   in.University,
			IsRegistered: registered,
		}
	case model.SeminarRoleInstructor:
		user.InstructorProfile = &model.InstructorProfile{
			Company: in.Company,
			Year:    in.Year,
		}
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if stderrors.Is(err, repository.ErrDuplicate) {
			return "", nil, errors.Conflict(errors.MsgEmailExists)
		}
		return "", nil, fmt.Errorf("create user: %w", err)
	}

	token, err := s.jwtService.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return "", nil, fmt.Errorf("generate access token: %w", err)
	}
	return token, user, nil
}

// LogIn verifies credentials, records the login time and issues a token.
func (s *authService) LogIn(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if repository.IsNotFound(err) {
			return "", nil, errors.NotFound(errors.MsgEmailNotFound)
		}
		return "", nil, fmt.Errorf("find user: %w", err)
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return "", nil, errors.Unauthorized(errors.MsgWrongPassword)
	}

	now := s.now()
	if err := s.userRepo.TouchLastLogin(ctx, user.ID, now); err != nil {
		return "", nil, fmt.Errorf("update last login: %w", err)
	}
	user.LastLogin = &now

	token, err := s.jwtService.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return "", nil, fmt.Errorf("generate access token: %w", err)
	}
	return token, user, nil
}

func (s *authService) Authenticate(ctx context.Context, token string) (*auth.Claims, error) {
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return nil, errors.Unauthorized(errors.MsgInvalidToken)
	}
	revoked, err := s.tokenStore.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("check token revocation: %w", err)
	}
	if revoked {
		return nil, errors.Unauthorized(errors.MsgInvalidToken)
	}
	return claims, nil
}

// Logout revokes the access token for the rest of its lifetime.
func (s *authService) Logout(ctx context.Context, token string) error {
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return errors.Unauthorized(errors.MsgInvalidToken)
	}
	if err := s.tokenStore.RevokeAccessToken(ctx, claims.ID, s.jwtService.RemainingTTL(claims)); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}
