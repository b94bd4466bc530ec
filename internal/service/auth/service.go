package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/scprithiviraj/smarthr/internal/domain/auth"
	"github.com/scprithiviraj/smarthr/internal/domain/user"
	"github.com/scprithiviraj/smarthr/internal/pkg/jwt"
)

// TxRunner executes fn atomically. Production wiring binds it to
// postgresql.WithTransaction; a nil runner executes fn directly.
type TxRunner func(ctx context.Context, fn func(ctx context.Context) error) error

type authService struct {
	userRepo user.Repository
	jwtSvc   jwt.Service
	runTx    TxRunner
}

func NewAuthService(userRepo user.Repository, jwtSvc jwt.Service, runTx TxRunner) auth.Service {
	return &authService{
		userRepo: userRepo,
		jwtSvc:   jwtSvc,
		runTx:    runTx,
	}
}

func (s *authService) inTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.runTx == nil {
		return fn(ctx)
	}
	return s.runTx(ctx, fn)
}

func (s *authService) Login(ctx context.Context, req *auth.LoginRequest) (*auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, auth.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, auth.ErrInvalidCredentials
	}

	pair, err := s.tokenPair(u)
	if err != nil {
		return nil, err
	}

	slog.Info("User logged in", "user_id", u.ID, "username", u.Username)
	return &auth.LoginResponse{
		TokenPair: *pair,
		User:      toUserInfo(u),
	}, nil
}

func (s *authService) Register(ctx context.Context, req *auth.RegisterRequest) (*auth.UserInfo, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := user.RoleEmployee
	if req.Role == string(user.RoleAdmin) {
		role = user.RoleAdmin
	}

	// The existence checks and the insert run in one transaction so a
	// concurrent registration cannot slip between them.
	var created user.User
	err = s.inTx(ctx, func(ctx context.Context) error {
		if _, err := s.userRepo.GetByUsername(ctx, req.Username); err == nil {
			return user.ErrUsernameExists
		} else if !errors.Is(err, user.ErrUserNotFound) {
			return fmt.Errorf("failed to check username: %w", err)
		}
		if _, err := s.userRepo.GetByEmail(ctx, req.Email); err == nil {
			return user.ErrEmailExists
		} else if !errors.Is(err, user.ErrUserNotFound) {
			return fmt.Errorf("failed to check email: %w", err)
		}

		u := user.User{
			ID:           uuid.NewString(),
			Username:     req.Username,
			Email:        req.Email,
			PasswordHash: string(hash),
			FullName:     req.FullName,
			Role:         role,
			Department:   req.Department,
			Designation:  req.Designation,
		}
		created, err = s.userRepo.Create(ctx, u)
		if err != nil {
			if errors.Is(err, user.ErrUsernameExists) || errors.Is(err, user.ErrEmailExists) {
				return err
			}
			return fmt.Errorf("failed to create user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("User registered", "user_id", created.ID, "username", created.Username, "role", role)
	info := toUserInfo(created)
	return &info, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	userID, err := s.jwtSvc.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, auth.ErrInvalidToken
	}

	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, auth.ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return s.tokenPair(u)
}

func (s *authService) Me(ctx context.Context, userID string) (*auth.UserInfo, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	info := toUserInfo(u)
	return &info, nil
}

func (s *authService) tokenPair(u user.User) (*auth.TokenPair, error) {
	accessToken, _, err := s.jwtSvc.GenerateAccessToken(u.ID, u.Username, u.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refreshToken, _, err := s.jwtSvc.GenerateRefreshToken(u.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return &auth.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func toUserInfo(u user.User) auth.UserInfo {
	return auth.UserInfo{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		FullName:    u.FullName,
		Role:        u.Role,
		Department:  u.Department,
		Designation: u.Designation,
	}
}
