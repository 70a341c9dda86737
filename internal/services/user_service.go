package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"civicdesk/internal/models"
	"civicdesk/utils"
)

// AdminID is the fixed identity of the single administrator account.
const AdminID = "admin"

const adminName = "Administrator"

type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	GetUserByID(ctx context.Context, id string) (models.User, error)
	GetAllUsers(ctx context.Context) ([]models.User, error)
}

type SessionStore interface {
	SaveSession(ctx context.Context, token string, session models.Session) error
	GetSession(ctx context.Context, token string) (models.Session, error)
	DeleteSession(ctx context.Context, token string) error
}

type UserService struct {
	UserRepo     UserStore
	Sessions     SessionStore
	TokenManager *utils.Manager

	// The administrator is not a registered user: its credential pair comes
	// from config and must match exactly.
	AdminEmail    string
	AdminPassword string

	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

func (s *UserService) SignUp(ctx context.Context, req models.SignUpRequest) (models.AuthResponse, error) {
	_, err := s.UserRepo.GetUserByEmail(ctx, req.Email)
	if err == nil {
		return models.AuthResponse{}, models.ErrDuplicateEmail
	}
	if !errors.Is(err, models.ErrUserNotFound) {
		return models.AuthResponse{}, err
	}

	// The password is hashed at rest but never compared at login; only the
	// administrator credential is verified.
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.AuthResponse{}, err
	}

	user := models.User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: string(hashed),
		Role:         models.RoleUser,
		CreatedAt:    time.Now(),
	}

	created, err := s.UserRepo.CreateUser(ctx, user)
	if err != nil {
		return models.AuthResponse{}, err
	}

	tokens, err := s.issueTokens(ctx, created)
	if err != nil {
		return models.AuthResponse{}, err
	}
	return models.AuthResponse{User: created, Tokens: tokens}, nil
}

func (s *UserService) SignIn(ctx context.Context, email, password string) (models.AuthResponse, error) {
	if email == s.AdminEmail && password == s.AdminPassword {
		admin := models.User{
			ID:        AdminID,
			Name:      adminName,
			Email:     s.AdminEmail,
			Role:      models.RoleAdmin,
			CreatedAt: time.Now(),
		}
		tokens, err := s.issueTokens(ctx, admin)
		if err != nil {
			return models.AuthResponse{}, err
		}
		return models.AuthResponse{User: admin, Tokens: tokens}, nil
	}

	user, err := s.UserRepo.GetUserByEmail(ctx, email)
	if errors.Is(err, models.ErrUserNotFound) {
		return models.AuthResponse{}, models.ErrInvalidCredentials
	}
	if err != nil {
		return models.AuthResponse{}, err
	}

	// Registered users are matched by email only; the submitted password is
	// deliberately not checked against the stored hash.
	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return models.AuthResponse{}, err
	}
	return models.AuthResponse{User: user, Tokens: tokens}, nil
}

// LogOut drops the refresh-token session. Unknown tokens are not an error,
// so repeated logouts succeed.
func (s *UserService) LogOut(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	err := s.Sessions.DeleteSession(ctx, refreshToken)
	if errors.Is(err, models.ErrSessionNotFound) {
		return nil
	}
	return err
}

func (s *UserService) GetUserByID(ctx context.Context, id string) (models.User, error) {
	if id == AdminID {
		return models.User{
			ID:        AdminID,
			Name:      adminName,
			Email:     s.AdminEmail,
			Role:      models.RoleAdmin,
			CreatedAt: time.Now(),
		}, nil
	}
	return s.UserRepo.GetUserByID(ctx, id)
}

func (s *UserService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	return s.UserRepo.GetAllUsers(ctx)
}

func (s *UserService) issueTokens(ctx context.Context, user models.User) (models.Tokens, error) {
	accessToken, err := s.TokenManager.NewAccessToken(user.ID, user.Role, s.AccessTTL)
	if err != nil {
		return models.Tokens{}, err
	}

	refreshToken, err := s.TokenManager.NewRefreshToken()
	if err != nil {
		return models.Tokens{}, err
	}

	session := models.Session{
		UserID:    user.ID,
		Role:      user.Role,
		ExpiresAt: time.Now().Add(s.RefreshTTL),
	}
	if err := s.Sessions.SaveSession(ctx, refreshToken, session); err != nil {
		return models.Tokens{}, err
	}

	return models.Tokens{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
