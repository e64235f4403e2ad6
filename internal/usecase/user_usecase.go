package usecase

import (
	"context"
	"time"

	"freelancehub/internal/domain/entity"
	"freelancehub/internal/domain/repository"
	"freelancehub/pkg/errors"
	"freelancehub/pkg/logger"
)

// AuthProvider is the identity backend: account creation and token minting.
type AuthProvider interface {
	CreateUser(ctx context.Context, email, password, displayName string) (string, error)
	GenerateToken(ctx context.Context, uid string) (string, error)
}

type UserUsecase struct {
	userRepo   repository.UserRepository
	authClient AuthProvider
}

func NewUserUsecase(userRepo repository.UserRepository, authClient AuthProvider) *UserUsecase {
	return &UserUsecase{
		userRepo:   userRepo,
		authClient: authClient,
	}
}

type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Username string `json:"username" validate:"required,min=3,max=30,alphanum"`
	FullName string `json:"full_name" validate:"max=100"`
	Role     string `json:"role" validate:"required,oneof=client freelancer"`
}

type AuthResult struct {
	User  *entity.User `json:"user"`
	Token string       `json:"token"`
}

// Register creates the identity-provider account and the profile document.
// The profile reuses the provider's UID as its ID.
func (u *UserUsecase) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	if existing, err := u.userRepo.GetByEmail(ctx, input.Email); err == nil && existing != nil {
		return nil, errors.Conflict("Email is already registered")
	} else if err != nil && !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}

	uid, err := u.authClient.CreateUser(ctx, input.Email, input.Password, input.Username)
	if err != nil {
		return nil, errors.BadRequest("Failed to create account", err)
	}

	user := &entity.User{
		ID:       uid,
		Email:    input.Email,
		Username: input.Username,
		FullName: input.FullName,
		Role:     input.Role,
		Status:   "active",
		LastSeen: time.Now(),
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := u.authClient.GenerateToken(ctx, uid)
	if err != nil {
		logger.Error("Failed to mint token for new user %s: %v", uid, err)
		token = ""
	}

	logger.Info("User %s registered (%s)", uid, input.Role)
	return &AuthResult{User: user, Token: token}, nil
}

func (u *UserUsecase) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	return u.userRepo.GetByID(ctx, userID)
}

type UpdateProfileInput struct {
	FullName  string   `json:"full_name" validate:"max=100"`
	Bio       string   `json:"bio" validate:"max=1000"`
	Skills    []string `json:"skills" validate:"max=20"`
	AvatarURL string   `json:"avatar_url" validate:"omitempty,url"`
}

func (u *UserUsecase) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*entity.User, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.FullName = input.FullName
	user.Bio = input.Bio
	user.Skills = input.Skills
	if input.AvatarURL != "" {
		user.AvatarURL = input.AvatarURL
	}

	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// TouchLastSeen best-effort stamps presence; failures only log.
func (u *UserUsecase) TouchLastSeen(ctx context.Context, userID string) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return
	}

	user.LastSeen = time.Now()
	if err := u.userRepo.Update(ctx, user); err != nil {
		logger.Debug("Failed to update last seen for %s: %v", userID, err)
	}
}
