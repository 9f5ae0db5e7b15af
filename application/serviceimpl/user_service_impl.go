package serviceimpl

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"taskhub/domain/dto"
	"taskhub/domain/models"
	"taskhub/domain/policy"
	"taskhub/domain/ports"
	"taskhub/domain/repositories"
	"taskhub/domain/services"
	"taskhub/pkg/apperror"
	"taskhub/pkg/logger"
	"taskhub/pkg/utils"
)

const msgInvalidCredentials = "Invalid credentials, could not log you in."

type UserServiceImpl struct {
	userRepo  repositories.UserRepository
	taskRepo  repositories.TaskRepository
	blacklist ports.TokenBlacklistPort
	jwtSecret string
	tokenTTL  time.Duration
}

func NewUserService(
	userRepo repositories.UserRepository,
	taskRepo repositories.TaskRepository,
	blacklist ports.TokenBlacklistPort,
	jwtSecret string,
	tokenTTL time.Duration,
) services.UserService {
	return &UserServiceImpl{
		userRepo:  userRepo,
		taskRepo:  taskRepo,
		blacklist: blacklist,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *UserServiceImpl) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.AuthResponse, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = normalizeEmail(req.Email)
	if err := validateRequest(ctx, req); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.GetByEmail(ctx, req.Email); err == nil {
		logger.WarnContext(ctx, "Email already exists", "email", req.Email)
		return nil, apperror.Conflict("User exists already, please login instead.")
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, storeError(ctx, "users.GetByEmail", err, "")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to hash password", "error", err)
		return nil, apperror.Internal("Could not create user, please try again.", err)
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		Tasks:        []uuid.UUID{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, apperror.Conflict("User exists already, please login instead.")
		}
		return nil, storeError(ctx, "users.Create", err, "")
	}

	token, err := s.issueToken(ctx, user)
	if err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "User signed up", "user_id", user.ID, "email", user.Email)
	return &dto.AuthResponse{UserID: user.ID, Email: user.Email, Token: token}, nil
}

func (s *UserServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	req.Email = normalizeEmail(req.Email)
	if err := validateRequest(ctx, req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if errors.Is(err, repositories.ErrNotFound) {
		logger.WarnContext(ctx, "Login failed - email not found", "email", req.Email)
		return nil, apperror.Unauthorized(msgInvalidCredentials)
	}
	if err != nil {
		return nil, storeError(ctx, "users.GetByEmail", err, "")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		logger.WarnContext(ctx, "Login failed - invalid password", "user_id", user.ID)
		return nil, apperror.Unauthorized(msgInvalidCredentials)
	}

	token, err := s.issueToken(ctx, user)
	if err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "Login successful", "user_id", user.ID)
	return &dto.AuthResponse{UserID: user.ID, Email: user.Email, Token: token}, nil
}

func (s *UserServiceImpl) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if tokenID == "" {
		return apperror.Unauthorized("Invalid token")
	}
	if err := s.blacklist.Revoke(ctx, tokenID, expiresAt); err != nil {
		logger.ErrorContext(ctx, "Failed to revoke token", "error", err)
		return apperror.Internal("Logout failed, please try again.", err)
	}
	return nil
}

func (s *UserServiceImpl) IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	return s.blacklist.IsRevoked(ctx, tokenID)
}

func (s *UserServiceImpl) ListUsers(ctx context.Context) ([]*models.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, storeError(ctx, "users.List", err, "")
	}
	return users, nil
}

func (s *UserServiceImpl) GetProfile(ctx context.Context, userID uuid.UUID) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, storeError(ctx, "users.GetByID", err, msgUserNotFound)
	}

	counts, err := s.taskRepo.CountForUser(ctx, userID)
	if err != nil {
		return nil, storeError(ctx, "tasks.CountForUser", err, "")
	}
	return dto.UserToProfileResponse(user, counts), nil
}

func (s *UserServiceImpl) UpdateProfile(ctx context.Context, callerID, userID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UpdateProfileResponse, error) {
	if err := policy.CanEditProfile(userID, callerID); err != nil {
		logger.WarnContext(ctx, "Profile update denied", "user_id", userID, "caller_id", callerID)
		return nil, err
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = normalizeEmail(req.Email)
	if err := validateRequest(ctx, req); err != nil {
		return nil, err
	}
	if (req.OldPassword == "") != (req.NewPassword == "") {
		return nil, apperror.Validation("Both old and new passwords are required to change the password.", nil)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, storeError(ctx, "users.GetByID", err, msgUserNotFound)
	}

	if req.Email != user.Email {
		existing, err := s.userRepo.GetByEmail(ctx, req.Email)
		if err == nil && existing.ID != user.ID {
			return nil, apperror.Conflict("Email is already in use.")
		}
		if err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return nil, storeError(ctx, "users.GetByEmail", err, "")
		}
	}

	if req.NewPassword != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
			logger.WarnContext(ctx, "Profile update failed - wrong password", "user_id", userID)
			return nil, apperror.Unauthorized("Old password is incorrect.")
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, apperror.Internal("Could not update password, please try again.", err)
		}
		user.PasswordHash = string(hashed)
	}

	user.Name = req.Name
	user.Email = req.Email
	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, apperror.Conflict("Email is already in use.")
		}
		return nil, storeError(ctx, "users.Update", err, msgUserNotFound)
	}

	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	token, err := s.issueToken(ctx, user)
	if err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "Profile updated", "user_id", userID)
	return &dto.UpdateProfileResponse{Profile: *profile, Token: token}, nil
}

func (s *UserServiceImpl) issueToken(ctx context.Context, user *models.User) (string, error) {
	token, err := utils.GenerateToken(user.ID, user.Email, s.jwtSecret, s.tokenTTL)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to sign token", "user_id", user.ID, "error", err)
		return "", apperror.Internal("Could not issue token, please try again.", err)
	}
	return token, nil
}
