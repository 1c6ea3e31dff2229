package auth

import (
	"errors"
	"log"
	"time"

	"edcall/internal/models"
	"edcall/internal/repositories"
	"edcall/internal/utils"
	"edcall/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

type Service interface {
	Register(input *models.CreateUserInput) (*models.User, error)
	Login(email, phone, password string) (*models.User, string, string, error)
	RefreshTokens(refreshToken string) (string, string, error)
	Logout(userID uint) error
	ChangePassword(userID uint, oldPassword, newPassword string) error
	GetUserByID(id uint) (*models.User, error)
	GetUserTokenVersion(userID uint) (int, error)
}

type service struct {
	userRepo repositories.UserRepository
}

func NewService(userRepo repositories.UserRepository) Service {
	return &service{
		userRepo: userRepo,
	}
}

func (s *service) Register(input *models.CreateUserInput) (*models.User, error) {
	if input.Email == "" || input.Phone == "" {
		return nil, errors.New("email and phone are required")
	}
	if input.Age < 18 {
		return nil, errors.New("must be at least 18 years old")
	}
	if len(input.Password) < 8 || !validation.HasSpecialChar(input.Password) {
		return nil, errors.New("password must be at least 8 characters and contain special characters")
	}

	if existing, _ := s.userRepo.GetByEmail(input.Email); existing != nil {
		return nil, repositories.ErrEmailTaken
	}
	if existing, _ := s.userRepo.GetByPhone(input.Phone); existing != nil {
		return nil, repositories.ErrPhoneTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("failed to hash password")
	}

	user := &models.User{
		Name:               input.Name,
		Email:              input.Email,
		Phone:              input.Phone,
		Password:           string(hashedPassword),
		Age:                input.Age,
		Location:           input.Location,
		Bio:                input.Bio,
		Tier:               models.TierFree,
		Role:               models.RoleUser,
		VerificationStatus: models.VerificationUnverified,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *service) Login(email, phone, password string) (*models.User, string, string, error) {
	user, err := s.getUserByIdentifier(email, phone)
	if err != nil {
		log.Printf("Login failed: user not found for identifier %s", email+phone)
		return nil, "", "", errors.New("invalid credentials")
	}

	if user.Blocked {
		return nil, "", "", errors.New("account is blocked")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		log.Printf("Login failed: incorrect password for user ID %d", user.ID)
		return nil, "", "", errors.New("invalid credentials")
	}

	user.LastLoginAt = time.Now()
	user.IsOnline = true
	if err := s.userRepo.Update(user); err != nil {
		log.Printf("Failed to record login for user %d: %v", user.ID, err)
	}

	accessToken, refreshToken, err := utils.GenerateTokens(&models.UserClaims{
		UserID:       user.ID,
		Email:        user.Email,
		Role:         user.Role,
		TokenVersion: user.TokenVersion,
		Permissions:  models.GetDefaultPermissions(user.Role),
	})
	if err != nil {
		log.Println("Error generating tokens:", err)
		return nil, "", "", errors.New("error generating tokens")
	}

	return user, accessToken, refreshToken, nil
}

func (s *service) RefreshTokens(refreshToken string) (string, string, error) {
	_, claims, err := utils.ParseToken(refreshToken)
	if err != nil {
		return "", "", errors.New("invalid refresh token")
	}

	user, err := s.userRepo.GetByID(claims.UserID)
	if err != nil {
		return "", "", errors.New("user not found")
	}

	if user.TokenVersion != claims.TokenVersion {
		return "", "", errors.New("token version mismatch")
	}

	return utils.GenerateTokens(&models.UserClaims{
		UserID:       user.ID,
		Email:        user.Email,
		Role:         user.Role,
		TokenVersion: user.TokenVersion,
		Permissions:  models.GetDefaultPermissions(user.Role),
	})
}

func (s *service) Logout(userID uint) error {
	if err := s.userRepo.SetOnline(userID, false); err != nil {
		log.Printf("Failed to mark user %d offline: %v", userID, err)
	}
	return s.userRepo.IncrementTokenVersion(userID)
}

func (s *service) ChangePassword(userID uint, oldPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return errors.New("failed to get user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return errors.New("invalid old password")
	}

	if len(newPassword) < 8 || !validation.HasSpecialChar(newPassword) {
		return errors.New("password must be at least 8 characters and contain special characters")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return errors.New("failed to hash password")
	}

	user.Password = string(hashedPassword)
	user.TokenVersion++ // Invalidate existing tokens

	if err := s.userRepo.Update(user); err != nil {
		return errors.New("failed to update password")
	}

	return nil
}

func (s *service) GetUserByID(id uint) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

func (s *service) GetUserTokenVersion(userID uint) (int, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return 0, err
	}
	return user.TokenVersion, nil
}

func (s *service) getUserByIdentifier(email, phone string) (*models.User, error) {
	if email != "" {
		return s.userRepo.GetByEmail(email)
	}
	if phone != "" {
		return s.userRepo.GetByPhone(phone)
	}
	return nil, repositories.ErrUserNotFound
}
