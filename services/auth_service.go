package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"techkwiz/models"
)

// ForgotPasswordMessage is returned whether or not the email matches an
// account, so the endpoint cannot be used to enumerate admins.
const ForgotPasswordMessage = "If an account with that email exists, a password reset link has been sent."

const resetTokenTTL = time.Hour

type AuthService struct {
	db         *gorm.DB
	mailer     Mailer
	jwtSecret  []byte
	tokenTTL   time.Duration
	bcryptCost int
	adminEmail string
}

func NewAuthService(db *gorm.DB, mailer Mailer, jwtSecret string, tokenTTL time.Duration, bcryptCost int, adminEmail string) *AuthService {
	return &AuthService{
		db:         db,
		mailer:     mailer,
		jwtSecret:  []byte(jwtSecret),
		tokenTTL:   tokenTTL,
		bcryptCost: bcryptCost,
		adminEmail: adminEmail,
	}
}

type SetupRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=6"`
	Email    string `json:"email" binding:"omitempty,email"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

type ProfileUpdateRequest struct {
	CurrentPassword string  `json:"current_password" binding:"required"`
	Username        *string `json:"username"`
	Email           *string `json:"email" binding:"omitempty,email"`
	NewPassword     *string `json:"new_password"`
}

// Setup creates an admin account. It fails when the username is already
// taken; the first caller on a fresh database becomes the first admin.
func (s *AuthService) Setup(req *SetupRequest) (*models.AdminUser, error) {
	var existing models.AdminUser
	err := s.db.Where("username = ?", req.Username).First(&existing).Error
	if err == nil {
		return nil, fmt.Errorf("%w: admin user %q", ErrConflict, req.Username)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	email := req.Email
	if email == "" {
		email = s.adminEmail
	}

	admin := models.AdminUser{
		ID:           uuid.NewString(),
		Username:     req.Username,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.db.Create(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

// Login verifies credentials and issues a bearer token. last_login is only
// touched on success.
func (s *AuthService) Login(req *LoginRequest) (*TokenResponse, error) {
	var admin models.AdminUser
	if err := s.db.Where("username = ?", req.Username).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: invalid username or password", ErrUnauthorized)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("%w: invalid username or password", ErrUnauthorized)
	}

	now := time.Now().UTC()
	if err := s.db.Model(&admin).Update("last_login", now).Error; err != nil {
		return nil, err
	}

	claims := jwt.RegisteredClaims{
		Subject:   admin.Username,
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		IssuedAt:  jwt.NewNumericDate(now),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &TokenResponse{AccessToken: signed, TokenType: "bearer"}, nil
}

// Verify validates a bearer token and confirms its subject still maps to an
// existing account.
func (s *AuthService) Verify(tokenString string) (string, error) {
	username, err := ParseSubject(tokenString, s.jwtSecret)
	if err != nil {
		return "", err
	}

	var admin models.AdminUser
	if err := s.db.Where("username = ?", username).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("%w: account no longer exists", ErrUnauthorized)
		}
		return "", err
	}
	return admin.Username, nil
}

// ParseSubject validates a signed token and returns its subject claim.
func ParseSubject(tokenString string, secret []byte) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("%w: could not validate credentials", ErrUnauthorized)
	}
	subject, err := token.Claims.GetSubject()
	if err != nil || subject == "" {
		return "", fmt.Errorf("%w: could not validate credentials", ErrUnauthorized)
	}
	return subject, nil
}

// ForgotPassword starts a password reset. The response message is identical
// whether or not the email matches an account.
func (s *AuthService) ForgotPassword(req *ForgotPasswordRequest) string {
	var admin models.AdminUser
	if err := s.db.Where("email = ?", req.Email).First(&admin).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Forgot-password lookup failed: %v", err)
		}
		return ForgotPasswordMessage
	}

	rawToken, err := generateResetToken()
	if err != nil {
		log.Printf("Reset token generation failed: %v", err)
		return ForgotPasswordMessage
	}

	tokenHash := hashResetToken(rawToken)
	expires := time.Now().UTC().Add(resetTokenTTL)
	err = s.db.Model(&admin).Updates(map[string]interface{}{
		"reset_token_hash":    tokenHash,
		"reset_token_expires": expires,
	}).Error
	if err != nil {
		log.Printf("Failed to store reset token for %s: %v", admin.Username, err)
		return ForgotPasswordMessage
	}

	if err := s.mailer.SendPasswordReset(admin.Email, admin.Username, rawToken); err != nil {
		log.Printf("Failed to send reset email to %s: %v", admin.Email, err)
	}
	return ForgotPasswordMessage
}

// ResetPassword consumes a reset token. Tokens are single-use and expire
// after one hour.
func (s *AuthService) ResetPassword(req *ResetPasswordRequest) error {
	tokenHash := hashResetToken(req.Token)

	var admin models.AdminUser
	err := s.db.Where("reset_token_hash = ? AND reset_token_expires > ?", tokenHash, time.Now().UTC()).
		First(&admin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: invalid or expired reset token", ErrBadRequest)
		}
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), s.bcryptCost)
	if err != nil {
		return err
	}

	return s.db.Model(&admin).Updates(map[string]interface{}{
		"password_hash":       string(hash),
		"reset_token_hash":    nil,
		"reset_token_expires": nil,
	}).Error
}

// UpdateProfile changes username, email or password for the authenticated
// admin after re-verifying the current password.
func (s *AuthService) UpdateProfile(username string, req *ProfileUpdateRequest) (*models.AdminUser, error) {
	var admin models.AdminUser
	if err := s.db.Where("username = ?", username).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: account no longer exists", ErrUnauthorized)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return nil, fmt.Errorf("%w: current password is incorrect", ErrUnauthorized)
	}

	updates := map[string]interface{}{}
	if req.Username != nil && *req.Username != "" && *req.Username != admin.Username {
		var other models.AdminUser
		err := s.db.Where("username = ? AND id <> ?", *req.Username, admin.ID).First(&other).Error
		if err == nil {
			return nil, fmt.Errorf("%w: username already taken", ErrBadRequest)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		updates["username"] = *req.Username
	}
	if req.Email != nil && *req.Email != "" {
		updates["email"] = *req.Email
	}
	if req.NewPassword != nil && *req.NewPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.NewPassword), s.bcryptCost)
		if err != nil {
			return nil, err
		}
		updates["password_hash"] = string(hash)
	}

	if len(updates) > 0 {
		if err := s.db.Model(&admin).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	if err := s.db.Where("id = ?", admin.ID).First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func generateResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func hashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
