package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"bookwise/be/internal/config"
	"bookwise/be/internal/user"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

type ServiceImpl struct {
	userService user.Service
	cfg         config.JWTConfig
}

func NewServiceImpl(userService user.Service, cfg config.JWTConfig) *ServiceImpl {
	return &ServiceImpl{userService: userService, cfg: cfg}
}

func (s *ServiceImpl) Login(req LoginRequest) (*LoginResponse, error) {
	u, err := s.userService.GetUserPassword(user.GetUserRequest{Username: req.Username})
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	expiry := s.cfg.ExpiryHours
	if expiry <= 0 {
		expiry = 24 * time.Hour
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      u.ID,
		"username": u.Username,
		"role":     string(u.Role),
		"exp":      time.Now().Add(expiry).Unix(),
	})
	signed, err := token.SignedString([]byte(s.cfg.SecretKey))
	if err != nil {
		return nil, err
	}

	return &LoginResponse{Token: signed}, nil
}
