package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"bookwise/be/internal/config"
	"bookwise/be/internal/user"
)

type fakeUserService struct {
	users map[string]string // username -> plaintext password
}

func (f fakeUserService) GetUser(req user.GetUserRequest) (*user.GetUserResponse, error) {
	return nil, errors.New("not implemented")
}

func (f fakeUserService) GetUserPassword(req user.GetUserRequest) (*user.GetUserPasswordResponse, error) {
	plain, ok := f.users[req.Username]
	if !ok {
		return nil, user.ErrNotFound
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}
	return &user.GetUserPasswordResponse{
		ID:       1,
		Username: req.Username,
		Password: string(hashed),
		Role:     user.RoleAdmin,
	}, nil
}

func (f fakeUserService) GetAllUsers() ([]*user.GetUserResponse, error) {
	return nil, errors.New("not implemented")
}

func (f fakeUserService) CreateUser(req *user.CreateUserRequest) error {
	return errors.New("not implemented")
}

func TestLogin(t *testing.T) {
	cfg := config.JWTConfig{SecretKey: "test-secret", ExpiryHours: time.Hour}
	svc := NewServiceImpl(fakeUserService{users: map[string]string{"admin": "s3cret"}}, cfg)

	resp, err := svc.Login(LoginRequest{Username: "admin", Password: "s3cret"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	token, err := jwt.Parse(resp.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte(cfg.SecretKey), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("issued token does not parse: %v", err)
	}
	claims := token.Claims.(jwt.MapClaims)
	if claims["username"] != "admin" || claims["role"] != "admin" {
		t.Errorf("claims = %v", claims)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	cfg := config.JWTConfig{SecretKey: "test-secret"}
	svc := NewServiceImpl(fakeUserService{users: map[string]string{"admin": "s3cret"}}, cfg)

	tests := []struct {
		name string
		req  LoginRequest
	}{
		{"wrong password", LoginRequest{Username: "admin", Password: "nope"}},
		{"unknown user", LoginRequest{Username: "ghost", Password: "s3cret"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Login(tt.req); !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("Login() error = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}
