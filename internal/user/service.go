package user

import (
	"database/sql"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrNotFound = errors.New("user not found")
	ErrExists   = errors.New("user already exists")
)

type ServiceImpl struct {
	repo Repository
}

func NewServiceImpl(repo Repository) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) getUser(req GetUserRequest) (User, error) {
	if req.ID != 0 {
		return s.repo.GetById(req.ID)
	}
	return s.repo.GetByUsername(req.Username)
}

func (s *ServiceImpl) GetUser(req GetUserRequest) (*GetUserResponse, error) {
	u, err := s.getUser(req)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &GetUserResponse{
		ID:       u.ID,
		Username: u.Username,
		Realname: u.Realname,
		Role:     u.Role,
	}, nil
}

func (s *ServiceImpl) GetUserPassword(req GetUserRequest) (*GetUserPasswordResponse, error) {
	u, err := s.getUser(req)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &GetUserPasswordResponse{
		ID:       u.ID,
		Username: u.Username,
		Password: u.Password,
		Role:     u.Role,
	}, nil
}

func (s *ServiceImpl) GetAllUsers() ([]*GetUserResponse, error) {
	users, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}
	response := make([]*GetUserResponse, 0, len(users))
	for _, u := range users {
		response = append(response, &GetUserResponse{
			ID:       u.ID,
			Username: u.Username,
			Realname: u.Realname,
			Role:     u.Role,
		})
	}
	return response, nil
}

func (s *ServiceImpl) CreateUser(req *CreateUserRequest) error {
	if !ValidRole(Role(req.Role)) {
		return errors.New("role must be admin, librarian or member")
	}

	_, err := s.repo.GetByUsername(req.Username)
	if err == nil {
		return ErrExists
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.repo.Create(&User{
		Username: req.Username,
		Password: string(hashed),
		Realname: req.Realname,
		Role:     Role(req.Role),
	})
}
