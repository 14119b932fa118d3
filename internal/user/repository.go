package user

import (
	"bookwise/be/internal/db"
)

type RepositoryImpl struct {
	db *db.HDb
}

func NewRepositoryImpl(db *db.HDb) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

const userColumns = "id, username, password, realname, role, created_at"

func (r *RepositoryImpl) GetById(id int) (User, error) {
	var u User
	err := r.db.Get(&u, "SELECT "+userColumns+" FROM users WHERE id = $1", id)
	return u, err
}

func (r *RepositoryImpl) GetByUsername(username string) (User, error) {
	var u User
	err := r.db.Get(&u, "SELECT "+userColumns+" FROM users WHERE username = $1", username)
	return u, err
}

func (r *RepositoryImpl) GetAll() ([]User, error) {
	var users []User
	err := r.db.Select(&users, "SELECT "+userColumns+" FROM users ORDER BY id")
	return users, err
}

func (r *RepositoryImpl) Create(u *User) error {
	return r.db.QueryRowx(
		"INSERT INTO users (username, password, realname, role) VALUES ($1, $2, $3, $4) RETURNING id",
		u.Username, u.Password, u.Realname, u.Role,
	).Scan(&u.ID)
}
