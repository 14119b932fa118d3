package user

type Service interface {
	GetUser(req GetUserRequest) (*GetUserResponse, error)
	// GetUserPassword returns the stored hash; only the auth service may
	// call it.
	GetUserPassword(req GetUserRequest) (*GetUserPasswordResponse, error)
	GetAllUsers() ([]*GetUserResponse, error)
	CreateUser(req *CreateUserRequest) error
}

type Repository interface {
	GetById(id int) (User, error)
	GetByUsername(username string) (User, error)
	GetAll() ([]User, error)
	Create(user *User) error
}

type GetUserRequest struct {
	ID       int    `json:"id" form:"id" uri:"id"`
	Username string `json:"username" form:"username" uri:"username"`
}

type GetUserResponse struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Realname string `json:"realname"`
	Role     Role   `json:"role"`
}

type GetUserPasswordResponse struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

type CreateUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
	Realname string `json:"realname"`
}
