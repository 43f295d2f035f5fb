package models

type User struct {
	ID       int    `json:"idUser" db:"id"`
	Username string `json:"username" db:"username"`
	Name     string `json:"name" db:"name"`
	LastName string `json:"lastName" db:"last_name"`
}

type CreateUserRequest struct {
	Username string `json:"username" binding:"required"`
	Name     string `json:"name" binding:"required"`
	LastName string `json:"lastName" binding:"required"`
}
