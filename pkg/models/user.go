package models

type User struct {
	ID           int    `json:"id" db:"id"`
	Username     string `json:"username" db:"username"`
	FullName     string `json:"fullname,omitempty" db:"fullname"`
	PasswordHash string `json:"-" db:"password_hash"`
	Role         string `json:"role" db:"role"`
	BranchID     *int   `json:"branch_id,omitempty" db:"branch_id"`
}

type CreateUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"fullname"`
	Role     string `json:"role" binding:"required"`
	BranchID *int   `json:"branch_id"`
}

type UpdateUserRequest struct {
	ID       int     `uri:"id"`
	Password *string `json:"password"`
	FullName *string `json:"fullname"`
	Role     *string `json:"role"`
	BranchID *int    `json:"branch_id"`
}
