package users

import (
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"

	"github.com/marcomamdouh99/pro/internal/repository"
	custom_error "github.com/marcomamdouh99/pro/pkg/errors"
	"github.com/marcomamdouh99/pro/pkg/models"
)

type UserRepository interface {
	PersistUser(req models.CreateUserRequest, hashedPassword []byte) error
	GetUser(id int) (*models.User, error)
	GetUsers() ([]models.User, error)
	UpdateUser(id int, changes *UserChanges) error
}

// UserChanges holds the subset of user fields an update actually touches.
type UserChanges struct {
	PasswordHash *string
	FullName     *string
	Role         *string
	BranchID     *int
}

func (c *UserChanges) HasChanges() bool {
	return c.PasswordHash != nil || c.FullName != nil || c.Role != nil || c.BranchID != nil
}

type userRepositoryImpl struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) UserRepository {
	return &userRepositoryImpl{repository: r}
}

func (r *userRepositoryImpl) PersistUser(req models.CreateUserRequest, hashedPassword []byte) error {
	query := r.repository.GoquDBWrapper.Insert("users").
		Rows(goqu.Record{
			"password_hash": string(hashedPassword),
			"username":      req.Username,
			"fullname":      req.FullName,
			"role":          req.Role,
			"branch_id":     req.BranchID,
		})

	if _, err := query.Executor().Exec(); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return custom_error.WrapDBError("Duplicate username "+req.Username, string(pqErr.Code))
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

func (r *userRepositoryImpl) GetUsers() ([]models.User, error) {
	var users []models.User
	query := r.repository.GoquDBWrapper.
		Select("id", "username", "fullname", "role", "branch_id").
		From("users")

	if err := query.Executor().ScanStructs(&users); err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}

	return users, nil
}

func (r *userRepositoryImpl) GetUser(id int) (*models.User, error) {
	var user models.User
	query := r.repository.GoquDBWrapper.
		Select("id", "username", "fullname", "password_hash", "role", "branch_id").
		From("users").
		Where(goqu.Ex{"id": id})

	found, err := query.Executor().ScanStruct(&user)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if !found {
		return nil, custom_error.NewNotFoundError("user", id)
	}

	return &user, nil
}

func (r *userRepositoryImpl) UpdateUser(id int, changes *UserChanges) error {
	updates := make(map[string]interface{})

	if changes.PasswordHash != nil {
		updates["password_hash"] = *changes.PasswordHash
	}
	if changes.FullName != nil {
		updates["fullname"] = *changes.FullName
	}
	if changes.Role != nil {
		updates["role"] = *changes.Role
	}
	if changes.BranchID != nil {
		updates["branch_id"] = *changes.BranchID
	}

	result, err := r.repository.GoquDBWrapper.
		Update("users").
		Set(updates).
		Where(goqu.Ex{"id": id}).
		Executor().
		Exec()
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not retrieve rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return custom_error.NewNotFoundError("user", id)
	}

	return nil
}
