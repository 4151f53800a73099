package branches

import (
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"

	"github.com/marcomamdouh99/pro/internal/repository"
	custom_error "github.com/marcomamdouh99/pro/pkg/errors"
	"github.com/marcomamdouh99/pro/pkg/models"
)

type BranchRepository struct {
	Repository *repository.Repository
}

func NewBranchRepository(r *repository.Repository) *BranchRepository {
	return &BranchRepository{Repository: r}
}

func (r *BranchRepository) GetBranches() ([]models.Branch, error) {
	var branches = []models.Branch{}
	query := r.Repository.GoquDBWrapper.
		Select("id", "name", "address", "phone").
		From("branches").
		Order(goqu.I("name").Asc())

	if err := query.Executor().ScanStructs(&branches); err != nil {
		return nil, fmt.Errorf("unable to execute SQL: %w", err)
	}

	return branches, nil
}

func (r *BranchRepository) GetBranch(branchID int) (*models.Branch, error) {
	var branch models.Branch
	query := r.Repository.GoquDBWrapper.
		Select("id", "name", "address", "phone").
		From("branches").
		Where(goqu.Ex{"id": branchID})

	found, err := query.Executor().ScanStruct(&branch)
	if err != nil {
		return nil, fmt.Errorf("unable to execute SQL: %w", err)
	}
	if !found {
		return nil, custom_error.NewNotFoundError("branch", branchID)
	}

	return &branch, nil
}

func (r *BranchRepository) PersistBranch(branch *models.Branch) error {
	query := r.Repository.GoquDBWrapper.Insert("branches").
		Rows(goqu.Record{
			"name":    branch.Name,
			"address": branch.Address,
			"phone":   branch.Phone,
		}).
		Returning("id")

	if _, err := query.Executor().ScanVal(&branch.ID); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return custom_error.WrapDBError("Duplicate branch name "+branch.Name, string(pqErr.Code))
		}
		return fmt.Errorf("failed to insert branch record: %w", err)
	}

	return nil
}

func (r *BranchRepository) UpdateBranch(branchID int, req UpdateBranchRequest) (*models.Branch, error) {
	updates := make(map[string]interface{})

	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if len(updates) == 0 {
		return nil, custom_error.NewValidationError("body", "no fields to update")
	}

	query := r.Repository.GoquDBWrapper.
		Update("branches").
		Set(updates).
		Where(goqu.Ex{"id": branchID}).
		Returning("id", "name", "address", "phone")

	var branch models.Branch
	found, err := query.Executor().ScanStruct(&branch)
	if err != nil {
		return nil, fmt.Errorf("failed to update branch: %w", err)
	}
	if !found {
		return nil, custom_error.NewNotFoundError("branch", branchID)
	}

	return &branch, nil
}

func (r *BranchRepository) RemoveBranch(branchID int) error {
	result, err := r.Repository.GoquDBWrapper.
		Delete("branches").
		Where(goqu.Ex{"id": branchID}).
		Executor().
		Exec()
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return custom_error.WrapDBError("Branch still holds inventory or orders", string(pqErr.Code))
		}
		return fmt.Errorf("failed to delete branch: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not retrieve rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return custom_error.NewNotFoundError("branch", branchID)
	}

	return nil
}
