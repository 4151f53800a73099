package catalog

import (
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"

	"github.com/marcomamdouh99/pro/internal/repository"
	custom_error "github.com/marcomamdouh99/pro/pkg/errors"
	"github.com/marcomamdouh99/pro/pkg/models"
)

type IngredientRepository struct {
	Repository *repository.Repository
}

func NewIngredientRepository(r *repository.Repository) *IngredientRepository {
	return &IngredientRepository{Repository: r}
}

func (r *IngredientRepository) GetIngredients() ([]models.Ingredient, error) {
	var ingredients = []models.Ingredient{}
	query := r.Repository.GoquDBWrapper.
		Select(&models.Ingredient{}).
		From("ingredients").
		Order(goqu.I("name").Asc())

	if err := query.Executor().ScanStructs(&ingredients); err != nil {
		return nil, fmt.Errorf("unable to execute SQL: %w", err)
	}

	return ingredients, nil
}

func (r *IngredientRepository) GetIngredient(ingredientID int) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	query := r.Repository.GoquDBWrapper.
		Select(&models.Ingredient{}).
		From("ingredients").
		Where(goqu.Ex{"id": ingredientID})

	found, err := query.Executor().ScanStruct(&ingredient)
	if err != nil {
		return nil, fmt.Errorf("unable to execute SQL: %w", err)
	}
	if !found {
		return nil, custom_error.NewNotFoundError("ingredient", ingredientID)
	}

	return &ingredient, nil
}

func (r *IngredientRepository) PersistIngredient(ingredient *models.Ingredient) error {
	query := r.Repository.GoquDBWrapper.Insert("ingredients").
		Rows(goqu.Record{
			"name":              ingredient.Name,
			"unit":              ingredient.Unit,
			"cost_per_unit":     ingredient.CostPerUnit,
			"alert_threshold":   ingredient.AlertThreshold,
			"reorder_threshold": ingredient.ReorderThreshold,
		}).
		Returning("id")

	if _, err := query.Executor().ScanVal(&ingredient.ID); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return custom_error.WrapDBError("Duplicate ingredient name "+ingredient.Name, string(pqErr.Code))
		}
		return fmt.Errorf("failed to insert ingredient record: %w", err)
	}

	return nil
}

func (r *IngredientRepository) UpdateIngredient(ingredientID int, req UpdateIngredientRequest) (*models.Ingredient, error) {
	updates := make(map[string]interface{})

	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Unit != nil {
		updates["unit"] = *req.Unit
	}
	if req.CostPerUnit != nil {
		updates["cost_per_unit"] = *req.CostPerUnit
	}
	if req.AlertThreshold != nil {
		updates["alert_threshold"] = *req.AlertThreshold
	}
	if req.ReorderThreshold != nil {
		updates["reorder_threshold"] = *req.ReorderThreshold
	}
	if len(updates) == 0 {
		return nil, custom_error.NewValidationError("body", "no fields to update")
	}

	query := r.Repository.GoquDBWrapper.
		Update("ingredients").
		Set(updates).
		Where(goqu.Ex{"id": ingredientID}).
		Returning("id", "name", "unit", "cost_per_unit", "alert_threshold", "reorder_threshold")

	var ingredient models.Ingredient
	found, err := query.Executor().ScanStruct(&ingredient)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return nil, custom_error.WrapDBError("Duplicate ingredient name", string(pqErr.Code))
		}
		return nil, fmt.Errorf("failed to update ingredient: %w", err)
	}
	if !found {
		return nil, custom_error.NewNotFoundError("ingredient", ingredientID)
	}

	return &ingredient, nil
}

func (r *IngredientRepository) RemoveIngredient(ingredientID int) error {
	result, err := r.Repository.GoquDBWrapper.
		Delete("ingredients").
		Where(goqu.Ex{"id": ingredientID}).
		Executor().
		Exec()
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return custom_error.WrapDBError("Ingredient is still referenced", string(pqErr.Code))
		}
		return fmt.Errorf("failed to delete ingredient: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not retrieve rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return custom_error.NewNotFoundError("ingredient", ingredientID)
	}

	return nil
}
