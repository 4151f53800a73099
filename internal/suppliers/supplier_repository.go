package suppliers

import (
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"

	"github.com/marcomamdouh99/pro/internal/repository"
	custom_error "github.com/marcomamdouh99/pro/pkg/errors"
	"github.com/marcomamdouh99/pro/pkg/models"
)

type SupplierRepository struct {
	Repository *repository.Repository
}

func NewSupplierRepository(r *repository.Repository) *SupplierRepository {
	return &SupplierRepository{Repository: r}
}

func (r *SupplierRepository) GetSuppliers(activeOnly bool) ([]models.Supplier, error) {
	var suppliers = []models.Supplier{}
	query := r.Repository.GoquDBWrapper.
		Select(&models.Supplier{}).
		From("suppliers").
		Order(goqu.I("name").Asc())

	if activeOnly {
		query = query.Where(goqu.Ex{"is_active": true})
	}

	if err := query.Executor().ScanStructs(&suppliers); err != nil {
		return nil, fmt.Errorf("unable to execute SQL: %w", err)
	}

	return suppliers, nil
}

func (r *SupplierRepository) GetSupplier(supplierID int) (*models.Supplier, error) {
	var supplier models.Supplier
	query := r.Repository.GoquDBWrapper.
		Select(&models.Supplier{}).
		From("suppliers").
		Where(goqu.Ex{"id": supplierID})

	found, err := query.Executor().ScanStruct(&supplier)
	if err != nil {
		return nil, fmt.Errorf("unable to execute SQL: %w", err)
	}
	if !found {
		return nil, custom_error.NewNotFoundError("supplier", supplierID)
	}

	return &supplier, nil
}

func (r *SupplierRepository) PersistSupplier(supplier *models.Supplier) error {
	query := r.Repository.GoquDBWrapper.Insert("suppliers").
		Rows(goqu.Record{
			"name":           supplier.Name,
			"contact_person": supplier.ContactPerson,
			"email":          supplier.Email,
			"phone":          supplier.Phone,
			"address":        supplier.Address,
			"is_active":      supplier.IsActive,
			"notes":          supplier.Notes,
		}).
		Returning("id")

	if _, err := query.Executor().ScanVal(&supplier.ID); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return custom_error.WrapDBError("Duplicate supplier "+supplier.Name, string(pqErr.Code))
		}
		return fmt.Errorf("failed to insert supplier record: %w", err)
	}

	return nil
}

func (r *SupplierRepository) UpdateSupplier(supplierID int, req UpdateSupplierRequest) (*models.Supplier, error) {
	updates := make(map[string]interface{})

	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.ContactPerson != nil {
		updates["contact_person"] = *req.ContactPerson
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if len(updates) == 0 {
		return nil, custom_error.NewValidationError("body", "no fields to update")
	}

	query := r.Repository.GoquDBWrapper.
		Update("suppliers").
		Set(updates).
		Where(goqu.Ex{"id": supplierID}).
		Returning("id", "name", "contact_person", "email", "phone", "address", "is_active", "notes")

	var supplier models.Supplier
	found, err := query.Executor().ScanStruct(&supplier)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return nil, custom_error.WrapDBError("Duplicate supplier", string(pqErr.Code))
		}
		return nil, fmt.Errorf("failed to update supplier: %w", err)
	}
	if !found {
		return nil, custom_error.NewNotFoundError("supplier", supplierID)
	}

	return &supplier, nil
}

// CountPurchaseOrders backs the delete guard: a supplier that still owns
// purchase orders is not deletable.
func (r *SupplierRepository) CountPurchaseOrders(supplierID int) (int64, error) {
	count, err := r.Repository.GoquDBWrapper.
		From("purchase_orders").
		Where(goqu.Ex{"supplier_id": supplierID}).
		Count()
	if err != nil {
		return 0, fmt.Errorf("failed to count supplier purchase orders: %w", err)
	}

	return count, nil
}

func (r *SupplierRepository) RemoveSupplier(supplierID int) error {
	count, err := r.CountPurchaseOrders(supplierID)
	if err != nil {
		return err
	}
	if count > 0 {
		return custom_error.NewConflictError(fmt.Sprintf("supplier %d still owns %d purchase orders", supplierID, count))
	}

	result, err := r.Repository.GoquDBWrapper.
		Delete("suppliers").
		Where(goqu.Ex{"id": supplierID}).
		Executor().
		Exec()
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return custom_error.WrapDBError("Supplier is still referenced", string(pqErr.Code))
		}
		return fmt.Errorf("failed to delete supplier: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not retrieve rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return custom_error.NewNotFoundError("supplier", supplierID)
	}

	return nil
}
