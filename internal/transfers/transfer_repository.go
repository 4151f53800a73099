package transfers

import (
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/lib/pq"

	"github.com/marcomamdouh99/pro/internal/repository"
	custom_error "github.com/marcomamdouh99/pro/pkg/errors"
	"github.com/marcomamdouh99/pro/pkg/metadata"
	"github.com/marcomamdouh99/pro/pkg/models"
)

type TransferRepository interface {
	InsertTransferRecord(tx *goqu.TxDatabase, transfer models.InventoryTransfer) (int, error)
	InsertTransferItems(tx *goqu.TxDatabase, transferID int, items []models.InventoryTransferItem) error
	GetTransfer(transferID int) (*models.InventoryTransfer, error)
	GetTransferForUpdate(tx *goqu.TxDatabase, transferID int) (*models.InventoryTransfer, error)
	GetTransferItems(transferID int) ([]models.InventoryTransferItem, error)
	GetTransferItemsTx(tx *goqu.TxDatabase, transferID int) ([]models.InventoryTransferItem, error)
	GetTransfers(conditions repository.QueryBuilder) ([]models.InventoryTransfer, error)
	UpdateTransferStatus(tx *goqu.TxDatabase, transferID int, status metadata.TransferStatus) error
	SetApproval(transferID int, approverID int) (bool, error)
	SetCompletion(tx *goqu.TxDatabase, transferID int, completerID *int) error
	UpdateNotes(tx *goqu.TxDatabase, transferID int, notes string) error
	SetItemTargetInventory(tx *goqu.TxDatabase, itemID int, targetInventoryID int) error
	DeleteTransfer(tx *goqu.TxDatabase, transferID int) error
}

type transferRepository struct {
	repo *repository.Repository
}

func NewRepository(r *repository.Repository) TransferRepository {
	return &transferRepository{repo: r}
}

func (r *transferRepository) InsertTransferRecord(tx *goqu.TxDatabase, transfer models.InventoryTransfer) (int, error) {
	query := tx.Insert("inventory_transfers").
		Rows(goqu.Record{
			"transfer_number":  transfer.TransferNumber,
			"source_branch_id": transfer.SourceBranchID,
			"target_branch_id": transfer.TargetBranchID,
			"status":           transfer.Status.String(),
			"requested_by":     transfer.RequestedBy,
			"notes":            transfer.Notes,
		}).
		Returning("id")

	var transferID int
	if _, err := query.Executor().ScanVal(&transferID); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return 0, custom_error.WrapDBError("Duplicate transfer number "+transfer.TransferNumber, string(pqErr.Code))
		}
		return 0, fmt.Errorf("failed to insert transfer record: %w", err)
	}

	return transferID, nil
}

func (r *transferRepository) InsertTransferItems(tx *goqu.TxDatabase, transferID int, items []models.InventoryTransferItem) error {
	var records []goqu.Record
	for _, item := range items {
		records = append(records, goqu.Record{
			"transfer_id":         transferID,
			"ingredient_id":       item.IngredientID,
			"source_inventory_id": item.SourceInventoryID,
			"target_inventory_id": item.TargetInventoryID,
			"quantity":            item.Quantity,
			"unit":                item.Unit,
		})
	}

	query := tx.Insert("inventory_transfer_items").Rows(records)

	if _, err := query.Executor().Exec(); err != nil {
		return fmt.Errorf("failed to insert transfer items: %w", err)
	}

	return nil
}

func (r *transferRepository) GetTransfer(transferID int) (*models.InventoryTransfer, error) {
	var transfer models.InventoryTransfer

	found, err := r.repo.GoquDBWrapper.
		From("inventory_transfers").
		Where(goqu.Ex{"id": transferID}).
		Executor().
		ScanStruct(&transfer)
	if err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}
	if !found {
		return nil, custom_error.NewNotFoundError("transfer", transferID)
	}

	items, err := r.GetTransferItems(transferID)
	if err != nil {
		return nil, err
	}
	transfer.Items = items

	return &transfer, nil
}

func (r *transferRepository) GetTransferForUpdate(tx *goqu.TxDatabase, transferID int) (*models.InventoryTransfer, error) {
	var transfer models.InventoryTransfer

	found, err := tx.
		From("inventory_transfers").
		Where(goqu.Ex{"id": transferID}).
		ForUpdate(exp.Wait).
		Executor().
		ScanStruct(&transfer)
	if err != nil {
		return nil, fmt.Errorf("unable to lock transfer row: %w", err)
	}
	if !found {
		return nil, custom_error.NewNotFoundError("transfer", transferID)
	}

	return &transfer, nil
}

func (r *transferRepository) GetTransferItems(transferID int) ([]models.InventoryTransferItem, error) {
	var items []models.InventoryTransferItem

	query := r.repo.GoquDBWrapper.
		From("inventory_transfer_items").
		Where(goqu.Ex{"transfer_id": transferID}).
		Order(goqu.I("id").Asc())

	if err := query.Executor().ScanStructs(&items); err != nil {
		return nil, fmt.Errorf("unable to select transfer items: %w", err)
	}

	return items, nil
}

func (r *transferRepository) GetTransferItemsTx(tx *goqu.TxDatabase, transferID int) ([]models.InventoryTransferItem, error) {
	var items []models.InventoryTransferItem

	query := tx.
		From("inventory_transfer_items").
		Where(goqu.Ex{"transfer_id": transferID}).
		Order(goqu.I("id").Asc())

	if err := query.Executor().ScanStructs(&items); err != nil {
		return nil, fmt.Errorf("unable to select transfer items: %w", err)
	}

	return items, nil
}

func (r *transferRepository) GetTransfers(conditions repository.QueryBuilder) ([]models.InventoryTransfer, error) {
	var transfers []models.InventoryTransfer

	query := r.repo.GoquDBWrapper.
		From("inventory_transfers").
		Order(goqu.I("requested_at").Desc())

	if conditions.HasConditions() {
		query = query.Where(conditions.BuildConditions(nil))
	}

	if err := query.Executor().ScanStructs(&transfers); err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}

	return transfers, nil
}

func (r *transferRepository) UpdateTransferStatus(tx *goqu.TxDatabase, transferID int, status metadata.TransferStatus) error {
	query := tx.Update("inventory_transfers").
		Set(goqu.Record{"status": status.String()}).
		Where(goqu.Ex{"id": transferID})

	if _, err := query.Executor().Exec(); err != nil {
		return fmt.Errorf("failed to update transfer %d status: %w", transferID, err)
	}

	return nil
}

// SetApproval mirrors the purchase order set-once approval write.
func (r *transferRepository) SetApproval(transferID int, approverID int) (bool, error) {
	result, err := r.repo.GoquDBWrapper.
		Update("inventory_transfers").
		Set(goqu.Record{
			"status":      metadata.TransferApproved.String(),
			"approved_by": approverID,
			"approved_at": goqu.L("NOW()"),
		}).
		Where(goqu.Ex{"id": transferID, "status": metadata.TransferPending.String()}).
		Where(goqu.I("approved_at").IsNull()).
		Executor().
		Exec()
	if err != nil {
		return false, fmt.Errorf("failed to approve transfer %d: %w", transferID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

// SetCompletion flips the status and stamps completed_by/completed_at once.
// Runs inside the completion transaction so the flip only commits with the
// item moves.
func (r *transferRepository) SetCompletion(tx *goqu.TxDatabase, transferID int, completerID *int) error {
	query := tx.Update("inventory_transfers").
		Set(goqu.Record{
			"status":       metadata.TransferCompleted.String(),
			"completed_by": goqu.L("COALESCE(completed_by, ?)", completerID),
			"completed_at": goqu.L("COALESCE(completed_at, NOW())"),
		}).
		Where(goqu.Ex{"id": transferID})

	if _, err := query.Executor().Exec(); err != nil {
		return fmt.Errorf("failed to complete transfer %d: %w", transferID, err)
	}

	return nil
}

func (r *transferRepository) UpdateNotes(tx *goqu.TxDatabase, transferID int, notes string) error {
	result, err := tx.
		Update("inventory_transfers").
		Set(goqu.Record{"notes": notes}).
		Where(goqu.Ex{"id": transferID}).
		Executor().
		Exec()
	if err != nil {
		return fmt.Errorf("failed to update transfer %d notes: %w", transferID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return custom_error.NewNotFoundError("transfer", transferID)
	}

	return nil
}

func (r *transferRepository) SetItemTargetInventory(tx *goqu.TxDatabase, itemID int, targetInventoryID int) error {
	query := tx.Update("inventory_transfer_items").
		Set(goqu.Record{"target_inventory_id": targetInventoryID}).
		Where(goqu.Ex{"id": itemID})

	if _, err := query.Executor().Exec(); err != nil {
		return fmt.Errorf("failed to backfill target inventory for item %d: %w", itemID, err)
	}

	return nil
}

func (r *transferRepository) DeleteTransfer(tx *goqu.TxDatabase, transferID int) error {
	if _, err := tx.Delete("inventory_transfer_items").
		Where(goqu.Ex{"transfer_id": transferID}).
		Executor().
		Exec(); err != nil {
		return fmt.Errorf("failed to delete transfer items: %w", err)
	}

	if _, err := tx.Delete("inventory_transfers").
		Where(goqu.Ex{"id": transferID}).
		Executor().
		Exec(); err != nil {
		return fmt.Errorf("failed to delete transfer: %w", err)
	}

	return nil
}
