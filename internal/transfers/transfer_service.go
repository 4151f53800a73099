package transfers

import (
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/shopspring/decimal"

	"github.com/marcomamdouh99/pro/internal/inventory/ledger"
	"github.com/marcomamdouh99/pro/internal/repository"
	"github.com/marcomamdouh99/pro/pkg/auditlog"
	custom_error "github.com/marcomamdouh99/pro/pkg/errors"
	"github.com/marcomamdouh99/pro/pkg/metadata"
	"github.com/marcomamdouh99/pro/pkg/models"
)

// StockLedger is the slice of the inventory ledger the transfer engine needs:
// locked reads on both sides of a move, zero-stock provisioning and the
// paired delta writes.
type StockLedger interface {
	GetForUpdate(tx *goqu.TxDatabase, branchID, ingredientID int) (*models.BranchInventory, error)
	GetOrCreateForUpdate(tx *goqu.TxDatabase, branchID, ingredientID int) (*models.BranchInventory, error)
	EnsureRow(tx *goqu.TxDatabase, branchID, ingredientID int) error
	ApplyDelta(tx *goqu.TxDatabase, inventory *models.BranchInventory, delta decimal.Decimal, transactionType metadata.TransactionType, reason string, userID *int) (*models.BranchInventory, error)
}

type txRunner interface {
	RunTx(fn func(tx *goqu.TxDatabase) error) error
}

type TransferService struct {
	r          txRunner
	tr         TransferRepository
	ledgerRepo StockLedger
	auditLog   *auditlog.Auditlog
}

func NewService(r *repository.Repository, tr TransferRepository, lr StockLedger, a *auditlog.Auditlog) *TransferService {
	return &TransferService{
		r:          r,
		tr:         tr,
		ledgerRepo: lr,
		auditLog:   a,
	}
}

// StockShortfall is one entry of the per-item rejection list returned when a
// transfer requests more than the source branch has available.
type StockShortfall struct {
	IngredientID int             `json:"ingredient_id"`
	Available    decimal.Decimal `json:"available"`
	Requested    decimal.Decimal `json:"requested"`
}

// CreateTransfer validates source stock for every item and persists the
// transfer as PENDING. Nothing moves yet, but target ledger rows are
// pre-provisioned at zero so completion never has to create them blind.
func (s *TransferService) CreateTransfer(req CreateTransferRequest, userID *int) (*models.InventoryTransfer, []StockShortfall, error) {
	if req.SourceBranchID == req.TargetBranchID {
		return nil, nil, custom_error.NewValidationError("target_branch_id", "transfer source and target branch cannot be the same")
	}
	if len(req.Items) == 0 {
		return nil, nil, custom_error.NewValidationError("items", "cannot create empty transfer")
	}
	for _, item := range req.Items {
		if !item.Quantity.IsPositive() {
			return nil, nil, custom_error.NewValidationError("items", fmt.Sprintf("quantity for ingredient %d must be positive", item.IngredientID))
		}
	}

	transfer := models.InventoryTransfer{
		TransferNumber: req.TransferNumber,
		SourceBranchID: req.SourceBranchID,
		TargetBranchID: req.TargetBranchID,
		Status:         metadata.TransferPending,
		RequestedBy:    userID,
		Notes:          req.Notes,
	}

	var transferID int
	var shortfalls []StockShortfall

	err := s.r.RunTx(func(tx *goqu.TxDatabase) error {
		items := make([]models.InventoryTransferItem, 0, len(req.Items))

		for _, itemReq := range req.Items {
			sourceInventory, err := s.ledgerRepo.GetForUpdate(tx, req.SourceBranchID, itemReq.IngredientID)
			if err != nil {
				if ledger.IsNotFound(err) {
					shortfalls = append(shortfalls, StockShortfall{
						IngredientID: itemReq.IngredientID,
						Available:    decimal.Zero,
						Requested:    itemReq.Quantity,
					})
					continue
				}
				return err
			}

			if sourceInventory.AvailableStock().LessThan(itemReq.Quantity) {
				shortfalls = append(shortfalls, StockShortfall{
					IngredientID: itemReq.IngredientID,
					Available:    sourceInventory.AvailableStock(),
					Requested:    itemReq.Quantity,
				})
				continue
			}

			items = append(items, models.InventoryTransferItem{
				IngredientID:      itemReq.IngredientID,
				SourceInventoryID: sourceInventory.ID,
				Quantity:          itemReq.Quantity,
				Unit:              itemReq.Unit,
			})
		}

		if len(shortfalls) > 0 {
			return custom_error.NewValidationError("items", "insufficient stock at source branch")
		}

		// Pre-provisioning the target rows is a convenience, not a stock
		// mutation; the transfer is still only PENDING.
		for i := range items {
			if err := s.ledgerRepo.EnsureRow(tx, req.TargetBranchID, items[i].IngredientID); err != nil {
				return err
			}
		}

		var err error
		if transferID, err = s.tr.InsertTransferRecord(tx, transfer); err != nil {
			return err
		}

		return s.tr.InsertTransferItems(tx, transferID, items)
	})
	if err != nil {
		if len(shortfalls) > 0 {
			return nil, shortfalls, err
		}
		return nil, nil, err
	}

	created, err := s.tr.GetTransfer(transferID)
	if err != nil {
		return nil, nil, err
	}

	go s.auditLog.Log(
		"create",
		map[string]interface{}{
			"transfer_number":  created.TransferNumber,
			"source_branch_id": created.SourceBranchID,
			"target_branch_id": created.TargetBranchID,
			"msg":              "Inventory transfer requested",
		},
		created,
	)

	return created, nil, nil
}

// ApproveTransfer is set-once, legal only from PENDING. A repeated call on an
// approved transfer returns it unchanged.
func (s *TransferService) ApproveTransfer(transferID int, approverID int) (*models.InventoryTransfer, error) {
	transfer, err := s.tr.GetTransfer(transferID)
	if err != nil {
		return nil, err
	}

	switch transfer.Status {
	case metadata.TransferApproved:
		return transfer, nil
	case metadata.TransferPending:
		// fallthrough to the set-once write
	default:
		return nil, custom_error.NewConflictError(
			fmt.Sprintf("cannot approve transfer in status %s", transfer.Status),
		)
	}

	approved, err := s.tr.SetApproval(transferID, approverID)
	if err != nil {
		return nil, err
	}

	if approved {
		go s.auditLog.Log(
			"approve",
			map[string]interface{}{
				"transfer_number": transfer.TransferNumber,
				"approved_by":     approverID,
				"msg":             "Inventory transfer approved",
			},
			transfer,
		)
	}

	return s.tr.GetTransfer(transferID)
}

// UpdateTransfer drives the status machine. The COMPLETED transition moves
// stock; everything runs in one transaction so either every item's source
// decrement, target increment and both ADJUSTMENT rows land, or none do.
func (s *TransferService) UpdateTransfer(transferID int, req UpdateTransferRequest, userID *int) (*models.InventoryTransfer, error) {
	if req.Notes != nil {
		if err := s.updateNotes(transferID, *req.Notes); err != nil {
			return nil, err
		}
	}

	if req.Status == nil {
		return s.tr.GetTransfer(transferID)
	}

	status, err := metadata.NewTransferStatus(*req.Status)
	if err != nil {
		return nil, custom_error.NewValidationError("status", err.Error())
	}

	switch status {
	case metadata.TransferCompleted:
		if err := s.completeTransfer(transferID, userID); err != nil {
			return nil, err
		}
	case metadata.TransferApproved:
		if userID == nil {
			return nil, custom_error.NewValidationError("status", "approver identity missing")
		}
		if _, err := s.ApproveTransfer(transferID, *userID); err != nil {
			return nil, err
		}
	default:
		if err := s.transitionTransfer(transferID, status); err != nil {
			return nil, err
		}
	}

	return s.tr.GetTransfer(transferID)
}

// updateNotes edits the free-text notes on the locked row. Terminal
// transfers are immutable, notes included, matching the order side.
func (s *TransferService) updateNotes(transferID int, notes string) error {
	return s.r.RunTx(func(tx *goqu.TxDatabase) error {
		transfer, err := s.tr.GetTransferForUpdate(tx, transferID)
		if err != nil {
			return err
		}

		if transfer.Status.IsTerminal() {
			return custom_error.NewConflictError(
				fmt.Sprintf("transfer in status %s can no longer be updated", transfer.Status),
			)
		}

		return s.tr.UpdateNotes(tx, transferID, notes)
	})
}

// DeleteTransfer is permitted only while the transfer is still PENDING. The
// status check runs on the locked row so a concurrent status transition
// cannot slip in between check and delete.
func (s *TransferService) DeleteTransfer(transferID int) error {
	return s.r.RunTx(func(tx *goqu.TxDatabase) error {
		transfer, err := s.tr.GetTransferForUpdate(tx, transferID)
		if err != nil {
			return err
		}

		if transfer.Status != metadata.TransferPending {
			return custom_error.NewConflictError(
				fmt.Sprintf("only PENDING transfers can be deleted, current status is %s", transfer.Status),
			)
		}

		return s.tr.DeleteTransfer(tx, transferID)
	})
}

func (s *TransferService) GetTransfer(transferID int) (*models.InventoryTransfer, error) {
	return s.tr.GetTransfer(transferID)
}

func (s *TransferService) GetTransfers(sourceBranchID, targetBranchID *int, status string) ([]models.InventoryTransfer, error) {
	conditions := repository.NewQueryBuilder()
	if sourceBranchID != nil {
		conditions.AddCondition("source_branch_id", *sourceBranchID)
	}
	if targetBranchID != nil {
		conditions.AddCondition("target_branch_id", *targetBranchID)
	}
	if status != "" {
		transferStatus, err := metadata.NewTransferStatus(status)
		if err != nil {
			return nil, custom_error.NewValidationError("status", err.Error())
		}
		conditions.AddCondition("status", transferStatus.String())
	}

	return s.tr.GetTransfers(conditions)
}

// completeTransfer applies the per-item stock moves. The transfer row is
// locked first: a concurrent double-submit serializes on that lock and the
// second caller sees COMPLETED and no-ops instead of double-counting.
func (s *TransferService) completeTransfer(transferID int, userID *int) error {
	var completed *models.InventoryTransfer

	err := s.r.RunTx(func(tx *goqu.TxDatabase) error {
		transfer, err := s.tr.GetTransferForUpdate(tx, transferID)
		if err != nil {
			return err
		}

		if transfer.Status == metadata.TransferCompleted {
			return nil
		}
		if !transfer.Status.CanTransitionTo(metadata.TransferCompleted) {
			return custom_error.NewConflictError(
				fmt.Sprintf("cannot complete transfer in status %s", transfer.Status),
			)
		}

		items, err := s.tr.GetTransferItemsTx(tx, transferID)
		if err != nil {
			return err
		}

		for _, item := range items {
			sourceInventory, err := s.ledgerRepo.GetForUpdate(tx, transfer.SourceBranchID, item.IngredientID)
			if err != nil {
				return err
			}

			outReason := fmt.Sprintf("Transfer %s to branch %d", transfer.TransferNumber, transfer.TargetBranchID)
			if _, err := s.ledgerRepo.ApplyDelta(tx, sourceInventory, item.Quantity.Neg(), metadata.TransactionAdjustment, outReason, userID); err != nil {
				return err
			}

			targetInventory, err := s.ledgerRepo.GetOrCreateForUpdate(tx, transfer.TargetBranchID, item.IngredientID)
			if err != nil {
				return err
			}

			inReason := fmt.Sprintf("Transfer %s from branch %d", transfer.TransferNumber, transfer.SourceBranchID)
			if _, err := s.ledgerRepo.ApplyDelta(tx, targetInventory, item.Quantity, metadata.TransactionAdjustment, inReason, userID); err != nil {
				return err
			}

			if err := s.tr.SetItemTargetInventory(tx, item.ID, targetInventory.ID); err != nil {
				return err
			}
		}

		if err := s.tr.SetCompletion(tx, transferID, userID); err != nil {
			return err
		}

		completed = transfer
		return nil
	})
	if err != nil {
		return err
	}

	if completed != nil {
		go s.auditLog.Log(
			"complete",
			map[string]interface{}{
				"transfer_number":  completed.TransferNumber,
				"source_branch_id": completed.SourceBranchID,
				"target_branch_id": completed.TargetBranchID,
				"msg":              "Inventory transfer completed, stock moved between branches",
			},
			completed,
		)
	}

	return nil
}

func (s *TransferService) transitionTransfer(transferID int, status metadata.TransferStatus) error {
	return s.r.RunTx(func(tx *goqu.TxDatabase) error {
		transfer, err := s.tr.GetTransferForUpdate(tx, transferID)
		if err != nil {
			return err
		}

		if transfer.Status == status {
			return nil
		}
		if !transfer.Status.CanTransitionTo(status) {
			return custom_error.NewConflictError(
				fmt.Sprintf("cannot change transfer status from %s to %s", transfer.Status, status),
			)
		}

		return s.tr.UpdateTransferStatus(tx, transferID, status)
	})
}
