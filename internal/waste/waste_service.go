package waste

import (
	"fmt"
	"strings"

	"github.com/doug-martin/goqu/v9"
	"github.com/shopspring/decimal"

	"github.com/marcomamdouh99/pro/internal/repository"
	"github.com/marcomamdouh99/pro/pkg/auditlog"
	custom_error "github.com/marcomamdouh99/pro/pkg/errors"
	"github.com/marcomamdouh99/pro/pkg/metadata"
	"github.com/marcomamdouh99/pro/pkg/models"
)

// IngredientLookup is the slice of the catalog the waste service needs to
// freeze loss value at record time.
type IngredientLookup interface {
	GetIngredient(ingredientID int) (*models.Ingredient, error)
}

// StockLedger is the slice of the inventory ledger waste recording needs: a
// locked read followed by the negative delta write.
type StockLedger interface {
	GetForUpdate(tx *goqu.TxDatabase, branchID, ingredientID int) (*models.BranchInventory, error)
	ApplyDelta(tx *goqu.TxDatabase, inventory *models.BranchInventory, delta decimal.Decimal, transactionType metadata.TransactionType, reason string, userID *int) (*models.BranchInventory, error)
}

type txRunner interface {
	RunTx(fn func(tx *goqu.TxDatabase) error) error
}

type WasteService struct {
	r          txRunner
	wr         WasteRepository
	ledgerRepo StockLedger
	catalog    IngredientLookup
	auditLog   *auditlog.Auditlog
}

func NewService(r *repository.Repository, wr WasteRepository, lr StockLedger, catalog IngredientLookup, a *auditlog.Auditlog) *WasteService {
	return &WasteService{
		r:          r,
		wr:         wr,
		ledgerRepo: lr,
		catalog:    catalog,
		auditLog:   a,
	}
}

// RecordWaste decrements the branch ledger, appends the matching transaction
// row and creates the waste log entry in one transaction. Loss value is
// computed from the ingredient's cost per unit at record time.
func (s *WasteService) RecordWaste(req RecordWasteRequest, userID *int) (*models.WasteLog, error) {
	reason, err := metadata.NewWasteReason(req.Reason)
	if err != nil {
		return nil, custom_error.NewValidationError("reason", err.Error())
	}
	if !req.Quantity.IsPositive() {
		return nil, custom_error.NewValidationError("quantity", "waste quantity must be positive")
	}

	ingredient, err := s.catalog.GetIngredient(req.IngredientID)
	if err != nil {
		return nil, err
	}

	unit := req.Unit
	if unit == "" {
		unit = ingredient.Unit
	}

	wasteLog := models.WasteLog{
		BranchID:     req.BranchID,
		IngredientID: req.IngredientID,
		Quantity:     req.Quantity,
		Unit:         unit,
		Reason:       reason,
		LossValue:    req.Quantity.Mul(ingredient.CostPerUnit),
		Notes:        req.Notes,
		RecordedBy:   userID,
	}

	err = s.r.RunTx(func(tx *goqu.TxDatabase) error {
		inventory, err := s.ledgerRepo.GetForUpdate(tx, req.BranchID, req.IngredientID)
		if err != nil {
			return err
		}

		if _, err := s.ledgerRepo.ApplyDelta(tx, inventory, req.Quantity.Neg(), metadata.TransactionWaste, wasteReason(reason, req.Notes), userID); err != nil {
			return err
		}

		return s.wr.InsertWasteLog(tx, &wasteLog)
	})
	if err != nil {
		return nil, err
	}

	go s.auditLog.Log("create", map[string]interface{}{
		"branch_id":     wasteLog.BranchID,
		"ingredient_id": wasteLog.IngredientID,
		"quantity":      wasteLog.Quantity,
		"reason":        wasteLog.Reason,
		"loss_value":    wasteLog.LossValue,
	}, &wasteLog)

	return &wasteLog, nil
}

func (s *WasteService) GetWasteLogs(query ListWasteQuery) ([]models.WasteLog, error) {
	conditions := repository.NewQueryBuilder()
	if query.BranchID != nil {
		conditions.AddCondition("branch_id", *query.BranchID)
	}
	if query.IngredientID != nil {
		conditions.AddCondition("ingredient_id", *query.IngredientID)
	}
	if query.Reason != "" {
		reason, err := metadata.NewWasteReason(query.Reason)
		if err != nil {
			return nil, custom_error.NewValidationError("reason", err.Error())
		}
		conditions.AddCondition("reason", string(reason))
	}

	return s.wr.GetWasteLogs(conditions)
}

// wasteReason builds the transaction log reason line, e.g. "SPOILED: left out
// overnight".
func wasteReason(reason metadata.WasteReason, notes string) string {
	if strings.TrimSpace(notes) == "" {
		return string(reason)
	}
	return fmt.Sprintf("%s: %s", reason, notes)
}
