package waste

import (
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/marcomamdouh99/pro/internal/repository"
	"github.com/marcomamdouh99/pro/pkg/models"
)

type WasteRepository interface {
	InsertWasteLog(tx *goqu.TxDatabase, wasteLog *models.WasteLog) error
	GetWasteLogs(conditions repository.QueryBuilder) ([]models.WasteLog, error)
}

type wasteRepository struct {
	r *repository.Repository
}

func NewRepository(r *repository.Repository) WasteRepository {
	return &wasteRepository{r: r}
}

func (w *wasteRepository) InsertWasteLog(tx *goqu.TxDatabase, wasteLog *models.WasteLog) error {
	query := tx.Insert("waste_logs").
		Rows(goqu.Record{
			"branch_id":     wasteLog.BranchID,
			"ingredient_id": wasteLog.IngredientID,
			"quantity":      wasteLog.Quantity,
			"unit":          wasteLog.Unit,
			"reason":        wasteLog.Reason,
			"loss_value":    wasteLog.LossValue,
			"notes":         wasteLog.Notes,
			"recorded_by":   wasteLog.RecordedBy,
		}).
		Returning("id", "created_at").
		Executor()

	if _, err := query.ScanStruct(wasteLog); err != nil {
		return fmt.Errorf("failed to insert waste log: %w", err)
	}

	return nil
}

func (w *wasteRepository) GetWasteLogs(conditions repository.QueryBuilder) ([]models.WasteLog, error) {
	query := w.r.GoquDBWrapper.From("waste_logs").
		Select(&models.WasteLog{}).
		Order(goqu.I("created_at").Desc())

	if conditions.HasConditions() {
		query = query.Where(conditions.BuildConditions(map[string]string{}))
	}

	var wasteLogs []models.WasteLog
	if err := query.Executor().ScanStructs(&wasteLogs); err != nil {
		return nil, fmt.Errorf("failed to get waste logs: %w", err)
	}

	return wasteLogs, nil
}
