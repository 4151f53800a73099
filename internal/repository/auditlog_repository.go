package repository

import (
	"encoding/json"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/marcomamdouh99/pro/pkg/models"
)

func (r *Repository) PersistLog(auditlog models.AuditLog, auditLogData interface{}) error {
	dataJSON, err := json.Marshal(auditLogData)
	if err != nil {
		return fmt.Errorf("failed to marshal audit log data: %w", err)
	}

	query := r.GoquDBWrapper.Insert("audit_logs").
		Rows(goqu.Record{
			"resource_id":   auditlog.ResourceID,
			"resource_type": auditlog.ResourceType,
			"action":        auditlog.Action,
			"data":          dataJSON,
			"user_id":       auditlog.UserID,
		})

	_, err = query.Executor().Exec()
	if err != nil {
		return fmt.Errorf("failed to insert audit log: %w", err)
	}

	return nil
}
