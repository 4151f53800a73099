package auditlog

import (
	"log"

	"github.com/marcomamdouh99/pro/internal/repository"
	"github.com/marcomamdouh99/pro/pkg/models"
)

// Auditlog records who did what to orders, transfers and catalog rows. It is
// separate from the inventory transaction ledger, which only tracks stock
// deltas.
type Auditlog struct {
	r *repository.Repository
}

type Auditable interface {
	CreateLogView() models.AuditLog
}

func (a *Auditlog) Log(action string, data interface{}, item Auditable) {
	auditLog := item.CreateLogView()
	auditLog.Action = action

	err := a.r.PersistLog(auditLog, data)

	if err != nil {
		log.Println("Unable to create AuditLog entry for id ", auditLog.ResourceID)
		return
	}

	log.Println("Created AuditLog entry for id ", auditLog.ResourceID)
}

func NewAuditLog(repository *repository.Repository) *Auditlog {
	a := Auditlog{r: repository}

	return &a
}
