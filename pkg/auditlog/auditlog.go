package auditlog

import (
	"github.com/AngelRL115/SEHC/pkg/models"

	"go.uber.org/zap"
)

// LogPersister is implemented by the audit log repository.
type LogPersister interface {
	PersistLog(auditlog models.AuditLog, data interface{}) error
}

type Auditlog struct {
	r   LogPersister
	log *zap.Logger
}

type Auditable interface {
	CreateLogView() models.AuditLog
}

func NewAuditLog(repository LogPersister, log *zap.Logger) *Auditlog {
	return &Auditlog{r: repository, log: log}
}

// Log records a mutation best-effort: a failed audit write never fails the
// request that triggered it.
func (a *Auditlog) Log(action string, data interface{}, item Auditable) {
	auditLog := item.CreateLogView()
	auditLog.Action = action

	if err := a.r.PersistLog(auditLog, data); err != nil {
		a.log.Warn("unable to create audit log entry",
			zap.Int("resource_id", auditLog.ResourceID),
			zap.String("resource_type", auditLog.ResourceType),
			zap.Error(err),
		)
	}
}
