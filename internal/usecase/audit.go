package usecase

import (
	"context"
	"log"

	"github.com/orionte/placement-api/internal/entity"
)

// appendAudit writes one audit entry and swallows failures: the primary
// operation's outcome is reported independently of whether its log landed.
func appendAudit(ctx context.Context, logger AuditLoggerInterface, e *entity.AuditEntry) {
	if logger == nil {
		return
	}
	if err := logger.Append(ctx, e); err != nil {
		log.Printf("audit log write failed (action=%s): %v", e.Action, err)
	}
}
