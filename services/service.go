// services/service.go - Shared database plumbing for the service layer
package services

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// statementTimeout bounds every single-statement read or write so a slow
// database surfaces as ErrTimeout instead of a hung request.
const statementTimeout = 5 * time.Second

// withTimeout returns a session bound to a fresh deadline. The deadline
// deliberately does not come from the caller's request context: an
// in-flight transaction must run to completion or fully roll back even
// if the client disconnects mid-operation.
func withTimeout(db *gorm.DB) (*gorm.DB, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), statementTimeout)
	return db.WithContext(ctx), cancel
}
