package view

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	dbTimeout = 5 * time.Second
	// Creating a cat consults the breed registry first.
	remoteTimeout = 15 * time.Second
)

// FormatSalary renders a salary with two decimal places.
func FormatSalary(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// FormatTime renders an optional timestamp, "-" when unset.
func FormatTime(t *time.Time) string {
	if t == nil {
		return "-"
	}

	return t.Local().Format("2006-01-02 15:04")
}

// ShortID abbreviates a UUID for table cells.
func ShortID(id uuid.UUID) string {
	return id.String()[:8]
}

// DbCtx returns a context with a standard timeout for database operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}

// RemoteCtx returns a context for operations that call external services.
func RemoteCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), remoteTimeout)
}
