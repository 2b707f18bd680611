package repository

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/taskdeck/taskdeck/internal/domain"
)

// psql is the shared Squirrel statement builder configured for PostgreSQL dollar placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// unavailable classifies a failed store call as a StoreUnavailable error while
// keeping the underlying cause in the message.
func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, domain.ErrStoreUnavailable, err)
}
