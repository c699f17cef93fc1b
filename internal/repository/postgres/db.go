// internal/repository/postgres/db.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"net"

	xerrors "github.com/kubilayakkiz/wawainteriorsNL/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func xerrNotFound(kind, id string) error {
	return fmt.Errorf("%s %s: %w", kind, id, xerrors.ErrNotFound)
}

// mapError translates driver-level failures onto the application's
// sentinel errors so callers can branch without importing pgx. Unique
// violations become conflicts, row-policy denials become forbidden, and
// connection-class failures become ErrStoreUnavailable, which is what
// triggers the snapshot fallback on list reads.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return xerrors.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "23505":
			return xerrors.Wrap(xerrors.ErrConflict, pgErr.Detail)
		case pgErr.Code == "42501":
			return xerrors.Wrap(xerrors.ErrForbidden, pgErr.Message)
		case len(pgErr.Code) >= 2 && pgErr.Code[:2] == "08":
			return xerrors.Wrap(xerrors.ErrStoreUnavailable, pgErr.Message)
		}
		return err
	}

	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded) {
		return xerrors.Wrap(xerrors.ErrStoreUnavailable, err.Error())
	}

	return err
}
