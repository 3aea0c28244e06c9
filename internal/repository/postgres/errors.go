package postgres

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/lib/pq"

	apperrors "github.com/ssgeek/commerce/pkg/errors"
)

// classifyError maps driver errors onto the application error taxonomy.
func classifyError(op string, err error) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Class() {
		case "23":
			return &apperrors.ErrIntegrity{Op: op, Constraint: pqErr.Constraint, Err: err}
		case "08", "57":
			return &apperrors.ErrConnection{Op: op, Err: err}
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	var netErr net.Error
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) || errors.As(err, &netErr) {
		return &apperrors.ErrConnection{Op: op, Err: err}
	}

	return fmt.Errorf("%s: %w", op, err)
}

// expectRows turns a zero affected-row count into ErrUnexpectedRowCount.
func expectRows(op string, res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return classifyError(op, err)
	}
	if n == 0 {
		return &apperrors.ErrUnexpectedRowCount{Op: op, Expected: 1, Got: n}
	}
	return nil
}
