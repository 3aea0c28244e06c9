package postgres

import (
	"context"
	"database/sql"
	"strings"

	"go.uber.org/zap"

	"github.com/ssgeek/commerce/internal/domain"
)

const customerSelect = `SELECT c.customer_id, c.name, c.street_address1, c.street_address2, c.city, c.state, c.zip_code FROM customer c`

type customerRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewCustomerRepository(db *sql.DB, logger *zap.Logger) *customerRepository {
	return &customerRepository{
		db:     db,
		logger: logger,
	}
}

func (r *customerRepository) GetByID(ctx context.Context, id int) (*domain.Customer, error) {
	c, err := scanCustomer(r.db.QueryRowContext(ctx, customerSelect+` WHERE c.customer_id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get customer", zap.Int("customer_id", id), zap.Error(err))
		return nil, classifyError("customer.GetByID", err)
	}
	return c, nil
}

func (r *customerRepository) List(ctx context.Context) ([]*domain.Customer, error) {
	rows, err := r.db.QueryContext(ctx, customerSelect+` ORDER BY c.customer_id`)
	if err != nil {
		r.logger.Error("Failed to list customers", zap.Error(err))
		return nil, classifyError("customer.List", err)
	}
	defer rows.Close()

	customers := []*domain.Customer{}
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, classifyError("customer.List", err)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, classifyError("customer.List", err)
	}
	return customers, nil
}

func (r *customerRepository) Create(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	query := `
		INSERT INTO customer (name, street_address1, street_address2, city, state, zip_code)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING customer_id
	`

	var id int
	err := r.db.QueryRowContext(ctx, query,
		customer.Name,
		customer.StreetAddress1,
		nullString(customer.StreetAddress2),
		customer.City,
		customer.State,
		customer.ZipCode,
	).Scan(&id)
	if err != nil {
		r.logger.Error("Failed to create customer", zap.Error(err))
		return nil, classifyError("customer.Create", err)
	}

	return r.GetByID(ctx, id)
}

func (r *customerRepository) Update(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	query := `
		UPDATE customer
		SET name = $1, street_address1 = $2, street_address2 = $3, city = $4, state = $5, zip_code = $6
		WHERE customer_id = $7
	`

	res, err := r.db.ExecContext(ctx, query,
		customer.Name,
		customer.StreetAddress1,
		nullString(customer.StreetAddress2),
		customer.City,
		customer.State,
		customer.ZipCode,
		customer.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update customer", zap.Int("customer_id", customer.ID), zap.Error(err))
		return nil, classifyError("customer.Update", err)
	}
	if err := expectRows("customer.Update", res); err != nil {
		return nil, err
	}

	return r.GetByID(ctx, customer.ID)
}

// scanCustomer drops a stored state or zip whose length is wrong instead of
// failing the read.
func scanCustomer(row rowScanner) (*domain.Customer, error) {
	var c domain.Customer
	var street2 sql.NullString
	var state, zip string

	if err := row.Scan(&c.ID, &c.Name, &c.StreetAddress1, &street2, &c.City, &state, &zip); err != nil {
		return nil, err
	}
	if street2.Valid {
		c.StreetAddress2 = &street2.String
	}
	if state = strings.TrimSpace(state); len(state) == 2 {
		c.State = state
	}
	if zip = strings.TrimSpace(zip); len(zip) == 5 {
		c.ZipCode = zip
	}
	return &c, nil
}
