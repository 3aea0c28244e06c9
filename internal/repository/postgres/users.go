package postgres

import (
	"context"
	"database/sql"
	"strings"

	"go.uber.org/zap"

	"github.com/ssgeek/commerce/internal/domain"
)

const userSelect = `
		SELECT user_id, username, password_hash, role, state_code, created_at
		FROM users
	`

type userRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB, logger *zap.Logger) *userRepository {
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

func (r *userRepository) GetByID(ctx context.Context, id int) (*domain.User, error) {
	query := userSelect + `WHERE user_id = $1`
	return r.getOne(ctx, "user.GetByID", query, id)
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := userSelect + `WHERE username = $1`
	return r.getOne(ctx, "user.GetByUsername", query, username)
}

func (r *userRepository) getOne(ctx context.Context, op, query string, arg interface{}) (*domain.User, error) {
	var user domain.User
	var stateCode sql.NullString

	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Role,
		&stateCode,
		&user.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get user", zap.String("op", op), zap.Error(err))
		return nil, classifyError(op, err)
	}

	if stateCode.Valid {
		user.StateCode = strings.ToUpper(strings.TrimSpace(stateCode.String))
	}

	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (username, password_hash, role, state_code)
		VALUES ($1, $2, $3, $4)
		RETURNING user_id, created_at
	`

	if user.Role == "" {
		user.Role = domain.RoleUser
	}

	var stateCode sql.NullString
	if user.StateCode != "" {
		stateCode = sql.NullString{String: strings.ToUpper(user.StateCode), Valid: true}
	}

	err := r.db.QueryRowContext(ctx, query,
		user.Username,
		user.PasswordHash,
		user.Role,
		stateCode,
	).Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		r.logger.Error("Failed to create user", zap.Error(err))
		return classifyError("user.Create", err)
	}

	return nil
}
