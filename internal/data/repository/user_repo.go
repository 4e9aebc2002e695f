package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"shop-backend/internal/data/entity"
	"shop-backend/internal/dto/request"
	"shop-backend/pkg/apperror"
	"shop-backend/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByMobile(ctx context.Context, mobile string) (*entity.User, error)
	FindByRefreshToken(ctx context.Context, token string) (*entity.User, error)
	FindByResetToken(ctx context.Context, tokenHash string, now time.Time) (*entity.User, error)
	List(ctx context.Context, q request.ListQuery) ([]*entity.User, error)
	Count(ctx context.Context, q request.ListQuery) (int64, error)
	Update(ctx context.Context, user *entity.User) error
	SetBlocked(ctx context.Context, id uuid.UUID, blocked bool) error
	SetRefreshToken(ctx context.Context, id uuid.UUID, token *string) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Wishlist is a set of product ids per user.
	WishlistContains(ctx context.Context, userID, productID uuid.UUID) (bool, error)
	AddToWishlist(ctx context.Context, userID, productID uuid.UUID) error
	RemoveFromWishlist(ctx context.Context, userID, productID uuid.UUID) error
	Wishlist(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

var userSchema = listSchema{
	columns: map[string]column{
		"firstname":  {"firstname", kindText},
		"lastname":   {"lastname", kindText},
		"email":      {"email", kindText},
		"mobile":     {"mobile", kindText},
		"role":       {"role", kindText},
		"is_blocked": {"is_blocked", kindBool},
		"created_at": {"created_at", kindTime},
		"updated_at": {"updated_at", kindTime},
	},
	aliases: map[string]string{
		"isBlocked": "is_blocked",
		"createdAt": "created_at",
		"updatedAt": "updated_at",
	},
}

const userColumns = `id, firstname, lastname, email, mobile, password, role, is_blocked, address,
	refresh_token, password_changed_at, password_reset_token, password_reset_expires,
	created_at, updated_at`

type userRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewUserRepository(db database.PgxIface, log *zap.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log.With(zap.String("repository", "user")),
	}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var user entity.User
	err := row.Scan(
		&user.ID,
		&user.Firstname,
		&user.Lastname,
		&user.Email,
		&user.Mobile,
		&user.PasswordHash,
		&user.Role,
		&user.IsBlocked,
		&user.Address,
		&user.RefreshToken,
		&user.PasswordChangedAt,
		&user.PasswordResetToken,
		&user.PasswordResetExpires,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// duplicateUserError tells an email clash from a mobile clash.
func duplicateUserError(err error) error {
	if strings.Contains(constraintName(err), "mobile") {
		return apperror.ErrMobileTaken
	}
	return apperror.ErrEmailTaken
}

func (ur *userRepository) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, firstname, lastname, email, mobile, password, role,
		                   is_blocked, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := ur.db.Exec(ctx, query,
		user.ID,
		user.Firstname,
		user.Lastname,
		user.Email,
		user.Mobile,
		user.PasswordHash,
		user.Role,
		user.IsBlocked,
		user.Address,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return duplicateUserError(err)
	}
	if err != nil {
		ur.log.Error("Failed to create user",
			zap.Error(err),
			zap.String("email", user.Email),
		)
		return fmt.Errorf("create user %s: %w", user.Email, err)
	}

	return nil
}

func (ur *userRepository) findOne(ctx context.Context, where string, arg ...any) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + where

	user, err := scanUser(ur.db.QueryRow(ctx, query, arg...))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user", zap.Error(err), zap.String("where", where))
		return nil, fmt.Errorf("find user where %s: %w", where, err)
	}
	return user, nil
}

func (ur *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return ur.findOne(ctx, "id = $1", id)
}

// FindByEmail matches case-insensitively; emails are stored lower-cased.
func (ur *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return ur.findOne(ctx, "email = $1", strings.ToLower(strings.TrimSpace(email)))
}

func (ur *userRepository) FindByMobile(ctx context.Context, mobile string) (*entity.User, error) {
	return ur.findOne(ctx, "mobile = $1", mobile)
}

func (ur *userRepository) FindByRefreshToken(ctx context.Context, token string) (*entity.User, error) {
	return ur.findOne(ctx, "refresh_token = $1", token)
}

func (ur *userRepository) FindByResetToken(ctx context.Context, tokenHash string, now time.Time) (*entity.User, error) {
	return ur.findOne(ctx, "password_reset_token = $1 AND password_reset_expires > $2", tokenHash, now)
}

func (ur *userRepository) List(ctx context.Context, q request.ListQuery) ([]*entity.User, error) {
	query, _, args, err := userSchema.listSQL(userColumns, "users", q)
	if err != nil {
		return nil, err
	}

	rows, err := ur.db.Query(ctx, query, args...)
	if err != nil {
		ur.log.Error("Failed to list users", zap.Error(err))
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			ur.log.Error("Failed to scan user row", zap.Error(err))
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		ur.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate users rows: %w", err)
	}

	return users, nil
}

func (ur *userRepository) Count(ctx context.Context, q request.ListQuery) (int64, error) {
	_, query, args, err := userSchema.listSQL(userColumns, "users", q)
	if err != nil {
		return 0, err
	}

	var count int64
	if err := ur.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		ur.log.Error("Database error counting users", zap.Error(err))
		return 0, fmt.Errorf("count users: %w", err)
	}
	return count, nil
}

func (ur *userRepository) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users
		SET firstname = $2, lastname = $3, email = $4, mobile = $5, password = $6,
		    role = $7, is_blocked = $8, address = $9, refresh_token = $10,
		    password_changed_at = $11, password_reset_token = $12,
		    password_reset_expires = $13, updated_at = $14
		WHERE id = $1
	`

	result, err := ur.db.Exec(ctx, query,
		user.ID,
		user.Firstname,
		user.Lastname,
		user.Email,
		user.Mobile,
		user.PasswordHash,
		user.Role,
		user.IsBlocked,
		user.Address,
		user.RefreshToken,
		user.PasswordChangedAt,
		user.PasswordResetToken,
		user.PasswordResetExpires,
		user.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return duplicateUserError(err)
	}
	if err != nil {
		ur.log.Error("Failed to update user",
			zap.Error(err),
			zap.String("user_id", user.ID.String()),
		)
		return fmt.Errorf("update user %s: %w", user.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return apperror.ErrUserNotFound
	}
	return nil
}

func (ur *userRepository) SetBlocked(ctx context.Context, id uuid.UUID, blocked bool) error {
	result, err := ur.db.Exec(ctx, `UPDATE users SET is_blocked = $2, updated_at = NOW() WHERE id = $1`, id, blocked)
	if err != nil {
		ur.log.Error("Failed to set user block flag", zap.Error(err), zap.String("user_id", id.String()))
		return fmt.Errorf("set blocked for user %s: %w", id.String(), err)
	}
	if result.RowsAffected() == 0 {
		return apperror.ErrUserNotFound
	}
	return nil
}

func (ur *userRepository) SetRefreshToken(ctx context.Context, id uuid.UUID, token *string) error {
	_, err := ur.db.Exec(ctx, `UPDATE users SET refresh_token = $2, updated_at = NOW() WHERE id = $1`, id, token)
	if err != nil {
		ur.log.Error("Failed to store refresh token", zap.Error(err), zap.String("user_id", id.String()))
		return fmt.Errorf("set refresh token for user %s: %w", id.String(), err)
	}
	return nil
}

func (ur *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := ur.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		ur.log.Error("Failed to delete user", zap.Error(err), zap.String("id", id.String()))
		return fmt.Errorf("delete user %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return apperror.ErrUserNotFound
	}

	ur.log.Info("User deleted", zap.String("id", id.String()))
	return nil
}

func (ur *userRepository) WishlistContains(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	var exists bool
	err := ur.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM user_wishlists WHERE user_id = $1 AND product_id = $2)`,
		userID, productID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check wishlist of user %s: %w", userID.String(), err)
	}
	return exists, nil
}

func (ur *userRepository) AddToWishlist(ctx context.Context, userID, productID uuid.UUID) error {
	_, err := ur.db.Exec(ctx,
		`INSERT INTO user_wishlists (user_id, product_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		userID, productID,
	)
	if err != nil {
		ur.log.Error("Failed to add wishlist item", zap.Error(err), zap.String("user_id", userID.String()))
		return fmt.Errorf("add product %s to wishlist: %w", productID.String(), err)
	}
	return nil
}

func (ur *userRepository) RemoveFromWishlist(ctx context.Context, userID, productID uuid.UUID) error {
	_, err := ur.db.Exec(ctx,
		`DELETE FROM user_wishlists WHERE user_id = $1 AND product_id = $2`,
		userID, productID,
	)
	if err != nil {
		ur.log.Error("Failed to remove wishlist item", zap.Error(err), zap.String("user_id", userID.String()))
		return fmt.Errorf("remove product %s from wishlist: %w", productID.String(), err)
	}
	return nil
}

func (ur *userRepository) Wishlist(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := ur.db.Query(ctx,
		`SELECT product_id FROM user_wishlists WHERE user_id = $1 ORDER BY created_at`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("get wishlist of user %s: %w", userID.String(), err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, fmt.Errorf("collect wishlist rows: %w", err)
	}
	return ids, nil
}
