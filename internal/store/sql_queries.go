package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"
)

const (
	createUser = `INSERT INTO users (firstname, lastname, email, password_hash)
    VALUES ($1, $2, $3, $4)
    RETURNING user_id, firstname, lastname, email, password_hash, created_at;`

	findUserByEmail = `SELECT user_id, firstname, lastname, email, password_hash, created_at
    FROM users
    WHERE email = $1;`

	findUserByID = `SELECT user_id, firstname, lastname, email, password_hash, created_at
    FROM users
    WHERE user_id = $1;`
)

// psql is the statement builder used for all refresh-token queries.
// PostgreSQL expects $N placeholders instead of the default ?.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func buildInsertRefreshTokenQuery(token string, userID int64, expiresAt time.Time) (string, []any, error) {
	return psql.
		Insert("refresh_tokens").
		Columns("token", "user_id", "expires_at").
		Values(token, userID, expiresAt).
		ToSql()
}

func buildFindRefreshTokenQuery(token string) (string, []any, error) {
	return psql.
		Select("token", "user_id", "expires_at").
		From("refresh_tokens").
		Where(sq.Eq{"token": token}).
		ToSql()
}

func buildDeleteRefreshTokenQuery(token string) (string, []any, error) {
	return psql.
		Delete("refresh_tokens").
		Where(sq.Eq{"token": token}).
		ToSql()
}

func buildDeleteUserRefreshTokensQuery(userID int64) (string, []any, error) {
	return psql.
		Delete("refresh_tokens").
		Where(sq.Eq{"user_id": userID}).
		ToSql()
}

func buildDeleteExpiredRefreshTokensQuery(now time.Time) (string, []any, error) {
	return psql.
		Delete("refresh_tokens").
		Where(sq.LtOrEq{"expires_at": now}).
		ToSql()
}
