// Package postgresdb provides the PostgreSQL-backed implementation of the
// storage contract. Username and email uniqueness is enforced by database
// constraints, so a conflicting write is rejected even when the service
// level pre-checks raced with a concurrent request.
package postgresdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/patric-chuzhbe/usersvc/internal/models"
	"github.com/patric-chuzhbe/usersvc/internal/user"
)

const uniqueViolationCode = "23505"

// PostgresDB is a PostgreSQL-backed user store.
type PostgresDB struct {
	database          *sql.DB
	connectionTimeout time.Duration
}

type initOptions struct {
	DBPreReset bool
}

// InitOption defines a functional option for configuring database initialization.
type InitOption func(*initOptions)

// WithDBPreReset enables or disables dropping the public schema tables
// before migration. It is meant for test setups.
func WithDBPreReset(value bool) InitOption {
	return func(options *initOptions) {
		options.DBPreReset = value
	}
}

// New establishes a connection to the PostgreSQL database, runs schema
// migrations via goose, and returns a configured PostgresDB instance.
func New(
	ctx context.Context,
	databaseDSN string,
	connectionTimeout time.Duration,
	migrationsDir string,
	optionsProto ...InitOption,
) (*PostgresDB, error) {
	options := &initOptions{
		DBPreReset: false,
	}
	for _, protoOption := range optionsProto {
		protoOption(options)
	}

	database, err := sql.Open("pgx", databaseDSN)
	if err != nil {
		return nil, err
	}

	result := &PostgresDB{
		database:          database,
		connectionTimeout: connectionTimeout,
	}

	if options.DBPreReset {
		if err := result.resetDB(ctx); err != nil {
			return nil, fmt.Errorf("error while `result.resetDB()` calling: %w", err)
		}
	}

	if err := goose.SetDialect("postgres"); err != nil {
		return nil, fmt.Errorf("error while `goose.SetDialect()` calling: %w", err)
	}

	if err := goose.Up(result.database, migrationsDir); err != nil {
		return nil, fmt.Errorf("error while `goose.Up()` calling: %w", err)
	}

	return result, nil
}

func scanUsers(rows *sql.Rows) ([]user.User, error) {
	defer rows.Close()

	result := []user.User{}
	for rows.Next() {
		var usr user.User
		err := rows.Scan(&usr.ID, &usr.Username, &usr.Email, &usr.FullName, &usr.Active)
		if err != nil {
			return nil, err
		}
		result = append(result, usr)
	}

	err := rows.Err()
	if err != nil {
		return nil, err
	}

	return result, nil
}

// FindAll returns every stored user ordered by id.
func (db *PostgresDB) FindAll(ctx context.Context) ([]user.User, error) {
	rows, err := db.database.QueryContext(
		ctx,
		`SELECT id, username, email, full_name, active FROM users ORDER BY id`,
	)
	if err != nil {
		return nil, err
	}

	return scanUsers(rows)
}

// FindByActive returns the users whose active flag equals the argument,
// ordered by id.
func (db *PostgresDB) FindByActive(ctx context.Context, active bool) ([]user.User, error) {
	rows, err := db.database.QueryContext(
		ctx,
		`SELECT id, username, email, full_name, active FROM users WHERE active = $1 ORDER BY id`,
		active,
	)
	if err != nil {
		return nil, err
	}

	return scanUsers(rows)
}

// FindByID fetches a user by id. The boolean result reports whether the
// record exists.
func (db *PostgresDB) FindByID(ctx context.Context, id int64) (*user.User, bool, error) {
	row := db.database.QueryRowContext(
		ctx,
		`SELECT id, username, email, full_name, active FROM users WHERE id = $1`,
		id,
	)
	var usr user.User
	err := row.Scan(&usr.ID, &usr.Username, &usr.Email, &usr.FullName, &usr.Active)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}

	return &usr, true, nil
}

// FindByUsername fetches a user by username. The boolean result reports
// whether the record exists.
func (db *PostgresDB) FindByUsername(ctx context.Context, username string) (*user.User, bool, error) {
	row := db.database.QueryRowContext(
		ctx,
		`SELECT id, username, email, full_name, active FROM users WHERE username = $1`,
		username,
	)
	var usr user.User
	err := row.Scan(&usr.ID, &usr.Username, &usr.Email, &usr.FullName, &usr.Active)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}

	return &usr, true, nil
}

// IsUsernameExists checks whether any stored user holds the given username.
func (db *PostgresDB) IsUsernameExists(ctx context.Context, username string) (bool, error) {
	return db.exists(ctx, `SELECT COUNT(*) FROM users WHERE username = $1`, username)
}

// IsEmailExists checks whether any stored user holds the given email.
func (db *PostgresDB) IsEmailExists(ctx context.Context, email string) (bool, error) {
	return db.exists(ctx, `SELECT COUNT(*) FROM users WHERE email = $1`, email)
}

// IsUserExists checks whether a user with the given id is stored.
func (db *PostgresDB) IsUserExists(ctx context.Context, id int64) (bool, error) {
	return db.exists(ctx, `SELECT COUNT(*) FROM users WHERE id = $1`, id)
}

func (db *PostgresDB) exists(ctx context.Context, query string, arg interface{}) (bool, error) {
	row := db.database.QueryRowContext(ctx, query, arg)
	var count int
	err := row.Scan(&count)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}

		return false, err
	}

	return count > 0, nil
}

// SaveUser upserts the record. A zero ID inserts the user and returns it
// with the id assigned by the users sequence; a non-zero ID replaces the
// stored record. A unique constraint violation is translated into the
// matching duplicate-field error.
func (db *PostgresDB) SaveUser(ctx context.Context, usr *user.User) (*user.User, error) {
	saved := *usr

	var err error
	if usr.ID == 0 {
		row := db.database.QueryRowContext(
			ctx,
			`INSERT INTO users (username, email, full_name, active)
				VALUES ($1, $2, $3, $4)
				RETURNING id`,
			usr.Username,
			usr.Email,
			usr.FullName,
			usr.Active,
		)
		err = row.Scan(&saved.ID)
	} else {
		_, err = db.database.ExecContext(
			ctx,
			`UPDATE users
				SET username = $2, email = $3, full_name = $4, active = $5
				WHERE id = $1`,
			usr.ID,
			usr.Username,
			usr.Email,
			usr.FullName,
			usr.Active,
		)
	}
	if err != nil {
		return nil, translateUniqueViolation(err)
	}

	return &saved, nil
}

func translateUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolationCode {
		return err
	}

	switch pgErr.ConstraintName {
	case "users_username_key":
		return models.ErrUsernameExists
	case "users_email_key":
		return models.ErrEmailExists
	}

	return err
}

// DeleteUser removes the record with the given id. Deleting a missing id is
// a no-op.
func (db *PostgresDB) DeleteUser(ctx context.Context, id int64) error {
	_, err := db.database.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)

	return err
}

// Ping verifies connectivity with the PostgreSQL database within the
// configured timeout.
func (db *PostgresDB) Ping(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, db.connectionTimeout)
	defer cancel()

	return db.database.PingContext(ctxWithTimeout)
}

// Close closes the database connection and releases any associated resources.
func (db *PostgresDB) Close() error {
	err := db.database.Close()
	if err != nil {
		return err
	}

	return nil
}

func (db *PostgresDB) resetDB(ctx context.Context) error {
	_, err := db.database.ExecContext(
		ctx,
		`
			DO $$
			DECLARE
				r RECORD;
			BEGIN
				FOR r IN (SELECT tablename FROM pg_tables WHERE schemaname = 'public') LOOP
					EXECUTE 'DROP TABLE IF EXISTS ' || quote_ident(r.tablename) || ' CASCADE';
				END LOOP;
			END $$;
		`,
	)
	if err != nil {
		return fmt.Errorf("error while `db.database.ExecContext()` calling: %w", err)
	}
	return nil
}
