package pg

import (
	"context"
	"fmt"
	"regexp"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pratoflow/tenantcore/pkg/tenant"
)

// schemaNamePattern is the only shape the tenant directory ever
// generates: "{subdomain}_{id}". Anything else is rejected before it
// can reach a search_path directive.
var schemaNamePattern = regexp.MustCompile(`^[a-z0-9]+_[0-9]+$`)

// DB is the statement surface repositories depend on. Both *pgxpool.Pool
// and *RouterDB satisfy it, so tenant-agnostic code and tenant-scoped
// code share one repository implementation.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// beginner is the slice of pgxpool.Pool the router needs. Narrowed to an
// interface so tests can substitute a recording fake.
type beginner interface {
	DB
	Begin(ctx context.Context) (pgx.Tx, error)
}

// RouterDB routes every statement to the schema bound to the request
// context. When a binding is present the statement runs inside a
// transaction whose first command pins the search path to
// [tenant schema, public]; SET LOCAL expires with the transaction, so a
// pooled connection can never carry one tenant's search path into
// another tenant's request. Without a binding statements pass through
// to the pool unchanged and resolve against public only.
//
// Reads and writes take the identical path: there is no read-side
// bypass that could silently observe another tenant's rows.
type RouterDB struct {
	pool beginner
}

// NewRouterDB wraps the shared pool.
func NewRouterDB(pool *pgxpool.Pool) *RouterDB {
	return &RouterDB{pool: pool}
}

// searchPathStmt builds the transaction-scoped schema directive.
// SET LOCAL does not accept bind parameters, so the identifier is
// validated against the directory's generation pattern and quoted. The
// schema name originates from the tenant directory, never from request
// input, but the check holds even if that invariant is ever broken.
func searchPathStmt(schema string) (string, error) {
	if !schemaNamePattern.MatchString(schema) {
		return "", fmt.Errorf("%w: %q", ErrInvalidSchemaName, schema)
	}
	return fmt.Sprintf("SET LOCAL search_path TO %s, public", pgx.Identifier{schema}.Sanitize()), nil
}

func applySearchPath(ctx context.Context, tx pgx.Tx, schema string) error {
	stmt, err := searchPathStmt(schema)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, stmt); err != nil {
		return fmt.Errorf("set search_path: %w", err)
	}
	return nil
}

// Exec runs a single statement under the bound schema.
func (db *RouterDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	schema, ok := tenant.SchemaFromContext(ctx)
	if !ok {
		return db.pool.Exec(ctx, sql, args...)
	}
	var tag pgconn.CommandTag
	err := pgx.BeginFunc(ctx, db.pool, func(tx pgx.Tx) error {
		if err := applySearchPath(ctx, tx, schema); err != nil {
			return err
		}
		var execErr error
		tag, execErr = tx.Exec(ctx, sql, args...)
		return execErr
	})
	return tag, err
}

// Query runs a query under the bound schema. The returned rows hold the
// routing transaction open; Close commits it, or rolls it back when row
// iteration ended with an error.
func (db *RouterDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	schema, ok := tenant.SchemaFromContext(ctx)
	if !ok {
		return db.pool.Query(ctx, sql, args...)
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	if err := applySearchPath(ctx, tx, schema); err != nil {
		_ = tx.Rollback(ctx)
		return nil, err
	}
	rows, err := tx.Query(ctx, sql, args...)
	if err != nil {
		_ = tx.Rollback(ctx)
		return nil, err
	}
	return &routedRows{Rows: rows, ctx: ctx, tx: tx}, nil
}

// QueryRow runs a single-row query under the bound schema. The routing
// transaction is opened lazily when Scan is called, matching pgx.Row's
// deferred-error contract.
func (db *RouterDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	schema, ok := tenant.SchemaFromContext(ctx)
	if !ok {
		return db.pool.QueryRow(ctx, sql, args...)
	}
	return &routedRow{db: db, ctx: ctx, schema: schema, sql: sql, args: args}
}

// InTx runs fn inside one transaction pinned to the bound schema. This
// is the entrypoint for multi-statement units of work. Without a
// binding the transaction runs against public only.
func (db *RouterDB) InTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	schema, bound := tenant.SchemaFromContext(ctx)
	return pgx.BeginFunc(ctx, db.pool, func(tx pgx.Tx) error {
		if bound {
			if err := applySearchPath(ctx, tx, schema); err != nil {
				return err
			}
		}
		return fn(tx)
	})
}

type routedRows struct {
	pgx.Rows
	ctx  context.Context
	tx   pgx.Tx
	done bool
}

func (r *routedRows) Close() {
	if r.done {
		return
	}
	r.done = true
	r.Rows.Close()
	if r.Rows.Err() != nil {
		_ = r.tx.Rollback(r.ctx)
		return
	}
	_ = r.tx.Commit(r.ctx)
}

type routedRow struct {
	db     *RouterDB
	ctx    context.Context
	schema string
	sql    string
	args   []any
}

func (r *routedRow) Scan(dest ...any) error {
	return pgx.BeginFunc(r.ctx, r.db.pool, func(tx pgx.Tx) error {
		if err := applySearchPath(r.ctx, tx, r.schema); err != nil {
			return err
		}
		return tx.QueryRow(r.ctx, r.sql, r.args...).Scan(dest...)
	})
}
