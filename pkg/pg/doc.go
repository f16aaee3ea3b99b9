// Package pg owns the database side of tenant isolation: one shared
// pgx/v5 connection pool, one schema per tenant, and a router that pins
// every statement to the schema bound to the request context.
//
// # Schema routing
//
// RouterDB wraps the pool. When the context carries a tenant binding,
// each statement (or transaction started through InTx) begins with
//
//	SET LOCAL search_path TO "<tenant schema>", public
//
// SET LOCAL is transaction-scoped, which is the property the whole
// design rests on: pooled connections are reused across tenants, and a
// connection-scoped SET would leak the previous tenant's schema into
// the next request. Tenant-agnostic contexts pass through to the pool
// untouched and resolve against public only.
//
// Repositories are written against the DB interface with unqualified
// table names; they never mention a schema.
//
//	db := pg.NewRouterDB(pool)
//	row := db.QueryRow(ctx, "SELECT name FROM recipes WHERE id = $1", id)
//
// # Connection management
//
// Connect opens the pool with retry, Healthcheck produces a readiness
// probe, and Migrate applies the public-schema directory migrations
// with goose before the service starts serving.
package pg
