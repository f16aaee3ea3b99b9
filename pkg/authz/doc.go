// Package authz gates tenant-scoped routes. A tenant principal passes
// on the strength of its own token; a backoffice principal passes only
// while explicitly impersonating a resolved, active tenant. Decisions
// are pure per-request predicates with no persisted state.
package authz
