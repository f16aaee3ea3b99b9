// Package identity consumes the claims minted by the external auth
// service. The only claim this core cares about is Context, which marks
// a principal as either a tenant user or a backoffice operator; the
// authorization layer in pkg/authz builds its decisions on top of it.
package identity
