// Package gateway assembles the HTTP pipeline of the platform: request
// correlation, tenant resolution, authentication and the impersonation
// policy, plus the tenant-agnostic endpoints the core owns (health,
// TLS domain admission). Business route groups are mounted by the
// caller and always run behind the full pipeline.
package gateway
