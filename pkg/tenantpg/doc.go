// Package tenantpg is the PostgreSQL implementation of the tenant
// directory. It exposes the single read operation the resolution core
// depends on: get an active tenant by subdomain. All writes to the
// directory belong to the tenant-management surface, which lives
// outside this module.
package tenantpg
