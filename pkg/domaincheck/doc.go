// Package domaincheck serves the read-only admission endpoint the TLS
// edge consults before issuing a certificate for a candidate domain.
// A domain is admitted when its first label is an active tenant
// subdomain directly under the platform base domain and is not a
// reserved platform name.
package domaincheck
