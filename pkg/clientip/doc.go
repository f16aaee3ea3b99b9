// Package clientip extracts the originating client address from a
// request that arrived through the platform edge proxy. The per-IP
// throttle on the domain admission endpoint keys its buckets on it.
package clientip
