// Package redis serves id sets stored in redis as ports.IDSource values,
// for hosts whose catalogs are shared between processes.
package redis
