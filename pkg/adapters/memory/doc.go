// Package memory provides an in-memory id set, used for built-in catalogs
// and in tests.
package memory
