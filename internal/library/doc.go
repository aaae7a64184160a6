// Package library provides the SQLite-backed media-item store. The
// playlist loads its initial contents from the library and records
// additions back into it, so playlist contents survive restarts.
package library
