// Package intf manages the lifecycle of control interfaces in the media
// runtime.
//
// A Runtime owns the registry of running interfaces, the lazily created
// shared playlist and the single mutex guarding both. Interfaces are
// created by selector string (resolved through the modules package),
// registered until a single bulk teardown stops them all, and may
// themselves request creation of further interfaces through the
// "intf-add" dynamic selector.
//
// Locking is scoped to individual operations: module resolution and
// interface shutdown both run outside the lock, and the selector's Set
// path reaches the creation routine without any lock held, so an
// interface adding another interface cannot deadlock.
package intf
