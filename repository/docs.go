// Package repository offers a generic in memory Repository for inventory items.
//
// A MemoryRepository holds exactly one category of items, the category is the type parameter.
// Mixing categories is not possible, as it would not compile.
// All failures are returned as errors, that can be checked with errors.Is against
// ErrAlreadyExists, ErrNotFound, ErrInvalidQuantity and, if a Store is used, ErrStore.
//
// It is possible to extend a MemoryRepository with new methods by embedding it.
// There is an example for that.
//
// Sometimes it might be handy to persist the data, so it is possible to use a Store to do so.
// This is NOT intended for production use and comes without any consistency guarantees.
package repository
