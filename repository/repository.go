package repository

import (
	"context"
	"errors"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrAlreadyExists   = errors.New("already exists")
	ErrInvalidQuantity = errors.New("invalid quantity")
)

// Item is the contract every entity has to fulfil to be kept in a Repository.
//
// T is the type implementing Item, usually a pointer to a struct,
// so that Clone can return an independent copy of the same type.
// SetQuantity is used by the Repository only, callers change the quantity
// via Repository.UpdateQuantity or Repository.AdjustQuantity.
type Item[T any] interface {
	ID() int
	Name() string
	Quantity() int32
	SetQuantity(quantity int32)
	Clone() T
}

// Repository is a keyed store for one category of items.
// It guarantees that no two items share the same ID.
// Every failing call leaves the repository unchanged.
type Repository[T Item[T]] interface {
	AddItem(ctx context.Context, item T) error
	GetItemByID(ctx context.Context, id int) (T, error)
	RemoveItem(ctx context.Context, id int) error
	GetAllItems(ctx context.Context) ([]T, error)
	UpdateQuantity(ctx context.Context, id int, quantity int32) error

	// AdjustQuantity replaces the quantity of the item with id by the result of fn,
	// which is called with the current quantity.
	// The read and the write happen under the same lock.
	AdjustQuantity(ctx context.Context, id int, fn func(current int32) (int32, error)) error

	Count(ctx context.Context) (int, error)
	Exists(ctx context.Context, id int) (bool, error)
}
