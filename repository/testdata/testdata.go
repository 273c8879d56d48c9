package testdata

import (
	"github.com/brianvoe/gofakeit/v6"
)

// Entity is a minimal repository.Item used to test the repository itself.
type Entity struct {
	Key   int    `json:"id"`
	Title string `json:"name"`
	Stock int32  `json:"quantity"`
}

func (e *Entity) ID() int                 { return e.Key }
func (e *Entity) Name() string            { return e.Title }
func (e *Entity) Quantity() int32         { return e.Stock }
func (e *Entity) SetQuantity(stock int32) { e.Stock = stock }

func (e *Entity) Clone() *Entity {
	c := *e
	return &c
}

// RandomEntity returns an Entity with the given id and random name and quantity.
func RandomEntity(id int) *Entity {
	return &Entity{
		Key:   id,
		Title: gofakeit.ProductName(),
		Stock: int32(gofakeit.IntRange(0, 1000)), //nolint:gosec // range fits into int32
	}
}
