package inventory_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/go-arrower/warehouse/inventory"
	"github.com/go-arrower/warehouse/repository"
)

var ctx = context.Background()

// today is the fixed clock of all tests seeding data.
var today = time.Date(2026, time.October, 19, 14, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return today }

func newElectronic(id int, quantity int32) *inventory.Electronic {
	e, err := inventory.NewElectronic(id, gofakeit.ProductName(), quantity, gofakeit.Company(), gofakeit.IntRange(0, 36))
	if err != nil {
		panic(err)
	}

	return e
}

func newGrocery(id int, quantity int32) *inventory.Grocery {
	g, err := inventory.NewGrocery(id, gofakeit.ProductName(), quantity, gofakeit.FutureDate())
	if err != nil {
		panic(err)
	}

	return g
}

var errStoreFailed = errors.New("store failed")

// failingStore starts empty, accepts successfulWrites writes and fails every later one.
type failingStore struct {
	mu               sync.Mutex
	successfulWrites int
}

func (s *failingStore) Store(string, any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.successfulWrites <= 0 {
		return fmt.Errorf("%w: %w", repository.ErrStore, errStoreFailed)
	}

	s.successfulWrites--

	return nil
}

func (s *failingStore) Load(fileName string, _ any) error {
	return fmt.Errorf("%s: %w", fileName, os.ErrNotExist)
}
