package repository

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"slices"
	"sync"
)

// Option configures a MemoryRepository.
type Option func(config *repoConfig)

// WithStore sets a Store used to persist the Repository.
// After every change the complete collection is written to the store.
// If the store fails, the change is reverted and the error is returned.
func WithStore(store Store) Option { //nolint:revive // unexported-return is OK for this option
	return func(config *repoConfig) {
		config.store = store
	}
}

// WithStoreFilename overwrites the file name a Store should use to persist this Repository.
func WithStoreFilename(name string) Option { //nolint:revive // unexported-return is OK for this option
	return func(config *repoConfig) {
		config.filename = name
	}
}

type repoConfig struct {
	store    Store
	filename string
}

// NewMemoryRepository returns an empty Repository for the items of type T.
//
// If a Store is given via WithStore, the items are loaded from it and added one by one,
// so the same uniqueness rule applies as for AddItem.
// If the stored data can not be loaded, NewMemoryRepository panics.
// Use LoadMemoryRepository to handle that case as an error.
func NewMemoryRepository[T Item[T]](opts ...Option) *MemoryRepository[T] {
	repo, err := LoadMemoryRepository[T](opts...)
	if err != nil {
		panic("could not load data for memory repository from store: " + err.Error())
	}

	return repo
}

// LoadMemoryRepository works like NewMemoryRepository, but returns an error wrapping ErrLoad,
// if the stored data is corrupt, contains an empty item, or contains the same ID twice.
func LoadMemoryRepository[T Item[T]](opts ...Option) (*MemoryRepository[T], error) {
	repo := &MemoryRepository[T]{
		Mutex: &sync.Mutex{},
		Data:  make(map[int]T),
		repoConfig: repoConfig{
			store:    noopStore{},
			filename: defaultFileName[T](),
		},
	}

	for _, opt := range opts {
		opt(&repo.repoConfig)
	}

	var items []T

	err := repo.store.Load(repo.filename, &items)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		if !errors.Is(err, ErrLoad) {
			err = fmt.Errorf("%w: %w", ErrLoad, err)
		}

		return nil, fmt.Errorf("%s: %w", repo.filename, err)
	}

	for i, item := range items {
		if isNil(item) {
			return nil, fmt.Errorf("%w: %s: item at position %d is empty", ErrLoad, repo.filename, i)
		}

		id := item.ID()
		if _, found := repo.Data[id]; found {
			return nil, fmt.Errorf("%w: %s: item with id %d %w", ErrLoad, repo.filename, id, ErrAlreadyExists)
		}

		repo.Data[id] = item
	}

	return repo, nil
}

func isNil[T any](item T) bool {
	v := reflect.ValueOf(item)
	if !v.IsValid() {
		return true
	}

	switch v.Kind() { //nolint:exhaustive // only nillable kinds matter
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	default:
		return false
	}
}

// MemoryRepository implements Repository in a generic way.
type MemoryRepository[T Item[T]] struct {
	// Mutex is embedded, so that repositories who extend MemoryRepository can lock the same mutex as other methods.
	*sync.Mutex

	// Data is the repository's collection. It is exposed in case you're extending the repository.
	// PREVENT using and accessing Data directly, go through the repository methods.
	// If you write to Data, USE the Mutex to lock first.
	Data map[int]T

	repoConfig
}

func defaultFileName[T any]() string {
	t := reflect.TypeFor[T]()
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	return t.Name() + ".json"
}

func (repo *MemoryRepository[T]) AddItem(_ context.Context, item T) error {
	repo.Lock()
	defer repo.Unlock()

	id := item.ID()
	if _, found := repo.Data[id]; found {
		return fmt.Errorf("item with id %d %w", id, ErrAlreadyExists)
	}

	repo.Data[id] = item

	if err := repo.persist(); err != nil {
		delete(repo.Data, id)
		return fmt.Errorf("could not add item %d: %w", id, err)
	}

	return nil
}

// GetItemByID returns the stored item itself and not a copy.
func (repo *MemoryRepository[T]) GetItemByID(_ context.Context, id int) (T, error) { //nolint:ireturn // valid use of generics
	repo.Lock()
	defer repo.Unlock()

	if item, ok := repo.Data[id]; ok {
		return item, nil
	}

	return *new(T), fmt.Errorf("item with id %d %w", id, ErrNotFound)
}

func (repo *MemoryRepository[T]) RemoveItem(_ context.Context, id int) error {
	repo.Lock()
	defer repo.Unlock()

	oldItem, found := repo.Data[id]
	if !found {
		return fmt.Errorf("item with id %d %w", id, ErrNotFound)
	}

	delete(repo.Data, id)

	if err := repo.persist(); err != nil {
		repo.Data[id] = oldItem
		return fmt.Errorf("could not remove item %d: %w", id, err)
	}

	return nil
}

// GetAllItems returns a snapshot of all items, ordered by ID.
// The items are copies, changes to the repository afterwards are not reflected in the snapshot.
func (repo *MemoryRepository[T]) GetAllItems(_ context.Context) ([]T, error) {
	repo.Lock()
	defer repo.Unlock()

	return repo.snapshot(), nil
}

func (repo *MemoryRepository[T]) UpdateQuantity(ctx context.Context, id int, quantity int32) error {
	if quantity < 0 {
		return fmt.Errorf("%w: %d is negative", ErrInvalidQuantity, quantity)
	}

	return repo.AdjustQuantity(ctx, id, func(_ int32) (int32, error) {
		return quantity, nil
	})
}

func (repo *MemoryRepository[T]) AdjustQuantity(_ context.Context, id int, fn func(current int32) (int32, error)) error {
	repo.Lock()
	defer repo.Unlock()

	item, found := repo.Data[id]
	if !found {
		return fmt.Errorf("item with id %d %w", id, ErrNotFound)
	}

	oldQuantity := item.Quantity()

	quantity, err := fn(oldQuantity)
	if err != nil {
		return err
	}

	if quantity < 0 {
		return fmt.Errorf("%w: %d is negative", ErrInvalidQuantity, quantity)
	}

	item.SetQuantity(quantity)

	if err := repo.persist(); err != nil {
		item.SetQuantity(oldQuantity)
		return fmt.Errorf("could not update quantity of item %d: %w", id, err)
	}

	return nil
}

func (repo *MemoryRepository[T]) Count(_ context.Context) (int, error) {
	repo.Lock()
	defer repo.Unlock()

	return len(repo.Data), nil
}

func (repo *MemoryRepository[T]) Exists(_ context.Context, id int) (bool, error) {
	repo.Lock()
	defer repo.Unlock()

	_, ok := repo.Data[id]

	return ok, nil
}

// snapshot expects the Mutex to be locked by the caller.
func (repo *MemoryRepository[T]) snapshot() []T {
	items := make([]T, 0, len(repo.Data))

	for _, item := range repo.Data {
		items = append(items, item.Clone())
	}

	slices.SortFunc(items, func(a, b T) int {
		return cmp.Compare(a.ID(), b.ID())
	})

	return items
}

// persist expects the Mutex to be locked by the caller.
func (repo *MemoryRepository[T]) persist() error {
	if _, ok := repo.store.(noopStore); ok {
		return nil
	}

	return repo.store.Store(repo.filename, repo.snapshot()) //nolint:wrapcheck // callers add the context
}
