package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSuite verifies that a Repository implementation keeps the invariants of a Repository:
// ids are unique, failing calls do not change anything and snapshots are independent.
//
// newRepo has to return a new and empty Repository on every call.
// newItem has to return a new item with the given id and quantity on every call,
// other attributes are up to the caller.
func TestSuite[T Item[T]](
	t *testing.T,
	newRepo func() Repository[T],
	newItem func(id int, quantity int32) T,
) { //nolint:tparallel // t.Parallel can only be called ones! The caller decides
	t.Helper()

	if newRepo == nil {
		t.Fatal("repository constructor is nil")
	}

	if newItem == nil {
		t.Fatal("item constructor is nil")
	}

	ctx := context.Background()

	t.Run("new", func(t *testing.T) {
		t.Parallel()

		repo := newRepo()
		require.NotNil(t, repo)

		c, err := repo.Count(ctx)
		assert.NoError(t, err)
		assert.Equal(t, 0, c, "new repository should be empty")
	})

	t.Run("AddItem", func(t *testing.T) {
		t.Parallel()

		t.Run("add", func(t *testing.T) {
			t.Parallel()

			repo := newRepo()
			item := newItem(1, 10)

			err := repo.AddItem(ctx, item)
			assert.NoError(t, err)

			got, err := repo.GetItemByID(ctx, 1)
			assert.NoError(t, err)
			assert.Equal(t, item.Name(), got.Name())
			assert.Equal(t, int32(10), got.Quantity())
		})

		t.Run("same id again", func(t *testing.T) {
			t.Parallel()

			repo := newRepo()
			first := newItem(1, 10)
			second := newItem(1, 5)

			err := repo.AddItem(ctx, first)
			assert.NoError(t, err)

			err = repo.AddItem(ctx, second)
			assert.ErrorIs(t, err, ErrAlreadyExists)

			got, err := repo.GetItemByID(ctx, 1)
			assert.NoError(t, err)
			assert.Equal(t, first.Name(), got.Name(), "existing item must be untouched")
			assert.Equal(t, int32(10), got.Quantity(), "existing item must be untouched")

			c, _ := repo.Count(ctx)
			assert.Equal(t, 1, c)
		})
	})

	t.Run("GetItemByID", func(t *testing.T) {
		t.Parallel()

		t.Run("unknown id", func(t *testing.T) {
			t.Parallel()

			repo := newRepo()
			_ = repo.AddItem(ctx, newItem(1, 10))

			got, err := repo.GetItemByID(ctx, 999)
			assert.ErrorIs(t, err, ErrNotFound)
			assert.Empty(t, got)
		})
	})

	t.Run("RemoveItem", func(t *testing.T) {
		t.Parallel()

		t.Run("remove", func(t *testing.T) {
			t.Parallel()

			repo := newRepo()
			_ = repo.AddItem(ctx, newItem(1, 10))
			_ = repo.AddItem(ctx, newItem(2, 20))

			err := repo.RemoveItem(ctx, 1)
			assert.NoError(t, err)

			ex, _ := repo.Exists(ctx, 1)
			assert.False(t, ex)
			ex, _ = repo.Exists(ctx, 2)
			assert.True(t, ex)
		})

		t.Run("remove twice", func(t *testing.T) {
			t.Parallel()

			repo := newRepo()
			_ = repo.AddItem(ctx, newItem(1, 10))

			err := repo.RemoveItem(ctx, 1)
			assert.NoError(t, err)

			err = repo.RemoveItem(ctx, 1)
			assert.ErrorIs(t, err, ErrNotFound)
		})

		t.Run("unknown id", func(t *testing.T) {
			t.Parallel()

			repo := newRepo()
			_ = repo.AddItem(ctx, newItem(1, 10))
			before, _ := repo.GetAllItems(ctx)

			err := repo.RemoveItem(ctx, 999)
			assert.ErrorIs(t, err, ErrNotFound)

			after, _ := repo.GetAllItems(ctx)
			assert.ElementsMatch(t, before, after)
		})

		t.Run("remove and add again", func(t *testing.T) {
			t.Parallel()

			repo := newRepo()
			for id := 1; id <= 5; id++ {
				_ = repo.AddItem(ctx, newItem(id, int32(id*10)))
			}

			before, _ := repo.GetAllItems(ctx)
			item, err := repo.GetItemByID(ctx, 3)
			require.NoError(t, err)

			err = repo.RemoveItem(ctx, 3)
			assert.NoError(t, err)
			err = repo.AddItem(ctx, item)
			assert.NoError(t, err)

			after, _ := repo.GetAllItems(ctx)
			assert.ElementsMatch(t, before, after)
		})
	})

	t.Run("GetAllItems", func(t *testing.T) {
		t.Parallel()

		t.Run("empty", func(t *testing.T) {
			t.Parallel()

			repo := newRepo()

			all, err := repo.GetAllItems(ctx)
			assert.NoError(t, err)
			assert.NotNil(t, all)
			assert.Empty(t, all, "new repository should be empty")
		})

		t.Run("all", func(t *testing.T) {
			t.Parallel()

			repo := newRepo()
			_ = repo.AddItem(ctx, newItem(1, 10))
			_ = repo.AddItem(ctx, newItem(2, 20))

			all, err := repo.GetAllItems(ctx)
			assert.NoError(t, err)
			assert.Len(t, all, 2)
		})

		t.Run("same snapshot twice", func(t *testing.T) {
			t.Parallel()

			repo := newRepo()
			_ = repo.AddItem(ctx, newItem(1, 10))
			_ = repo.AddItem(ctx, newItem(2, 20))
			_ = repo.AddItem(ctx, newItem(3, 30))

			first, _ := repo.GetAllItems(ctx)
			second, _ := repo.GetAllItems(ctx)
			assert.ElementsMatch(t, first, second)
		})

		t.Run("snapshot is independent", func(t *testing.T) {
			t.Parallel()

			repo := newRepo()
			_ = repo.AddItem(ctx, newItem(1, 10))

			snapshot, _ := repo.GetAllItems(ctx)

			err := repo.UpdateQuantity(ctx, 1, 99)
			assert.NoError(t, err)
			_ = repo.AddItem(ctx, newItem(2, 20))

			require.Len(t, snapshot, 1)
			assert.Equal(t, int32(10), snapshot[0].Quantity(), "snapshot must not change")
		})
	})

	t.Run("UpdateQuantity", func(t *testing.T) {
		t.Parallel()

		t.Run("update", func(t *testing.T) {
			t.Parallel()

			repo := newRepo()
			_ = repo.AddItem(ctx, newItem(1, 10))

			err := repo.UpdateQuantity(ctx, 1, 0)
			assert.NoError(t, err)

			got, _ := repo.GetItemByID(ctx, 1)
			assert.Equal(t, int32(0), got.Quantity())
		})

		t.Run("negative quantity", func(t *testing.T) {
			t.Parallel()

			repo := newRepo()
			_ = repo.AddItem(ctx, newItem(2, 15))

			err := repo.UpdateQuantity(ctx, 2, -5)
			assert.ErrorIs(t, err, ErrInvalidQuantity)

			got, _ := repo.GetItemByID(ctx, 2)
			assert.Equal(t, int32(15), got.Quantity())
		})

		t.Run("unknown id", func(t *testing.T) {
			t.Parallel()

			repo := newRepo()
			_ = repo.AddItem(ctx, newItem(1, 10))
			before, _ := repo.GetAllItems(ctx)

			err := repo.UpdateQuantity(ctx, 999, 5)
			assert.ErrorIs(t, err, ErrNotFound)

			after, _ := repo.GetAllItems(ctx)
			assert.ElementsMatch(t, before, after)
		})

		t.Run("negative quantity is checked first", func(t *testing.T) {
			t.Parallel()

			repo := newRepo()

			err := repo.UpdateQuantity(ctx, 999, -1)
			assert.ErrorIs(t, err, ErrInvalidQuantity)
		})
	})

	t.Run("AdjustQuantity", func(t *testing.T) {
		t.Parallel()

		t.Run("adjust", func(t *testing.T) {
			t.Parallel()

			repo := newRepo()
			_ = repo.AddItem(ctx, newItem(1, 10))

			err := repo.AdjustQuantity(ctx, 1, func(current int32) (int32, error) {
				assert.Equal(t, int32(10), current)
				return current + 5, nil
			})
			assert.NoError(t, err)

			got, _ := repo.GetItemByID(ctx, 1)
			assert.Equal(t, int32(15), got.Quantity())
		})

		t.Run("error of fn", func(t *testing.T) {
			t.Parallel()

			errFn := errors.New("some-error")
			repo := newRepo()
			_ = repo.AddItem(ctx, newItem(1, 10))

			err := repo.AdjustQuantity(ctx, 1, func(_ int32) (int32, error) {
				return 100, errFn
			})
			assert.ErrorIs(t, err, errFn)

			got, _ := repo.GetItemByID(ctx, 1)
			assert.Equal(t, int32(10), got.Quantity())
		})

		t.Run("negative result", func(t *testing.T) {
			t.Parallel()

			repo := newRepo()
			_ = repo.AddItem(ctx, newItem(1, 10))

			err := repo.AdjustQuantity(ctx, 1, func(current int32) (int32, error) {
				return current - 11, nil
			})
			assert.ErrorIs(t, err, ErrInvalidQuantity)

			got, _ := repo.GetItemByID(ctx, 1)
			assert.Equal(t, int32(10), got.Quantity())
		})

		t.Run("unknown id", func(t *testing.T) {
			t.Parallel()

			repo := newRepo()

			err := repo.AdjustQuantity(ctx, 999, func(current int32) (int32, error) {
				assert.Fail(t, "fn must not be called for an unknown id")
				return current, nil
			})
			assert.ErrorIs(t, err, ErrNotFound)
		})
	})
}
