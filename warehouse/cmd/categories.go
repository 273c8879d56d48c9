package cmd

import (
	"context"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/go-arrower/warehouse/inventory"
	"github.com/go-arrower/warehouse/repository"
)

// category bundles the manager operations for one category of items.
// The functions close over the item type, so commands can choose a category by its name.
type category struct {
	title    string
	print    func(ctx context.Context, m *inventory.Manager, w io.Writer) inventory.Report
	increase func(ctx context.Context, m *inventory.Manager, id int, delta int32) inventory.Report
	remove   func(ctx context.Context, m *inventory.Manager, id int) inventory.Report
}

func newCategory[T repository.Item[T]](name string, repo func(*inventory.Manager) repository.Repository[T]) category {
	return category{
		title: cases.Title(language.English).String(name),
		print: func(ctx context.Context, m *inventory.Manager, w io.Writer) inventory.Report {
			return inventory.PrintAllItems(ctx, m, w, repo(m))
		},
		increase: func(ctx context.Context, m *inventory.Manager, id int, delta int32) inventory.Report {
			return inventory.IncreaseStock(ctx, m, repo(m), id, delta)
		},
		remove: func(ctx context.Context, m *inventory.Manager, id int) inventory.Report {
			return inventory.RemoveItemByID(ctx, m, repo(m), id)
		},
	}
}

var categories = map[string]category{
	"groceries":   newCategory("groceries", (*inventory.Manager).Groceries),
	"electronics": newCategory("electronics", (*inventory.Manager).Electronics),
}

// categoryOrder is the order in which all categories are listed.
var categoryOrder = []string{"groceries", "electronics"}

func lookupCategory(name string) (category, error) {
	c, ok := categories[strings.ToLower(name)]
	if !ok {
		names := slices.Sorted(maps.Keys(categories))
		return category{}, fmt.Errorf("unknown category %q, use one of: %s", name, strings.Join(names, ", ")) //nolint:err113 // accept dynamic error
	}

	return c, nil
}
