package inventory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"reflect"
	"time"

	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/go-arrower/warehouse/alog"
	"github.com/go-arrower/warehouse/app"
	"github.com/go-arrower/warehouse/repository"
)

// ErrQuantityOverflow is returned, if increasing the stock would exceed the largest possible quantity.
var ErrQuantityOverflow = errors.New("quantity overflow")

// MaxQuantity is the largest quantity an item can have.
const MaxQuantity = math.MaxInt32

const (
	electronicsFile = "electronics.json"
	groceriesFile   = "groceries.json"
)

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger all operations report to.
func WithLogger(logger alog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(m *Manager) {
		m.tracerProvider = tp
	}
}

func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(m *Manager) {
		m.meterProvider = mp
	}
}

// WithStore persists both repositories into store.
// Existing data in the store is loaded when the Manager is created.
func WithStore(store repository.Store) Option {
	return func(m *Manager) {
		m.store = store
	}
}

// WithClock sets the source of the current time, used by Seed for the expiry dates.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// NewManager returns a Manager with empty repositories,
// or with the repositories loaded from the store given via WithStore.
//
// Like repository.NewMemoryRepository it panics, if the stored data is corrupt.
// Use LoadManager to handle that case as an error.
func NewManager(opts ...Option) *Manager {
	m, err := LoadManager(opts...)
	if err != nil {
		panic("could not create manager: " + err.Error())
	}

	return m
}

// LoadManager works like NewManager, but returns an error wrapping repository.ErrLoad,
// if the stored data of a category can not be loaded.
func LoadManager(opts ...Option) (*Manager, error) {
	m := &Manager{
		logger:         alog.NewNoop(),
		tracerProvider: tracenoop.NewTracerProvider(),
		meterProvider:  metricnoop.NewMeterProvider(),
		now:            time.Now,
	}

	for _, opt := range opts {
		opt(m)
	}

	var electronicOpts, groceryOpts []repository.Option
	if m.store != nil {
		electronicOpts = append(electronicOpts,
			repository.WithStore(m.store), repository.WithStoreFilename(electronicsFile))
		groceryOpts = append(groceryOpts,
			repository.WithStore(m.store), repository.WithStoreFilename(groceriesFile))
	}

	electronics, err := repository.LoadMemoryRepository[*Electronic](electronicOpts...)
	if err != nil {
		return nil, fmt.Errorf("could not load electronics: %w", err)
	}

	groceries, err := repository.LoadMemoryRepository[*Grocery](groceryOpts...)
	if err != nil {
		return nil, fmt.Errorf("could not load groceries: %w", err)
	}

	m.electronics = electronics
	m.groceries = groceries

	return m, nil
}

// Manager owns one repository per category.
// The repositories are independent of each other.
type Manager struct {
	electronics *repository.MemoryRepository[*Electronic]
	groceries   *repository.MemoryRepository[*Grocery]

	logger         alog.Logger
	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider
	store          repository.Store
	now            func() time.Time
}

func (m *Manager) Electronics() repository.Repository[*Electronic] { //nolint:ireturn // the category is chosen by type
	return m.electronics
}

func (m *Manager) Groceries() repository.Repository[*Grocery] { //nolint:ireturn // the category is chosen by type
	return m.groceries
}

// Report is the outcome of a single operation of the Manager.
// Err is nil on success. Message is the line to show to a user in both cases.
type Report struct {
	Operation string
	Category  string
	ID        int
	Err       error
	Message   string
}

func (r Report) OK() bool {
	return r.Err == nil
}

func (r Report) String() string {
	return r.Message
}

// Seed adds the sample items to both repositories.
// Items are added one by one, so an id that already exists stops the seeding
// with repository.ErrAlreadyExists.
func (m *Manager) Seed(ctx context.Context) error {
	today := m.now()

	electronics := []struct {
		id       int
		name     string
		quantity int32
		brand    string
		warranty int
	}{
		{1, "Laptop", 10, "Dell", 24},
		{2, "Phone", 25, "Samsung", 12},
	}

	groceries := []struct {
		id       int
		name     string
		quantity int32
		expiry   time.Time
	}{
		{1, "Rice (5kg)", 40, today.AddDate(0, 12, 0)},
		{2, "Milk", 15, today.AddDate(0, 0, 20)},
	}

	for _, e := range electronics {
		item, err := NewElectronic(e.id, e.name, e.quantity, e.brand, e.warranty)
		if err != nil {
			return fmt.Errorf("could not seed electronics: %w", err)
		}

		if err := m.electronics.AddItem(ctx, item); err != nil {
			return fmt.Errorf("could not seed electronics: %w", err)
		}
	}

	for _, g := range groceries {
		item, err := NewGrocery(g.id, g.name, g.quantity, g.expiry)
		if err != nil {
			return fmt.Errorf("could not seed groceries: %w", err)
		}

		if err := m.groceries.AddItem(ctx, item); err != nil {
			return fmt.Errorf("could not seed groceries: %w", err)
		}
	}

	m.logger.InfoContext(ctx, "seeded sample data",
		slog.Int("electronics", len(electronics)),
		slog.Int("groceries", len(groceries)),
	)

	return nil
}

// IsEmpty returns true, if no category holds any item.
func (m *Manager) IsEmpty(ctx context.Context) (bool, error) {
	e, err := m.electronics.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("could not count electronics: %w", err)
	}

	g, err := m.groceries.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("could not count groceries: %w", err)
	}

	return e+g == 0, nil
}

type (
	printAllItemsQuery struct {
		Category string
	}

	increaseStockCommand struct {
		Category string
		ID       int
		Delta    int32
	}

	removeItemCommand struct {
		Category string
		ID       int
	}
)

// PrintAllItems writes one line per item of repo to w, ordered by id.
func PrintAllItems[T repository.Item[T]](ctx context.Context, m *Manager, w io.Writer, repo repository.Repository[T]) Report {
	report := Report{Operation: "PrintAllItems", Category: Category[T]()}

	query := app.NewInstrumentedQuery[printAllItemsQuery, int](m.tracerProvider, m.meterProvider, m.logger,
		app.QueryFunc[printAllItemsQuery, int](func(ctx context.Context, _ printAllItemsQuery) (int, error) {
			items, err := repo.GetAllItems(ctx)
			if err != nil {
				return 0, err //nolint:wrapcheck // reported as is
			}

			for _, item := range items {
				if _, err := fmt.Fprintln(w, item); err != nil {
					return 0, fmt.Errorf("could not print item %d: %w", item.ID(), err)
				}
			}

			return len(items), nil
		}),
	)

	n, err := query.H(ctx, printAllItemsQuery{Category: report.Category})
	if err != nil {
		return m.failed(ctx, report, err)
	}

	report.Message = fmt.Sprintf("Printed %d items", n)

	return report
}

// IncreaseStock adds delta to the quantity of the item with id.
// The quantity is read and written in one step, so concurrent calls do not lose an update.
// If the new quantity exceeds MaxQuantity the report holds ErrQuantityOverflow,
// if it is negative repository.ErrInvalidQuantity. In both cases the item is unchanged.
func IncreaseStock[T repository.Item[T]](
	ctx context.Context,
	m *Manager,
	repo repository.Repository[T],
	id int,
	delta int32,
) Report {
	report := Report{Operation: "IncreaseStock", Category: Category[T](), ID: id}

	var before, after int32

	cmd := app.NewInstrumentedCommand[increaseStockCommand](m.tracerProvider, m.meterProvider, m.logger,
		app.CommandFunc[increaseStockCommand](func(ctx context.Context, c increaseStockCommand) error {
			return repo.AdjustQuantity(ctx, c.ID, func(current int32) (int32, error) { //nolint:wrapcheck // reported as is
				sum := int64(current) + int64(c.Delta)
				if sum > MaxQuantity {
					return 0, fmt.Errorf("%w: %d + %d exceeds %d", ErrQuantityOverflow, current, c.Delta, MaxQuantity)
				}

				before, after = current, int32(sum)

				return after, nil
			})
		}),
	)

	err := cmd.H(ctx, increaseStockCommand{Category: report.Category, ID: id, Delta: delta})
	if err != nil {
		return m.failed(ctx, report, err)
	}

	report.Message = fmt.Sprintf("Stock updated for #%d: %d -> %d", id, before, after)
	m.logger.DebugContext(ctx, report.Message, slog.String("category", report.Category))

	return report
}

// RemoveItemByID removes the item with id from repo.
func RemoveItemByID[T repository.Item[T]](ctx context.Context, m *Manager, repo repository.Repository[T], id int) Report {
	report := Report{Operation: "RemoveItem", Category: Category[T](), ID: id}

	cmd := app.NewInstrumentedCommand[removeItemCommand](m.tracerProvider, m.meterProvider, m.logger,
		app.CommandFunc[removeItemCommand](func(ctx context.Context, c removeItemCommand) error {
			return repo.RemoveItem(ctx, c.ID) //nolint:wrapcheck // reported as is
		}),
	)

	if err := cmd.H(ctx, removeItemCommand{Category: report.Category, ID: id}); err != nil {
		return m.failed(ctx, report, err)
	}

	report.Message = fmt.Sprintf("Removed item #%d", id)
	m.logger.DebugContext(ctx, report.Message, slog.String("category", report.Category))

	return report
}

func (m *Manager) failed(ctx context.Context, report Report, err error) Report {
	report.Err = err
	report.Message = fmt.Sprintf("%s error: %v", report.Operation, err)

	m.logger.DebugContext(ctx, "operation failed",
		slog.String("operation", report.Operation),
		slog.String("category", report.Category),
		slog.Int("id", report.ID),
		alog.Error(err),
	)

	return report
}

// Category returns the label of the category T, e.g. Electronic.
// It is only used for display, never to decide on behaviour.
func Category[T any]() string {
	t := reflect.TypeFor[T]()
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	return t.Name()
}
