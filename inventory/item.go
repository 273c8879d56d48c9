package inventory

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/go-arrower/warehouse/repository"
)

// ErrInvalidItem is returned, if an item can not be constructed or decoded from the given input.
var ErrInvalidItem = errors.New("invalid item")

// dateLayout is the format of the expiry date, both for display and for JSON.
const dateLayout = time.DateOnly

var validate = validator.New()

var (
	_ repository.Item[*Electronic] = (*Electronic)(nil)
	_ repository.Item[*Grocery]    = (*Grocery)(nil)
)

// Electronic is an item of the electronics category.
// Only the quantity can change after construction.
type Electronic struct {
	id             int
	name           string
	quantity       int32
	brand          string
	warrantyMonths int
}

// electronicRecord is the validated and serialised form of an Electronic.
type electronicRecord struct {
	ID             int    `json:"id"`
	Name           string `json:"name"           validate:"required"`
	Quantity       int32  `json:"quantity"       validate:"gte=0"`
	Brand          string `json:"brand"          validate:"required"`
	WarrantyMonths int    `json:"warrantyMonths" validate:"gte=0"`
}

// NewElectronic returns a new Electronic.
// The name and the brand are required, quantity and warranty can not be negative.
func NewElectronic(id int, name string, quantity int32, brand string, warrantyMonths int) (*Electronic, error) {
	rec := electronicRecord{
		ID:             id,
		Name:           name,
		Quantity:       quantity,
		Brand:          brand,
		WarrantyMonths: warrantyMonths,
	}

	if err := validateRecord(rec); err != nil {
		return nil, err
	}

	return rec.toElectronic(), nil
}

func (r electronicRecord) toElectronic() *Electronic {
	return &Electronic{
		id:             r.ID,
		name:           r.Name,
		quantity:       r.Quantity,
		brand:          r.Brand,
		warrantyMonths: r.WarrantyMonths,
	}
}

func (e *Electronic) ID() int                    { return e.id }
func (e *Electronic) Name() string               { return e.name }
func (e *Electronic) Quantity() int32            { return e.quantity }
func (e *Electronic) SetQuantity(quantity int32) { e.quantity = quantity }
func (e *Electronic) Brand() string              { return e.brand }
func (e *Electronic) WarrantyMonths() int        { return e.warrantyMonths }

func (e *Electronic) Clone() *Electronic {
	c := *e
	return &c
}

func (e *Electronic) String() string {
	return fmt.Sprintf("[Electronic] #%d %s (%s) Qty=%d, Warranty=%dm", e.id, e.name, e.brand, e.quantity, e.warrantyMonths)
}

func (e *Electronic) MarshalJSON() ([]byte, error) {
	return json.Marshal(electronicRecord{
		ID:             e.id,
		Name:           e.name,
		Quantity:       e.quantity,
		Brand:          e.brand,
		WarrantyMonths: e.warrantyMonths,
	})
}

func (e *Electronic) UnmarshalJSON(data []byte) error {
	var rec electronicRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidItem, err)
	}

	if err := validateRecord(rec); err != nil {
		return err
	}

	*e = *rec.toElectronic()

	return nil
}

// Grocery is an item of the groceries category.
// Only the quantity can change after construction.
type Grocery struct {
	id         int
	name       string
	quantity   int32
	expiryDate time.Time
}

// groceryRecord is the validated and serialised form of a Grocery.
type groceryRecord struct {
	ID         int    `json:"id"`
	Name       string `json:"name"       validate:"required"`
	Quantity   int32  `json:"quantity"   validate:"gte=0"`
	ExpiryDate string `json:"expiryDate" validate:"required,datetime=2006-01-02"`
}

// NewGrocery returns a new Grocery.
// Only the date of expiryDate is kept, as midnight UTC.
func NewGrocery(id int, name string, quantity int32, expiryDate time.Time) (*Grocery, error) {
	rec := groceryRecord{
		ID:       id,
		Name:     name,
		Quantity: quantity,
	}
	if !expiryDate.IsZero() {
		rec.ExpiryDate = expiryDate.Format(dateLayout)
	}

	if err := validateRecord(rec); err != nil {
		return nil, err
	}

	return rec.toGrocery()
}

func (r groceryRecord) toGrocery() (*Grocery, error) {
	expiry, err := time.Parse(dateLayout, r.ExpiryDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidItem, err)
	}

	return &Grocery{
		id:         r.ID,
		name:       r.Name,
		quantity:   r.Quantity,
		expiryDate: expiry,
	}, nil
}

func (g *Grocery) ID() int                    { return g.id }
func (g *Grocery) Name() string               { return g.name }
func (g *Grocery) Quantity() int32            { return g.quantity }
func (g *Grocery) SetQuantity(quantity int32) { g.quantity = quantity }
func (g *Grocery) ExpiryDate() time.Time      { return g.expiryDate }

func (g *Grocery) Clone() *Grocery {
	c := *g
	return &c
}

func (g *Grocery) String() string {
	return fmt.Sprintf("[Grocery]   #%d %s Qty=%d, Expires=%s", g.id, g.name, g.quantity, g.expiryDate.Format(dateLayout))
}

func (g *Grocery) MarshalJSON() ([]byte, error) {
	return json.Marshal(groceryRecord{
		ID:         g.id,
		Name:       g.name,
		Quantity:   g.quantity,
		ExpiryDate: g.expiryDate.Format(dateLayout),
	})
}

func (g *Grocery) UnmarshalJSON(data []byte) error {
	var rec groceryRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidItem, err)
	}

	if err := validateRecord(rec); err != nil {
		return err
	}

	grocery, err := rec.toGrocery()
	if err != nil {
		return err
	}

	*g = *grocery

	return nil
}

// validateRecord wraps every failure in ErrInvalidItem.
// A negative quantity additionally wraps repository.ErrInvalidQuantity,
// so callers can treat it the same way as a failing UpdateQuantity.
func validateRecord(rec any) error {
	err := validate.Struct(rec)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrInvalidItem, err)
	}

	for _, fe := range fieldErrs {
		if fe.Field() == "Quantity" {
			return fmt.Errorf("%w: %w: %v", ErrInvalidItem, repository.ErrInvalidQuantity, err)
		}
	}

	return fmt.Errorf("%w: %v", ErrInvalidItem, err)
}
