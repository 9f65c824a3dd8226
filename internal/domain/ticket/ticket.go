package ticket

import (
	"errors"
	"strings"
)

// Category is one entry of the fixed ticket catalog. Prices are in naira.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Description string `json:"description,omitempty"`
}

const (
	NameRavers    = "RAVERS"
	NameGengOfSix = "GENG OF SIX"
)

var ErrUnknownType = errors.New("unknown ticket type")

// the catalog is fixed at compile time, there is no storage behind it
var catalog = []Category{
	{
		ID:          "ravers",
		Name:        NameRavers,
		Price:       20000,
		Description: "1 pass",
	},
	{
		ID:          "geng-of-six",
		Name:        NameGengOfSix,
		Price:       100000,
		Description: "6 pass",
	},
}

// Catalog returns a copy so callers cannot mutate the fixed categories.
func Catalog() []Category {
	out := make([]Category, len(catalog))
	copy(out, catalog)
	return out
}

// CategoryByName resolves an exact catalog name (e.g. "RAVERS").
func CategoryByName(name string) (Category, error) {
	for _, c := range catalog {
		if c.Name == name {
			return c, nil
		}
	}

	return Category{}, ErrUnknownType
}

// Slug lower-kebabs a category name: "GENG OF SIX" -> "geng-of-six".
func Slug(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}

// CategoryFromPayment derives a category view from webhook data. The name
// must still be one of the known catalog names; the price comes from the
// charged amount (kobo) rather than the catalog, since the charge covers
// quantity * unit price.
func CategoryFromPayment(name string, amountMinorUnits int64) (Category, error) {
	known, err := CategoryByName(name)

	if err != nil {
		return Category{}, err
	}

	return Category{
		ID:          Slug(name),
		Name:        name,
		Price:       amountMinorUnits / 100,
		Description: known.Description,
	}, nil
}
