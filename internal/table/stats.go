package table

import (
	"github.com/shopspring/decimal"

	"boxoffice/internal/services"
)

// Mean returns the arithmetic mean of an int column, computed exactly.
func Mean(t *Table, name string) (decimal.Decimal, error) {
	values, err := t.Ints(name)
	if err != nil {
		return decimal.Zero, err
	}
	if len(values) == 0 {
		return decimal.Zero, services.Wrap(services.ErrSchema, stageTable, "mean", "column "+name+" has no rows", nil)
	}
	sum := decimal.Zero
	for _, v := range values {
		sum = sum.Add(decimal.NewFromInt(v))
	}
	return sum.Div(decimal.NewFromInt(int64(len(values)))), nil
}
