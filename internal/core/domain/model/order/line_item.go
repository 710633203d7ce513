package order

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// LineItem is one ordered product. Amounts are integer minor currency units.
// LineItem holds no references, so copying it yields an independent snapshot.
type LineItem struct {
	Name      string
	Type      string
	Quantity  int
	UnitPrice int64
}

func NewLineItem(name, itemType string, quantity int, unitPrice int64) (LineItem, error) {
	item := LineItem{
		Name:      strings.TrimSpace(name),
		Type:      strings.TrimSpace(itemType),
		Quantity:  quantity,
		UnitPrice: unitPrice,
	}
	if err := item.Validate(); err != nil {
		return LineItem{}, err
	}
	return item, nil
}

func (i LineItem) Validate() error {
	var nameErr, quantityErr, priceErr error
	if i.Name == "" {
		nameErr = errs.NewValueIsRequiredError("item name")
	}
	if i.Quantity <= 0 {
		quantityErr = errs.NewValueIsInvalidErrorWithCause("item quantity", fmt.Errorf("%d is not greater than 0", i.Quantity))
	}
	if i.UnitPrice < 0 {
		priceErr = errs.NewValueIsInvalidErrorWithCause("item unit price", fmt.Errorf("%d is negative", i.UnitPrice))
	}
	return errors.Join(nameErr, quantityErr, priceErr)
}

func (i LineItem) Subtotal() int64 {
	return int64(i.Quantity) * i.UnitPrice
}

// SumItems returns the product amount of the given items.
func SumItems(items []LineItem) int64 {
	var sum int64
	for _, item := range items {
		sum += item.Subtotal()
	}
	return sum
}

// CloneItems returns a copy that shares no backing array with items.
func CloneItems(items []LineItem) []LineItem {
	if items == nil {
		return nil
	}
	out := make([]LineItem, len(items))
	copy(out, items)
	return out
}
