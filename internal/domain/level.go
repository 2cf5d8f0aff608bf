package domain

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// PriceLevel represents an aggregated quantity available at a single
// price point on one side of an order book.
type PriceLevel struct {
	Price decimal.Decimal
	Size  decimal.Decimal
}

// ParsePriceLevel converts a raw order-book tuple into a PriceLevel.
// Upstream levels arrive as [price, size, ...] arrays where price and
// size may be JSON strings or numbers; any fields past the first two
// (e.g. order counts) are ignored. Price must be positive and size
// non-negative.
func ParsePriceLevel(raw []any) (PriceLevel, error) {
	if len(raw) < 2 {
		return PriceLevel{}, fmt.Errorf("level must have price and size, got %d fields", len(raw))
	}

	price, err := parseDecimal(raw[0])
	if err != nil {
		return PriceLevel{}, fmt.Errorf("level price: %w", err)
	}
	size, err := parseDecimal(raw[1])
	if err != nil {
		return PriceLevel{}, fmt.Errorf("level size: %w", err)
	}

	if !price.IsPositive() {
		return PriceLevel{}, fmt.Errorf("level price must be positive, got %s", price)
	}
	if size.IsNegative() {
		return PriceLevel{}, fmt.Errorf("level size must be non-negative, got %s", size)
	}

	return PriceLevel{Price: price, Size: size}, nil
}

// parseDecimal converts a decoded JSON value into an exact decimal.
// String and json.Number inputs preserve full precision.
func parseDecimal(v any) (decimal.Decimal, error) {
	switch t := v.(type) {
	case string:
		return decimal.NewFromString(t)
	case json.Number:
		return decimal.NewFromString(t.String())
	case float64:
		return decimal.NewFromFloat(t), nil
	default:
		return decimal.Decimal{}, fmt.Errorf("unsupported value %v (%T)", v, v)
	}
}
