package engine

import (
	"github.com/shopspring/decimal"

	"github.com/efreitasn/bookquote/internal/domain"
)

var one = decimal.NewFromInt(1)

// Invert re-expresses a book quoted for pair (A, B) as the equivalent
// book for pair (B, A). Each level {price, size} becomes
// {1/price, size*price}: 5 A at 4000 B/A is 20000 B at 1/4000 A/B.
// The inverted bids come from the original asks and vice versa, since
// buying A priced in B is selling B priced in A.
//
// The reciprocal transform reverses price ordering within a side, so
// the result is rebuilt through NewOrderBook to re-sort both sides.
// The input is not mutated.
func Invert(book domain.OrderBook) domain.OrderBook {
	return domain.NewOrderBook(invertLevels(book.Asks), invertLevels(book.Bids))
}

func invertLevels(levels []domain.PriceLevel) []domain.PriceLevel {
	out := make([]domain.PriceLevel, len(levels))
	for i, lvl := range levels {
		out[i] = domain.PriceLevel{
			Price: one.Div(lvl.Price),
			Size:  lvl.Size.Mul(lvl.Price),
		}
	}
	return out
}
