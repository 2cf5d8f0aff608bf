package engine

import (
	"github.com/shopspring/decimal"

	"github.com/efreitasn/bookquote/internal/domain"
)

// MatchResult holds the outcome of walking one side of a book.
type MatchResult struct {
	Filled       decimal.Decimal
	AveragePrice *decimal.Decimal // nil when nothing was filled
}

// Match walks price levels best-price-first, consuming liquidity until
// amount is filled or the levels are exhausted. The caller must supply
// levels already sorted best-first (asks ascending, bids descending).
//
// Exhausting the book is not an error: the result reports whatever was
// filled. The average price is the quantity-weighted mean of consumed
// levels, sum(size*price) / sum(size). When nothing fills, whether from
// an empty book or levels all sized at zero, AveragePrice is nil;
// callers must treat that as no liquidity, not as a price.
func Match(levels []domain.PriceLevel, amount decimal.Decimal) MatchResult {
	remaining := amount
	filled := decimal.Zero
	cost := decimal.Zero

	for _, lvl := range levels {
		if !remaining.IsPositive() {
			break
		}
		take := lvl.Size
		if take.GreaterThanOrEqual(remaining) {
			take = remaining
		}
		cost = cost.Add(take.Mul(lvl.Price))
		filled = filled.Add(take)
		remaining = remaining.Sub(take)
	}

	result := MatchResult{Filled: filled}
	if filled.IsPositive() {
		avg := cost.Div(filled)
		result.AveragePrice = &avg
	}
	return result
}
