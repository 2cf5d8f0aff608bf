package domain

import "github.com/google/btree"

// bidLess defines ordering for the bid side: price descending, so
// iterating in order visits the best bid (highest price) first.
func bidLess(a, b PriceLevel) bool {
	return a.Price.GreaterThan(b.Price)
}

// askLess defines ordering for the ask side: price ascending, so
// iterating in order visits the best ask (lowest price) first.
func askLess(a, b PriceLevel) bool {
	return a.Price.LessThan(b.Price)
}

// OrderBook is an immutable snapshot of both sides of the book for a
// single trade pair. Bids are sorted descending by price and asks
// ascending, regardless of the order the levels were supplied in.
// Snapshots are created fresh per request and never mutated.
type OrderBook struct {
	Bids []PriceLevel
	Asks []PriceLevel
}

// NewOrderBook builds a snapshot from the given levels, normalizing the
// ordering of each side. Levels sharing a price are merged into a
// single level with their sizes summed.
func NewOrderBook(bids, asks []PriceLevel) OrderBook {
	return OrderBook{
		Bids: sortLevels(bids, bidLess),
		Asks: sortLevels(asks, askLess),
	}
}

// SideLevels returns the levels a taker on the given side consumes:
// buys walk the asks, sells walk the bids.
func (b OrderBook) SideLevels(s Side) []PriceLevel {
	if s == SideBuy {
		return b.Asks
	}
	return b.Bids
}

// sortLevels orders levels through a B-tree keyed by price.
func sortLevels(levels []PriceLevel, less btree.LessFunc[PriceLevel]) []PriceLevel {
	const degree = 32
	tree := btree.NewG[PriceLevel](degree, less)
	for _, lvl := range levels {
		if existing, ok := tree.Get(lvl); ok {
			lvl.Size = lvl.Size.Add(existing.Size)
		}
		tree.ReplaceOrInsert(lvl)
	}

	sorted := make([]PriceLevel, 0, tree.Len())
	tree.Ascend(func(lvl PriceLevel) bool {
		sorted = append(sorted, lvl)
		return true
	})
	return sorted
}
