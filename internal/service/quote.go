package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/efreitasn/bookquote/internal/domain"
	"github.com/efreitasn/bookquote/internal/engine"
)

// Exchange is the market-data collaborator the quote service consumes.
type Exchange interface {
	GetOrderBook(ctx context.Context, productID string) (domain.OrderBook, error)
}

// QuoteRequest carries the raw request fields as received from the
// caller. Validation happens inside GetQuote, before any collaborator
// call.
type QuoteRequest struct {
	Action        string
	BaseCurrency  string
	QuoteCurrency string
	Amount        string
}

// QuoteResult is the outcome of a quote computation. AveragePrice is
// nil when no liquidity was available to fill any of the amount;
// Currency is the settlement currency the average price is denominated
// in.
type QuoteResult struct {
	Filled       decimal.Decimal
	AveragePrice *decimal.Decimal
	Currency     string
}

// QuoteService answers "what average price fills amount X of side S for
// pair (base, quote)" against fresh order-book snapshots.
type QuoteService struct {
	pairs    *domain.PairRegistry
	exchange Exchange
}

// NewQuoteService creates a QuoteService with the given dependencies.
func NewQuoteService(pairs *domain.PairRegistry, exchange Exchange) *QuoteService {
	return &QuoteService{
		pairs:    pairs,
		exchange: exchange,
	}
}

// GetQuote validates the request, normalizes the pair against the set
// of tradable products, fetches the book snapshot for the effective
// pair (inverting it when the pair is tradable only in the opposite
// orientation), and walks the side's levels to fill the amount.
//
// Errors are *domain.ValidationError for malformed input,
// *domain.InvalidPairError when neither orientation is tradable, and
// *domain.UpstreamError when market data is unavailable.
func (s *QuoteService) GetQuote(ctx context.Context, req QuoteRequest) (*QuoteResult, error) {
	side, err := domain.ParseSide(req.Action)
	if err != nil {
		return nil, err
	}

	pair, err := domain.NewTradePair(req.BaseCurrency, req.QuoteCurrency)
	if err != nil {
		return nil, err
	}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		return nil, err
	}

	effective, inverted, err := s.normalize(ctx, pair)
	if err != nil {
		return nil, err
	}

	book, err := s.exchange.GetOrderBook(ctx, effective.ID())
	if err != nil {
		return nil, err
	}
	if inverted {
		book = engine.Invert(book)
	}

	matched := engine.Match(book.SideLevels(side), amount)

	// The cost of the fill is denominated in the effective quote
	// currency; when the request was inverted, that is the effective
	// base from the caller's point of view.
	currency := effective.Quote
	if inverted {
		currency = effective.Base
	}

	return &QuoteResult{
		Filled:       matched.Filled,
		AveragePrice: matched.AveragePrice,
		Currency:     currency,
	}, nil
}

// normalize resolves the requested pair to the orientation the exchange
// actually trades. The pair as given wins; otherwise the swapped pair
// is tried and flagged as inverted.
func (s *QuoteService) normalize(ctx context.Context, pair domain.TradePair) (domain.TradePair, bool, error) {
	ok, err := s.pairs.Valid(ctx, pair.ID())
	if err != nil {
		return domain.TradePair{}, false, err
	}
	if ok {
		return pair, false, nil
	}

	swapped := pair.Swapped()
	ok, err = s.pairs.Valid(ctx, swapped.ID())
	if err != nil {
		return domain.TradePair{}, false, err
	}
	if ok {
		return swapped, true, nil
	}

	return domain.TradePair{}, false, &domain.InvalidPairError{Base: pair.Base, Quote: pair.Quote}
}

func parseAmount(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Decimal{}, &domain.ValidationError{Message: "amount is required"}
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, &domain.ValidationError{Message: "amount must be a decimal number"}
	}
	if !amount.IsPositive() {
		return decimal.Decimal{}, &domain.ValidationError{Message: "amount must be greater than 0"}
	}
	return amount, nil
}
