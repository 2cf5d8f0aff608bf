package domain

import "strings"

// Side indicates which way a quote request trades: buys consume asks,
// sells consume bids.
type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// ParseSide validates a raw side string from a request.
func ParseSide(s string) (Side, error) {
	switch Side(s) {
	case SideBuy, SideSell:
		return Side(s), nil
	}
	return "", &ValidationError{Message: "action must be one of buy or sell"}
}

// TradePair is a base/quote currency pair, identified on the upstream
// exchange by the string "BASE-QUOTE".
type TradePair struct {
	Base  string
	Quote string
}

// NewTradePair builds a pair from raw currency codes. Codes are
// case-insensitive and must be non-empty and alphabetic.
func NewTradePair(base, quote string) (TradePair, error) {
	b, err := normalizeCode("base_currency", base)
	if err != nil {
		return TradePair{}, err
	}
	q, err := normalizeCode("quote_currency", quote)
	if err != nil {
		return TradePair{}, err
	}
	return TradePair{Base: b, Quote: q}, nil
}

// Swapped returns the pair with base and quote exchanged.
func (p TradePair) Swapped() TradePair {
	return TradePair{Base: p.Quote, Quote: p.Base}
}

// ID returns the pair's product identifier, e.g. "BTC-USD".
func (p TradePair) ID() string {
	return p.Base + "-" + p.Quote
}

// normalizeCode uppercases a currency code and rejects empty or
// non-alphabetic input before it can reach a pair identifier.
func normalizeCode(field, code string) (string, error) {
	if code == "" {
		return "", &ValidationError{Message: field + " is required"}
	}
	upper := strings.ToUpper(code)
	for _, r := range upper {
		if r < 'A' || r > 'Z' {
			return "", &ValidationError{Message: field + " must contain only letters"}
		}
	}
	return upper, nil
}
