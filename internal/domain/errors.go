package domain

import "fmt"

// ValidationError represents a request validation failure.
// The handler layer maps these to HTTP 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// InvalidPairError means neither (base, quote) nor (quote, base) is a
// tradable pair on the upstream exchange.
type InvalidPairError struct {
	Base  string
	Quote string
}

func (e *InvalidPairError) Error() string {
	return fmt.Sprintf("invalid base and/or quote currencies %s and %s", e.Base, e.Quote)
}

// UpstreamError wraps a failed market-data call. The handler layer maps
// these to a 502 rather than the 400 used for validation failures.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("market data: %s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
