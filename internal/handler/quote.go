package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/efreitasn/bookquote/internal/domain"
	"github.com/efreitasn/bookquote/internal/metrics"
	"github.com/efreitasn/bookquote/internal/service"
)

// QuoteHandler handles HTTP requests for the quote endpoint.
type QuoteHandler struct {
	quoteSvc *service.QuoteService
	metrics  *metrics.Metrics
}

// NewQuoteHandler creates a new QuoteHandler.
func NewQuoteHandler(quoteSvc *service.QuoteService, m *metrics.Metrics) *QuoteHandler {
	return &QuoteHandler{quoteSvc: quoteSvc, metrics: m}
}

// amountField accepts an amount sent as either a JSON string or a JSON
// number, preserving the raw digits either way.
type amountField string

func (a *amountField) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*a = amountField(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*a = amountField(n.String())
	return nil
}

// quoteRequest is the JSON request body for POST /quote.
type quoteRequest struct {
	Action        string      `json:"action"`
	BaseCurrency  string      `json:"base_currency"`
	QuoteCurrency string      `json:"quote_currency"`
	Amount        amountField `json:"amount"`
}

// quoteResponse is the JSON response for POST /quote. Price is null
// when the book had no liquidity to fill any of the amount.
type quoteResponse struct {
	Total    string  `json:"total"`
	Price    *string `json:"price"`
	Currency string  `json:"currency"`
}

// GetQuote handles POST /quote.
func (h *QuoteHandler) GetQuote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := ParseJSON(r, &req); err != nil {
		h.metrics.CountQuote(sideLabel(req.Action), metrics.OutcomeInvalid)
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.quoteSvc.GetQuote(r.Context(), service.QuoteRequest{
		Action:        req.Action,
		BaseCurrency:  req.BaseCurrency,
		QuoteCurrency: req.QuoteCurrency,
		Amount:        string(req.Amount),
	})
	if err != nil {
		h.mapError(w, sideLabel(req.Action), err)
		return
	}

	h.metrics.CountQuote(sideLabel(req.Action), metrics.OutcomeOK)

	resp := quoteResponse{
		Total:    result.Filled.String(),
		Currency: result.Currency,
	}
	if result.AveragePrice != nil {
		price := result.AveragePrice.String()
		resp.Price = &price
	}

	WriteJSON(w, http.StatusOK, resp)
}

// mapError maps domain errors to HTTP responses for the quote endpoint.
func (h *QuoteHandler) mapError(w http.ResponseWriter, side string, err error) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		h.metrics.CountQuote(side, metrics.OutcomeInvalid)
		WriteError(w, http.StatusBadRequest, validationErr.Message)
		return
	}

	var pairErr *domain.InvalidPairError
	if errors.As(err, &pairErr) {
		h.metrics.CountQuote(side, metrics.OutcomeInvalidPair)
		WriteError(w, http.StatusBadRequest, pairErr.Error())
		return
	}

	var upstreamErr *domain.UpstreamError
	if errors.As(err, &upstreamErr) {
		h.metrics.CountQuote(side, metrics.OutcomeUpstreamError)
		WriteError(w, http.StatusBadGateway, "market data is currently unavailable")
		return
	}

	WriteError(w, http.StatusInternalServerError, "An unexpected error occurred")
}

// sideLabel bounds the metric label to known sides.
func sideLabel(action string) string {
	switch domain.Side(action) {
	case domain.SideBuy, domain.SideSell:
		return action
	}
	return "unknown"
}
