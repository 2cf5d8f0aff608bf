package domain

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

// fakePairSource is a PairSource with a scriptable product list and a
// call counter.
type fakePairSource struct {
	calls    atomic.Int64
	products []string
	err      error
}

func (f *fakePairSource) ListProducts(ctx context.Context) ([]string, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return f.products, nil
}

func TestPairRegistry_Valid(t *testing.T) {
	src := &fakePairSource{products: []string{"BTC-USD", "ETH-USD"}}
	reg := NewPairRegistry(src)

	tests := []struct {
		id   string
		want bool
	}{
		{"BTC-USD", true},
		{"ETH-USD", true},
		{"USD-BTC", false},
		{"", false},
		{"banana", false},
	}

	for _, tt := range tests {
		got, err := reg.Valid(context.Background(), tt.id)
		if err != nil {
			t.Fatalf("Valid(%q) error: %v", tt.id, err)
		}
		if got != tt.want {
			t.Errorf("Valid(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestPairRegistry_FetchesOnce(t *testing.T) {
	src := &fakePairSource{products: []string{"BTC-USD"}}
	reg := NewPairRegistry(src)

	for i := 0; i < 5; i++ {
		if _, err := reg.Valid(context.Background(), "BTC-USD"); err != nil {
			t.Fatalf("Valid error: %v", err)
		}
	}

	if got := src.calls.Load(); got != 1 {
		t.Errorf("source called %d times, want 1", got)
	}
}

func TestPairRegistry_RetriesAfterFailure(t *testing.T) {
	src := &fakePairSource{err: errors.New("exchange down")}
	reg := NewPairRegistry(src)

	if _, err := reg.Valid(context.Background(), "BTC-USD"); err == nil {
		t.Fatal("expected error from failed population")
	}

	// A failed fetch must leave the registry unpopulated so the next
	// lookup tries again.
	src.err = nil
	src.products = []string{"BTC-USD"}

	ok, err := reg.Valid(context.Background(), "BTC-USD")
	if err != nil {
		t.Fatalf("Valid error after recovery: %v", err)
	}
	if !ok {
		t.Error("Valid = false after recovery, want true")
	}
	if got := src.calls.Load(); got != 2 {
		t.Errorf("source called %d times, want 2", got)
	}
}

func TestPairRegistry_ConcurrentFirstUse(t *testing.T) {
	src := &fakePairSource{products: []string{"BTC-USD"}}
	reg := NewPairRegistry(src)

	const goroutines = 32
	var wg sync.WaitGroup
	errs := make(chan error, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := reg.Valid(context.Background(), "BTC-USD")
			if err != nil {
				errs <- err
				return
			}
			if !ok {
				errs <- errors.New("Valid = false, want true")
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
	if got := src.calls.Load(); got != 1 {
		t.Errorf("source called %d times, want 1", got)
	}
}
