// Package summary computes the point-of-sale overview served to the console
// from an in-memory ledger of sales and stock levels.
package summary

import (
	"sync"
	"time"

	"github.com/dmitrijs2005/storeconsole/internal/api"
)

// Sale is a completed transaction. Amount is in minor currency units.
type Sale struct {
	At     time.Time
	Amount int64
}

type Product struct {
	SKU          string
	Name         string
	OnHand       int
	ReorderLevel int
}

// Ledger is safe for concurrent use.
type Ledger struct {
	currency string
	now      func() time.Time

	mu       sync.RWMutex
	sales    []Sale
	products []Product
}

func NewLedger(currency string, now func() time.Time) *Ledger {
	if now == nil {
		now = time.Now
	}
	return &Ledger{currency: currency, now: now}
}

// NewSampleLedger returns a ledger filled with a fixed day of trading: the
// same sales at the same times of day and the same stock, whatever the date.
func NewSampleLedger(now func() time.Time) *Ledger {
	l := NewLedger("USD", now)
	day := startOfDay(l.now())

	for _, s := range []struct {
		offset time.Duration
		amount int64
	}{
		{-16 * time.Hour, 2450},
		{-14 * time.Hour, 1899},
		{8*time.Hour + 5*time.Minute, 1250},
		{9*time.Hour + 40*time.Minute, 4599},
		{11*time.Hour + 15*time.Minute, 899},
		{12*time.Hour + 30*time.Minute, 3275},
		{14*time.Hour + 10*time.Minute, 15600},
		{16*time.Hour + 45*time.Minute, 2199},
		{19*time.Hour + 20*time.Minute, 6420},
	} {
		l.RecordSale(Sale{At: day.Add(s.offset), Amount: s.amount})
	}

	l.SetProducts([]Product{
		{SKU: "COF-250", Name: "Coffee beans 250g", OnHand: 42, ReorderLevel: 10},
		{SKU: "MLK-1L", Name: "Oat milk 1L", OnHand: 4, ReorderLevel: 12},
		{SKU: "CUP-12", Name: "Paper cups 12oz", OnHand: 300, ReorderLevel: 100},
		{SKU: "SYR-VAN", Name: "Vanilla syrup", OnHand: 2, ReorderLevel: 3},
		{SKU: "FLT-01", Name: "Filter papers", OnHand: 0, ReorderLevel: 20},
	})
	return l
}

func (l *Ledger) RecordSale(s Sale) {
	l.mu.Lock()
	l.sales = append(l.sales, s)
	l.mu.Unlock()
}

func (l *Ledger) SetProducts(p []Product) {
	l.mu.Lock()
	l.products = append([]Product(nil), p...)
	l.mu.Unlock()
}

// Summary totals the sales made since midnight up to now and counts the
// products at or below their reorder level.
func (l *Ledger) Summary() api.Summary {
	now := l.now()
	from := startOfDay(now)

	l.mu.RLock()
	defer l.mu.RUnlock()

	out := api.Summary{Currency: l.currency, GeneratedAt: now}
	for _, s := range l.sales {
		if s.At.Before(from) || s.At.After(now) {
			continue
		}
		out.SalesTotal += s.Amount
		out.TransactionCount++
	}
	if out.TransactionCount > 0 {
		out.AverageTicket = out.SalesTotal / out.TransactionCount
	}
	for _, p := range l.products {
		if p.OnHand <= p.ReorderLevel {
			out.LowStockProducts++
		}
	}
	return out
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
