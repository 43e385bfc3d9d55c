package models

import "time"

// Summary is the point-of-sale overview served by /point-of-sale/summary.
// Amounts are in minor currency units.
type Summary struct {
	SalesTotal       int64     `json:"sales_total"`
	TransactionCount int64     `json:"transaction_count"`
	AverageTicket    int64     `json:"average_ticket"`
	LowStockProducts int64     `json:"low_stock_products"`
	Currency         string    `json:"currency"`
	GeneratedAt      time.Time `json:"generated_at"`
}
