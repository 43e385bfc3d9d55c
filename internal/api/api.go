// Package api is the wire contract between the StoreConsole client and its
// backend. The same payloads travel as JSON over HTTP and as
// google.protobuf.Struct messages over gRPC.
package api

import "time"

// HTTP routes.
const (
	PathLogin   = "/auth/login"
	PathSummary = "/point-of-sale/summary"
	PathPing    = "/ping"
)

// gRPC service and full method names.
const (
	ServiceName   = "storeconsole.v1.ConsoleService"
	MethodLogin   = "/" + ServiceName + "/Login"
	MethodSummary = "/" + ServiceName + "/Summary"
	MethodPing    = "/" + ServiceName + "/Ping"
)

// StatusOK is the ping status of a healthy server.
const StatusOK = "OK"

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// LoginResponse carries the session. Expiry is optional; clients fall back
// to the token's own exp claim when it is missing.
type LoginResponse struct {
	User   User       `json:"user"`
	Token  string     `json:"token"`
	Expiry *time.Time `json:"expiry,omitempty"`
}

type Summary struct {
	SalesTotal       int64     `json:"sales_total"`
	TransactionCount int64     `json:"transaction_count"`
	AverageTicket    int64     `json:"average_ticket"`
	LowStockProducts int64     `json:"low_stock_products"`
	Currency         string    `json:"currency"`
	GeneratedAt      time.Time `json:"generated_at"`
}

type PingResponse struct {
	Status string `json:"status"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
