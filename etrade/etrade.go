// Package etrade links E*TRADE brokerage accounts through the aitradex
// service: OAuth status, the authorization hand-off, account listing and
// sync, and the read-only account views (balance, portfolio, orders).
package etrade

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is a linked brokerage account. The service owns the record;
// the client holds a read-mostly copy per load.
type Account struct {
	ID            string     `json:"id"`
	UserID        string     `json:"userId"`
	AccountIDKey  string     `json:"accountIdKey"`
	AccountType   string     `json:"accountType"`
	AccountName   string     `json:"accountName"`
	AccountStatus string     `json:"accountStatus"`
	LinkedAt      time.Time  `json:"linkedAt"`
	LastSyncedAt  *time.Time `json:"lastSyncedAt"`
}

// TokenStatus is the service's judgement of the stored OAuth token.
type TokenStatus string

const (
	TokenValid   TokenStatus = "VALID"
	TokenExpired TokenStatus = "EXPIRED"
	TokenMissing TokenStatus = "MISSING"
	TokenInvalid TokenStatus = "INVALID"
)

// OAuthStatus is the current connection state. Transient: refetched on
// demand, never stored locally.
type OAuthStatus struct {
	Connected      bool        `json:"connected"`
	HasAccounts    bool        `json:"hasAccounts"`
	AccountCount   int         `json:"accountCount"`
	TokenStatus    TokenStatus `json:"tokenStatus,omitempty"`
	TokenExpiresAt *time.Time  `json:"tokenExpiresAt,omitempty"`
}

// Authorization is the hand-off into the E*TRADE OAuth flow: the user's
// browser must be sent to URL, leaving this client.
type Authorization struct {
	URL           string
	State         string
	RequestToken  string
	CorrelationID string
	AuthAttemptID string
}

// TokenAction is the service's answer to a renew or revoke request.
type TokenAction struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Balance is the cash position of one account.
type Balance struct {
	AccountID                  string              `json:"accountId"`
	Currency                   string              `json:"currency"`
	TotalAccountValue          decimal.Decimal     `json:"totalAccountValue"`
	CashAvailableForInvestment decimal.Decimal     `json:"cashAvailableForInvestment"`
	CashBalance                decimal.Decimal     `json:"cashBalance"`
	MarginBuyingPower          decimal.NullDecimal `json:"marginBuyingPower"`
	NetCash                    decimal.NullDecimal `json:"netCash"`
}

// Position is one holding inside an account portfolio.
type Position struct {
	Symbol       string              `json:"symbol"`
	Quantity     decimal.Decimal     `json:"quantity"`
	CurrentPrice decimal.Decimal     `json:"currentPrice"`
	MarketValue  decimal.Decimal     `json:"marketValue"`
	CostBasis    decimal.NullDecimal `json:"costBasis"`
	PnL          decimal.NullDecimal `json:"pnl"`
}

// Portfolio is the positions of one account.
type Portfolio struct {
	AccountID  string          `json:"accountId"`
	Positions  []Position      `json:"positions"`
	TotalValue decimal.Decimal `json:"totalValue"`
}

// Order is one brokerage order as listed by the service.
type Order struct {
	OrderID     string          `json:"orderId"`
	Symbol      string          `json:"symbol"`
	OrderAction string          `json:"orderAction"`
	PriceType   string          `json:"priceType"`
	Quantity    decimal.Decimal `json:"quantity"`
	Status      string          `json:"status"`
	PlacedTime  *time.Time      `json:"placedTime"`
}
