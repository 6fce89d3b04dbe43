package renderer

import (
	"github.com/shopspring/decimal"
	"github.com/xmyqyl4x/aitrader/etrade"
)

// AccountListing is the view of the linked-account screen: the
// connection banner plus one row per account.
type AccountListing struct {
	BannerSeverity string
	BannerMessage  string
	Rows           []AccountRow
	LoadError      string
}

// AccountRow is one formatted account line.
type AccountRow struct {
	ID         string
	Key        string
	Name       string
	Type       string
	Status     string
	LinkedAt   string
	LastSynced string
}

// NewAccountListing builds the view from a loaded linking controller.
func NewAccountListing(banner etrade.Banner, accounts []etrade.Account, loadErr error) *AccountListing {
	l := &AccountListing{
		BannerSeverity: banner.Severity,
		BannerMessage:  banner.Message,
	}
	if loadErr != nil {
		l.LoadError = loadErr.Error()
	}
	for _, a := range accounts {
		l.Rows = append(l.Rows, AccountRow{
			ID:         a.ID,
			Key:        a.AccountIDKey,
			Name:       a.AccountName,
			Type:       a.AccountType,
			Status:     a.AccountStatus,
			LinkedAt:   fmtTime(a.LinkedAt),
			LastSynced: fmtTimePtr(a.LastSyncedAt),
		})
	}
	return l
}

// BalanceReport is the formatted cash position of one account.
type BalanceReport struct {
	AccountID         string
	TotalAccountValue string
	CashAvailable     string
	CashBalance       string
	MarginBuyingPower string
	NetCash           string
}

// NewBalanceReport builds the view from a service balance. Amounts are
// formatted in the account currency when the service names one.
func NewBalanceReport(b etrade.Balance) *BalanceReport {
	amount := func(d decimal.Decimal) string {
		if b.Currency == "" {
			return fmtDecimal(d)
		}
		return etrade.M(d, b.Currency).String()
	}
	nullable := func(d decimal.NullDecimal) string {
		if !d.Valid {
			return naCell
		}
		return amount(d.Decimal)
	}
	return &BalanceReport{
		AccountID:         b.AccountID,
		TotalAccountValue: amount(b.TotalAccountValue),
		CashAvailable:     amount(b.CashAvailableForInvestment),
		CashBalance:       amount(b.CashBalance),
		MarginBuyingPower: nullable(b.MarginBuyingPower),
		NetCash:           nullable(b.NetCash),
	}
}

// PortfolioReport is the formatted positions of one account.
type PortfolioReport struct {
	AccountID  string
	TotalValue string
	Rows       []PositionRow
}

// PositionRow is one formatted holding line.
type PositionRow struct {
	Symbol       string
	Quantity     string
	CurrentPrice string
	MarketValue  string
	CostBasis    string
	PnL          string
}

// NewPortfolioReport builds the view from a service portfolio.
func NewPortfolioReport(p etrade.Portfolio) *PortfolioReport {
	r := &PortfolioReport{
		AccountID:  p.AccountID,
		TotalValue: fmtDecimal(p.TotalValue),
	}
	for _, pos := range p.Positions {
		r.Rows = append(r.Rows, PositionRow{
			Symbol:       pos.Symbol,
			Quantity:     pos.Quantity.String(),
			CurrentPrice: fmtDecimal(pos.CurrentPrice),
			MarketValue:  fmtDecimal(pos.MarketValue),
			CostBasis:    fmtNullDecimal(pos.CostBasis),
			PnL:          fmtNullDecimal(pos.PnL),
		})
	}
	return r
}

// OrderListing is the formatted order list of one account.
type OrderListing struct {
	AccountID string
	Rows      []OrderRow
}

// OrderRow is one formatted order line.
type OrderRow struct {
	OrderID  string
	Symbol   string
	Action   string
	Type     string
	Quantity string
	Status   string
	Placed   string
}

// NewOrderListing builds the view from listed orders.
func NewOrderListing(accountID string, orders []etrade.Order) *OrderListing {
	l := &OrderListing{AccountID: accountID}
	for _, o := range orders {
		l.Rows = append(l.Rows, OrderRow{
			OrderID:  o.OrderID,
			Symbol:   o.Symbol,
			Action:   o.OrderAction,
			Type:     o.PriceType,
			Quantity: o.Quantity.String(),
			Status:   o.Status,
			Placed:   fmtTimePtr(o.PlacedTime),
		})
	}
	return l
}
