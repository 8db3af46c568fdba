package moneyapp

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// AssetClass classifies what kind of asset a holding is.
type AssetClass string

const (
	AssetClassStock  AssetClass = "Stock"
	AssetClassETF    AssetClass = "ETF"
	AssetClassCrypto AssetClass = "Crypto"
	AssetClassCash   AssetClass = "Cash"
	AssetClassOther  AssetClass = "Other"
)

// AssetClasses lists all valid asset classes, in display order.
var AssetClasses = []AssetClass{
	AssetClassStock,
	AssetClassETF,
	AssetClassCrypto,
	AssetClassCash,
	AssetClassOther,
}

// ParseAssetClass maps a string onto an AssetClass, defaulting to
// AssetClassOther for values outside the set.
func ParseAssetClass(s string) AssetClass {
	for _, c := range AssetClasses {
		if s == string(c) {
			return c
		}
	}
	return AssetClassOther
}

func (c *AssetClass) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*c = ParseAssetClass(s)
	return nil
}

// Holding is a single position (ticker, quantity, price) attributed to an
// account.
//
// AccountID is a soft reference: a holding may point at an account that no
// longer exists (typically after an import), and selectors must aggregate it
// gracefully rather than fail. Market value is never stored; it is always
// derived as Quantity*Price.
type Holding struct {
	ID             string           `json:"id"`
	AccountID      string           `json:"accountId"`
	Ticker         string           `json:"ticker"`
	Name           string           `json:"name" validate:"required"`
	AssetClass     AssetClass       `json:"assetClass"`
	StrategyBucket string           `json:"strategyBucket"`
	Quantity       decimal.Decimal  `json:"quantity" validate:"gte=0"`
	Price          decimal.Decimal  `json:"price" validate:"gte=0"`
	CostBasis      *decimal.Decimal `json:"costBasis,omitempty"`
	Currency       string           `json:"currency,omitempty"`
	LastUpdated    time.Time        `json:"lastUpdated"`
}

// MarketValue returns Quantity*Price.
func (h Holding) MarketValue() decimal.Decimal {
	return h.Quantity.Mul(h.Price)
}

// GainLoss returns the unrealized gain or loss against the cost basis.
// The second return is false when no cost basis was recorded, in which case
// gain/loss is undefined (not zero).
func (h Holding) GainLoss() (decimal.Decimal, bool) {
	if h.CostBasis == nil {
		return decimal.Decimal{}, false
	}
	return h.MarketValue().Sub(*h.CostBasis), true
}

// HoldingChanges carries a partial update for a holding. Nil fields are left
// untouched by UpdateHolding.
type HoldingChanges struct {
	AccountID      *string
	Ticker         *string
	Name           *string
	AssetClass     *AssetClass
	StrategyBucket *string
	Quantity       *decimal.Decimal
	Price          *decimal.Decimal
	CostBasis      *decimal.Decimal
	Currency       *string
}

func (h Holding) merge(c HoldingChanges) Holding {
	if c.AccountID != nil {
		h.AccountID = *c.AccountID
	}
	if c.Ticker != nil {
		h.Ticker = *c.Ticker
	}
	if c.Name != nil {
		h.Name = *c.Name
	}
	if c.AssetClass != nil {
		h.AssetClass = *c.AssetClass
	}
	if c.StrategyBucket != nil {
		h.StrategyBucket = *c.StrategyBucket
	}
	if c.Quantity != nil {
		h.Quantity = *c.Quantity
	}
	if c.Price != nil {
		h.Price = *c.Price
	}
	if c.CostBasis != nil {
		v := *c.CostBasis
		h.CostBasis = &v
	}
	if c.Currency != nil {
		h.Currency = *c.Currency
	}
	return h
}
