package moneyapp

import (
	"github.com/shopspring/decimal"
)

// small helpers shared by the package tests.

func d(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func dp(v float64) *decimal.Decimal {
	x := decimal.NewFromFloat(v)
	return &x
}

func cashAccount(id, name string, balance float64) Account {
	return Account{
		ID:          id,
		Name:        name,
		AccountType: AccountTypeCash,
		TaxType:     TaxTypeNone,
		Balance:     d(balance),
	}
}

func brokerageAccount(id, name string) Account {
	return Account{
		ID:          id,
		Name:        name,
		AccountType: AccountTypeTaxable,
		TaxType:     TaxTypeTaxable,
	}
}

func holding(id, accountID, ticker string, class AssetClass, quantity, price float64) Holding {
	return Holding{
		ID:         id,
		AccountID:  accountID,
		Ticker:     ticker,
		Name:       ticker,
		AssetClass: class,
		Quantity:   d(quantity),
		Price:      d(price),
	}
}
