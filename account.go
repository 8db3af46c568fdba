package moneyapp

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// AccountType classifies the destination an account represents.
type AccountType string

const (
	AccountType401k    AccountType = "401k"
	AccountTypeRothIRA AccountType = "Roth IRA"
	AccountTypeTaxable AccountType = "Taxable"
	AccountTypeCrypto  AccountType = "Crypto"
	AccountTypeCash    AccountType = "Cash"
	AccountTypeOther   AccountType = "Other"
)

// AccountTypes lists all valid account types, in display order.
var AccountTypes = []AccountType{
	AccountType401k,
	AccountTypeRothIRA,
	AccountTypeTaxable,
	AccountTypeCrypto,
	AccountTypeCash,
	AccountTypeOther,
}

// ParseAccountType maps a string onto an AccountType. Values persisted by an
// older version that no longer match the set map to AccountTypeOther rather
// than failing to load.
func ParseAccountType(s string) AccountType {
	for _, t := range AccountTypes {
		if s == string(t) {
			return t
		}
	}
	return AccountTypeOther
}

func (t *AccountType) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*t = ParseAccountType(s)
	return nil
}

// TaxType describes the tax treatment of an account.
type TaxType string

const (
	TaxTypeDeferred TaxType = "Tax-Deferred"
	TaxTypeFree     TaxType = "Tax-Free"
	TaxTypeTaxable  TaxType = "Taxable"
	TaxTypeNone     TaxType = "None"
)

// TaxTypes lists all valid tax types, in display order.
var TaxTypes = []TaxType{TaxTypeDeferred, TaxTypeFree, TaxTypeTaxable, TaxTypeNone}

// ParseTaxType maps a string onto a TaxType, defaulting to TaxTypeNone for
// values outside the set.
func ParseTaxType(s string) TaxType {
	for _, t := range TaxTypes {
		if s == string(t) {
			return t
		}
	}
	return TaxTypeNone
}

func (t *TaxType) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*t = ParseTaxType(s)
	return nil
}

// Account is a named destination (brokerage, retirement, cash) whose value is
// either stored directly (Cash accounts) or derived from its holdings.
//
// Balance is only meaningful for Cash accounts, where it is entered manually.
// For every other account type the balance is derived from holdings and the
// stored field is ignored; see ComputeAccountBalances.
type Account struct {
	ID          string          `json:"id"`
	Name        string          `json:"name" validate:"required"`
	Institution string          `json:"institution"`
	AccountType AccountType     `json:"accountType"`
	TaxType     TaxType         `json:"taxType"`
	Balance     decimal.Decimal `json:"balance"`
	Notes       string          `json:"notes,omitempty"`
}

// AccountChanges carries a partial update for an account. Nil fields are left
// untouched by UpdateAccount.
type AccountChanges struct {
	Name        *string
	Institution *string
	AccountType *AccountType
	TaxType     *TaxType
	Balance     *decimal.Decimal
	Notes       *string
}

func (a Account) merge(c AccountChanges) Account {
	if c.Name != nil {
		a.Name = *c.Name
	}
	if c.Institution != nil {
		a.Institution = *c.Institution
	}
	if c.AccountType != nil {
		a.AccountType = *c.AccountType
	}
	if c.TaxType != nil {
		a.TaxType = *c.TaxType
	}
	if c.Balance != nil {
		a.Balance = *c.Balance
	}
	if c.Notes != nil {
		a.Notes = *c.Notes
	}
	return a
}

// AccountNameIndex maps account ids to display names. Selectors use it to
// label allocation groups keyed by account id; a missing id stays unresolved
// and callers render the raw id (the "unattributed" case).
func AccountNameIndex(accounts []Account) map[string]string {
	index := make(map[string]string, len(accounts))
	for _, a := range accounts {
		index[a.ID] = a.Name
	}
	return index
}
