package moneyapp

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestService builds a service over a fresh MemStore with a deterministic
// clock and id sequence.
func newTestService(t *testing.T) (*Service, *MemStore) {
	t.Helper()
	store := NewMemStore()
	clock := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	n := 0
	svc := NewService(store,
		WithClock(func() time.Time { return clock }),
		WithIDGenerator(func() string { n++; return fmt.Sprintf("id-%d", n) }),
	)
	t.Cleanup(svc.Close)
	return svc, store
}

func TestServiceAddAccount(t *testing.T) {
	svc, store := newTestService(t)

	a, err := svc.AddAccount(Account{Name: "Brokerage", AccountType: AccountTypeTaxable, TaxType: TaxTypeTaxable})
	require.NoError(t, err)
	assert.Equal(t, "id-1", a.ID)

	accounts := svc.Accounts()
	require.Len(t, accounts, 1)
	assert.Equal(t, "Brokerage", accounts[0].Name)

	// the slot is persisted immediately
	data, ok, err := store.Get(SlotAccounts)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, string(data), `"Brokerage"`)
}

func TestServiceAddAccountInvalid(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.AddAccount(Account{Name: ""})
	assert.Error(t, err)
	assert.Empty(t, svc.Accounts())
}

func TestServiceUpdateAccount(t *testing.T) {
	svc, _ := newTestService(t)
	a, err := svc.AddAccount(Account{Name: "Savings", AccountType: AccountTypeCash, Balance: d(1000)})
	require.NoError(t, err)

	balance := d(2500)
	updated, err := svc.UpdateAccount(a.ID, AccountChanges{Balance: &balance})
	require.NoError(t, err)
	assert.True(t, updated.Balance.Equal(d(2500)))
	assert.Equal(t, "Savings", updated.Name, "untouched fields keep their values")

	_, err = svc.UpdateAccount("nope", AccountChanges{Balance: &balance})
	assert.ErrorIs(t, err, ErrUnknownID)
}

func TestServiceDeleteAccountCascades(t *testing.T) {
	svc, _ := newTestService(t)
	a1, err := svc.AddAccount(Account{Name: "Brokerage", AccountType: AccountTypeTaxable})
	require.NoError(t, err)
	a2, err := svc.AddAccount(Account{Name: "Roth", AccountType: AccountTypeRothIRA})
	require.NoError(t, err)

	h1, err := svc.AddHolding(holding("", a1.ID, "VTI", AssetClassETF, 10, 210))
	require.NoError(t, err)
	h2, err := svc.AddHolding(holding("", a2.ID, "BTC", AssetClassCrypto, 0.1, 40000))
	require.NoError(t, err)

	require.True(t, svc.DeleteAccount(a1.ID))

	assert.Len(t, svc.Accounts(), 1)
	holdings := svc.Holdings()
	require.Len(t, holdings, 1)
	assert.Equal(t, h2.ID, holdings[0].ID, "only the deleted account's holdings cascade")
	_ = h1

	assert.False(t, svc.DeleteAccount(a1.ID), "second delete is a no-op")
}

func TestServiceAddHolding(t *testing.T) {
	svc, _ := newTestService(t)

	h, err := svc.AddHolding(Holding{
		AccountID:  "a1",
		Ticker:     "  vti ",
		Name:       "Total Market",
		AssetClass: AssetClassETF,
		Quantity:   d(10),
		Price:      d(210),
	})
	require.NoError(t, err)
	assert.Equal(t, "VTI", h.Ticker, "ticker is trimmed and upper-cased")
	assert.False(t, h.LastUpdated.IsZero())
	assert.True(t, h.MarketValue().Equal(d(2100)))
}

func TestServiceAddHoldingRejectsNegative(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.AddHolding(Holding{Name: "Bad", Ticker: "X", Quantity: d(-1), Price: d(10)})
	assert.Error(t, err)
	_, err = svc.AddHolding(Holding{Name: "Bad", Ticker: "X", Quantity: d(1), Price: d(-10)})
	assert.Error(t, err)
	assert.Empty(t, svc.Holdings())
}

func TestServiceUpdateHoldingAdvancesLastUpdated(t *testing.T) {
	store := NewMemStore()
	clock := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := NewService(store, WithClock(func() time.Time { return clock }))
	t.Cleanup(svc.Close)

	h, err := svc.AddHolding(holding("", "a1", "VTI", AssetClassETF, 10, 210))
	require.NoError(t, err)
	assert.True(t, h.LastUpdated.Equal(clock))

	clock = clock.Add(48 * time.Hour)
	price := d(215)
	updated, err := svc.UpdateHolding(h.ID, HoldingChanges{Price: &price})
	require.NoError(t, err)
	assert.True(t, updated.LastUpdated.Equal(clock), "every update advances lastUpdated")
	assert.True(t, updated.Price.Equal(d(215)))

	_, err = svc.UpdateHolding("nope", HoldingChanges{Price: &price})
	assert.ErrorIs(t, err, ErrUnknownID)
}

func TestServiceDeleteHolding(t *testing.T) {
	svc, _ := newTestService(t)
	h, err := svc.AddHolding(holding("", "a1", "VTI", AssetClassETF, 10, 210))
	require.NoError(t, err)

	assert.True(t, svc.DeleteHolding(h.ID))
	assert.Empty(t, svc.Holdings())
	assert.False(t, svc.DeleteHolding(h.ID))
}

func TestServiceCaptureSnapshot(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.AddAccount(Account{Name: "Savings", AccountType: AccountTypeCash, Balance: d(5000)})
	require.NoError(t, err)
	a, err := svc.AddAccount(Account{Name: "Brokerage", AccountType: AccountTypeTaxable})
	require.NoError(t, err)
	_, err = svc.AddHolding(holding("", a.ID, "VTI", AssetClassETF, 10, 210))
	require.NoError(t, err)

	s1 := svc.CaptureSnapshot()
	assert.True(t, s1.NetWorth.Equal(d(7100)))
	assert.NotEmpty(t, s1.ID)

	s2 := svc.CaptureSnapshot()
	assert.NotEqual(t, s1.ID, s2.ID, "every save gets a fresh id")
	assert.Len(t, svc.Snapshots(), 2)
}

func TestServiceSaveSnapshotIgnoresCallerID(t *testing.T) {
	svc, _ := newTestService(t)
	saved := svc.SaveSnapshot(Snapshot{ID: "mine", NetWorth: d(100), Timestamp: time.Now()})
	assert.NotEqual(t, "mine", saved.ID)
}

func TestServiceStrategyBuckets(t *testing.T) {
	svc, _ := newTestService(t)
	assert.Equal(t, DefaultStrategyBuckets, svc.Settings().StrategyBuckets)

	s := svc.AddStrategyBucket("Dividend")
	assert.Contains(t, s.StrategyBuckets, "Dividend")

	s = svc.AddStrategyBucket("Dividend")
	assert.Equal(t, 1, countOf(s.StrategyBuckets, "Dividend"), "duplicates are dropped")

	s = svc.RemoveStrategyBucket("Dividend")
	assert.NotContains(t, s.StrategyBuckets, "Dividend")
}

func countOf(buckets []string, want string) int {
	n := 0
	for _, b := range buckets {
		if b == want {
			n++
		}
	}
	return n
}

func TestServiceRemoveBucketKeepsHoldingLabels(t *testing.T) {
	svc, _ := newTestService(t)
	h, err := svc.AddHolding(Holding{
		AccountID:      "a1",
		Ticker:         "VTI",
		Name:           "Total Market",
		StrategyBucket: "Core Index",
		Quantity:       d(1),
		Price:          d(210),
	})
	require.NoError(t, err)

	svc.RemoveStrategyBucket("Core Index")
	holdings := svc.Holdings()
	require.Len(t, holdings, 1)
	assert.Equal(t, "Core Index", holdings[0].StrategyBucket)
	_ = h
}

func TestServiceExportImportRoundTrip(t *testing.T) {
	svc, _ := newTestService(t)
	a, err := svc.AddAccount(Account{Name: "Brokerage", AccountType: AccountTypeTaxable})
	require.NoError(t, err)
	_, err = svc.AddHolding(holding("", a.ID, "VTI", AssetClassETF, 10, 210))
	require.NoError(t, err)
	svc.CaptureSnapshot()
	svc.AddStrategyBucket("Dividend")

	payload, err := svc.ExportData()
	require.NoError(t, err)

	other, _ := newTestService(t)
	require.NoError(t, other.ImportData(payload))

	want, got := svc.Accounts(), other.Accounts()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].ID, got[i].ID)
		assert.Equal(t, want[i].Name, got[i].Name)
		assert.Equal(t, want[i].AccountType, got[i].AccountType)
		assert.Equal(t, want[i].TaxType, got[i].TaxType)
		assert.True(t, want[i].Balance.Equal(got[i].Balance))
	}
	assert.Len(t, other.Holdings(), 1)
	assert.Len(t, other.Snapshots(), 1)
	assert.Contains(t, other.Settings().StrategyBuckets, "Dividend")
}

func TestServiceExportEmptyCollections(t *testing.T) {
	svc, _ := newTestService(t)
	payload, err := svc.ExportData()
	require.NoError(t, err)
	assert.Contains(t, string(payload), `"accounts": []`)
	assert.NotContains(t, string(payload), "null")
}

func TestServiceImportMalformed(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.AddAccount(Account{Name: "Keep", AccountType: AccountTypeCash, Balance: d(100)})
	require.NoError(t, err)

	err = svc.ImportData([]byte(`{"accounts": "not a list"`))
	var ferr *FormatError
	require.ErrorAs(t, err, &ferr)

	accounts := svc.Accounts()
	require.Len(t, accounts, 1, "a failed import leaves everything untouched")
	assert.Equal(t, "Keep", accounts[0].Name)
}

func TestServiceImportSubset(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.AddAccount(Account{Name: "Keep", AccountType: AccountTypeCash, Balance: d(100)})
	require.NoError(t, err)
	_, err = svc.AddHolding(holding("", "a1", "VTI", AssetClassETF, 10, 210))
	require.NoError(t, err)

	// only holdings present: accounts and settings survive
	payload := []byte(`{"holdings": [{"id":"x","accountId":"a1","ticker":"btc","name":"Bitcoin","assetClass":"Crypto","quantity":"0.5","price":"40000"}]}`)
	require.NoError(t, svc.ImportData(payload))

	assert.Len(t, svc.Accounts(), 1)
	holdings := svc.Holdings()
	require.Len(t, holdings, 1)
	assert.Equal(t, "Bitcoin", holdings[0].Name)
	assert.Equal(t, AssetClassCrypto, holdings[0].AssetClass)
}

func TestServiceImportNormalizesEnums(t *testing.T) {
	svc, _ := newTestService(t)
	payload := []byte(`{
		"accounts": [{"id":"a1","name":"Odd","accountType":"Offshore","taxType":"Mystery","balance":"10"}],
		"holdings": [{"id":"h1","accountId":"a1","ticker":"X","name":"X","assetClass":"Collectible","quantity":"1","price":"2"}],
		"settings": {"strategyBuckets":["Cash"],"defaultTimeframe":"14d","chartTimeframes":["7d"]}
	}`)
	require.NoError(t, svc.ImportData(payload))

	assert.Equal(t, AccountTypeOther, svc.Accounts()[0].AccountType)
	assert.Equal(t, TaxTypeNone, svc.Accounts()[0].TaxType)
	assert.Equal(t, AssetClassOther, svc.Holdings()[0].AssetClass)
	assert.Equal(t, Timeframe30d, svc.Settings().DefaultTimeframe)
}

func TestServiceAddAccountNormalizesEnums(t *testing.T) {
	svc, _ := newTestService(t)

	// zero-value enums land exactly as a reload would produce them
	a, err := svc.AddAccount(Account{Name: "Plain"})
	require.NoError(t, err)
	assert.Equal(t, AccountTypeOther, a.AccountType)
	assert.Equal(t, TaxTypeNone, a.TaxType)

	h, err := svc.AddHolding(Holding{Name: "Plain", Ticker: "X", Quantity: d(1), Price: d(1)})
	require.NoError(t, err)
	assert.Equal(t, AssetClassOther, h.AssetClass)

	svc.SetSettings(Settings{StrategyBuckets: []string{"Cash"}})
	assert.Equal(t, Timeframe30d, svc.Settings().DefaultTimeframe)
}

// notifyStore wraps a MemStore and lets a test fire the external-change
// callback from another goroutine, the way a directory watcher does.
type notifyStore struct {
	*MemStore
	fn func(slot string)
}

func (s *notifyStore) Subscribe(fn func(slot string)) (cancel func()) {
	s.fn = fn
	return func() {}
}

func TestServiceConcurrentExternalRefresh(t *testing.T) {
	store := &notifyStore{MemStore: NewMemStore()}
	require.NoError(t, store.Set(SlotAccounts,
		[]byte(`[{"id":"a1","name":"External","accountType":"Cash","taxType":"None","balance":"10"}]`)))
	svc := NewService(store)
	t.Cleanup(svc.Close)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for range 200 {
			store.fn(SlotAccounts)
		}
	}()
	for range 200 {
		accounts := svc.Accounts()
		require.Len(t, accounts, 1)
		assert.Equal(t, "External", accounts[0].Name)
		_ = svc.Holdings()
		_ = svc.Settings()
	}
	<-done
}

// failStore accepts nothing but reads fine, to exercise the write-failure
// contract.
type failStore struct {
	inner *MemStore
}

func (s *failStore) Get(slot string) ([]byte, bool, error) { return s.inner.Get(slot) }
func (s *failStore) Set(slot string, data []byte) error    { return errors.New("disk full") }

func TestServiceWriteFailureKeepsMemoryState(t *testing.T) {
	svc := NewService(&failStore{inner: NewMemStore()})
	t.Cleanup(svc.Close)

	a, err := svc.AddAccount(Account{Name: "Volatile", AccountType: AccountTypeCash, Balance: d(10)})
	require.NoError(t, err, "a failing store must not surface from mutations")
	assert.Len(t, svc.Accounts(), 1)
	assert.Equal(t, a.ID, svc.Accounts()[0].ID)
}

func TestServiceLoadsCorruptSlotAsEmpty(t *testing.T) {
	store := NewMemStore()
	require.NoError(t, store.Set(SlotAccounts, []byte(`{{{`)))
	require.NoError(t, store.Set(SlotSettings, []byte(`broken`)))

	svc := NewService(store)
	t.Cleanup(svc.Close)

	assert.Empty(t, svc.Accounts())
	assert.Equal(t, DefaultSettings(), svc.Settings())
}

func TestServiceReadsPersistAcrossInstances(t *testing.T) {
	store := NewMemStore()
	svc := NewService(store)
	_, err := svc.AddAccount(Account{Name: "Durable", AccountType: AccountTypeCash, Balance: d(42)})
	require.NoError(t, err)
	svc.Close()

	again := NewService(store)
	t.Cleanup(again.Close)
	accounts := again.Accounts()
	require.Len(t, accounts, 1)
	assert.Equal(t, "Durable", accounts[0].Name)
	assert.True(t, accounts[0].Balance.Equal(d(42)))
}
