package moneyapp

import (
	"encoding/json"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Service owns the persisted store and is the sole mutation surface over it.
// Reads hand out copies; writes update memory first and then persist the
// touched slot. A failed durable write is logged and never rolls the memory
// state back: the store is best-effort and must not block the caller.
//
// Exactly one logical writer is expected at a time. When the underlying
// store reports an external change (another session sharing the slots), the
// service reloads that slot: last writer wins, no merge. The reload happens
// on the watcher's goroutine, so the slot fields are guarded by mu.
type Service struct {
	store    Store
	log      zerolog.Logger
	validate *validator.Validate
	now      func() time.Time
	newID    func() string

	unsubscribe func()

	mu        sync.RWMutex
	accounts  []Account
	holdings  []Holding
	snapshots []Snapshot
	settings  Settings
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the structured logger. The default discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Service) { s.log = log }
}

// WithClock injects the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator injects the id source, for tests.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

// NewService loads all four slots from the store and returns a ready service.
// It never fails: an unreadable or corrupt slot is logged and replaced by its
// empty default. If the store can notify about external writers, the service
// subscribes and refreshes the changed slot.
func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store:    store,
		log:      zerolog.Nop(),
		validate: newValidator(),
		now:      func() time.Time { return time.Now().UTC() },
		newID:    uuid.NewString,
		settings: DefaultSettings(),
	}
	for _, opt := range opts {
		opt(s)
	}
	for _, slot := range Slots {
		s.loadSlot(slot)
	}
	if n, ok := store.(Notifier); ok {
		s.unsubscribe = n.Subscribe(func(slot string) {
			s.log.Debug().Str("slot", slot).Msg("external change, refreshing")
			s.loadSlot(slot)
		})
	}
	return s
}

// newValidator builds the input validator. decimal.Decimal fields are checked
// through their float value so numeric tags like gte=0 apply.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// Close detaches the service from store notifications.
func (s *Service) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}

// Refresh reloads every slot from the store, dropping the in-memory copy.
func (s *Service) Refresh() {
	for _, slot := range Slots {
		s.loadSlot(slot)
	}
}

func (s *Service) loadSlot(slot string) {
	data, ok, err := s.store.Get(slot)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		rerr := &ReadError{Slot: slot, Err: err}
		s.log.Warn().Err(rerr).Msg("falling back to empty slot")
		s.resetSlot(slot)
		return
	}
	if !ok {
		s.resetSlot(slot)
		return
	}
	if err := s.decodeSlot(slot, data); err != nil {
		rerr := &ReadError{Slot: slot, Err: err}
		s.log.Warn().Err(rerr).Msg("corrupt slot, falling back to empty")
		s.resetSlot(slot)
	}
}

func (s *Service) resetSlot(slot string) {
	switch slot {
	case SlotAccounts:
		s.accounts = nil
	case SlotHoldings:
		s.holdings = nil
	case SlotSnapshots:
		s.snapshots = nil
	case SlotSettings:
		s.settings = DefaultSettings()
	}
}

func (s *Service) decodeSlot(slot string, data []byte) error {
	switch slot {
	case SlotAccounts:
		var v []Account
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		s.accounts = v
	case SlotHoldings:
		var v []Holding
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		s.holdings = v
	case SlotSnapshots:
		var v []Snapshot
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		s.snapshots = v
	case SlotSettings:
		v := DefaultSettings()
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		s.settings = v
	default:
		return fmt.Errorf("unknown slot %q", slot)
	}
	return nil
}

// persist serializes v into its slot. A write failure is logged, not
// returned: the in-memory state already moved on and availability wins over
// durability here.
func (s *Service) persist(slot string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.log.Error().Err(err).Str("slot", slot).Msg("cannot serialize slot")
		return
	}
	if err := s.store.Set(slot, data); err != nil {
		werr := &WriteError{Slot: slot, Err: err}
		s.log.Error().Err(werr).Msg("state kept in memory only")
	}
}

// Accounts returns a copy of all accounts, in insertion order.
func (s *Service) Accounts() []Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.accounts)
}

// Holdings returns a copy of all holdings, in insertion order.
func (s *Service) Holdings() []Holding {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.holdings)
}

// Snapshots returns a copy of all snapshots, in capture order.
func (s *Service) Snapshots() []Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.snapshots)
}

// Settings returns the current settings record.
func (s *Service) Settings() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// AddAccount validates the account, assigns a fresh id and appends it.
// Enum fields are normalized on the way in so the in-memory record equals
// what a reload would produce. There is no uniqueness constraint on name or
// institution.
func (s *Service) AddAccount(a Account) (Account, error) {
	a.AccountType = ParseAccountType(string(a.AccountType))
	a.TaxType = ParseTaxType(string(a.TaxType))
	if err := s.validate.Struct(a); err != nil {
		return Account{}, fmt.Errorf("invalid account: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	a.ID = s.newID()
	s.accounts = append(s.accounts, a)
	s.persist(SlotAccounts, s.accounts)
	s.log.Info().Str("id", a.ID).Str("name", a.Name).Msg("account added")
	return a, nil
}

// UpdateAccount merges changes onto the account with the given id. The state
// is untouched when the id is unknown (ErrUnknownID) or the merged record is
// invalid.
func (s *Service) UpdateAccount(id string, changes AccountChanges) (Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, a := range s.accounts {
		if a.ID != id {
			continue
		}
		merged := a.merge(changes)
		merged.AccountType = ParseAccountType(string(merged.AccountType))
		merged.TaxType = ParseTaxType(string(merged.TaxType))
		if err := s.validate.Struct(merged); err != nil {
			return Account{}, fmt.Errorf("invalid account: %w", err)
		}
		s.accounts[i] = merged
		s.persist(SlotAccounts, s.accounts)
		return merged, nil
	}
	return Account{}, fmt.Errorf("account %q: %w", id, ErrUnknownID)
}

// DeleteAccount removes the account and cascades to every holding that
// references it, in the same operation. It reports whether an account was
// removed.
func (s *Service) DeleteAccount(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	before := len(s.accounts)
	s.accounts = slices.DeleteFunc(s.accounts, func(a Account) bool { return a.ID == id })
	if len(s.accounts) == before {
		return false
	}
	holdingsBefore := len(s.holdings)
	s.holdings = slices.DeleteFunc(s.holdings, func(h Holding) bool { return h.AccountID == id })
	s.persist(SlotAccounts, s.accounts)
	if len(s.holdings) != holdingsBefore {
		s.persist(SlotHoldings, s.holdings)
	}
	s.log.Info().Str("id", id).Int("cascaded", holdingsBefore-len(s.holdings)).Msg("account deleted")
	return true
}

// AddHolding validates the holding, assigns a fresh id and appends it. The
// ticker is normalized to upper case, the asset class to its valid set, and
// LastUpdated defaults to now unless the caller supplied one.
func (s *Service) AddHolding(h Holding) (Holding, error) {
	h.Ticker = strings.ToUpper(strings.TrimSpace(h.Ticker))
	h.AssetClass = ParseAssetClass(string(h.AssetClass))
	if err := s.validate.Struct(h); err != nil {
		return Holding{}, fmt.Errorf("invalid holding: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	h.ID = s.newID()
	if h.LastUpdated.IsZero() {
		h.LastUpdated = s.now()
	}
	s.holdings = append(s.holdings, h)
	s.persist(SlotHoldings, s.holdings)
	s.log.Info().Str("id", h.ID).Str("ticker", h.Ticker).Msg("holding added")
	return h, nil
}

// UpdateHolding merges changes onto the holding with the given id and always
// advances LastUpdated to now. The state is untouched when the id is unknown
// (ErrUnknownID) or the merged record is invalid.
func (s *Service) UpdateHolding(id string, changes HoldingChanges) (Holding, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, h := range s.holdings {
		if h.ID != id {
			continue
		}
		merged := h.merge(changes)
		merged.Ticker = strings.ToUpper(strings.TrimSpace(merged.Ticker))
		merged.AssetClass = ParseAssetClass(string(merged.AssetClass))
		merged.LastUpdated = s.now()
		if err := s.validate.Struct(merged); err != nil {
			return Holding{}, fmt.Errorf("invalid holding: %w", err)
		}
		s.holdings[i] = merged
		s.persist(SlotHoldings, s.holdings)
		return merged, nil
	}
	return Holding{}, fmt.Errorf("holding %q: %w", id, ErrUnknownID)
}

// DeleteHolding removes the holding by id. Nothing references a holding, so
// there is no cascade. It reports whether a holding was removed.
func (s *Service) DeleteHolding(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	before := len(s.holdings)
	s.holdings = slices.DeleteFunc(s.holdings, func(h Holding) bool { return h.ID == id })
	if len(s.holdings) == before {
		return false
	}
	s.persist(SlotHoldings, s.holdings)
	return true
}

// SaveSnapshot assigns a fresh id to the snapshot shape and appends it.
// Existing snapshots are never overwritten.
func (s *Service) SaveSnapshot(sn Snapshot) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveSnapshot(sn)
}

func (s *Service) saveSnapshot(sn Snapshot) Snapshot {
	sn.ID = s.newID()
	s.snapshots = append(s.snapshots, sn)
	s.persist(SlotSnapshots, s.snapshots)
	s.log.Info().Str("id", sn.ID).Str("netWorth", sn.NetWorth.String()).Msg("snapshot saved")
	return sn
}

// CaptureSnapshot builds a snapshot from the current accounts and holdings
// and saves it.
func (s *Service) CaptureSnapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveSnapshot(BuildSnapshotAt(s.accounts, s.holdings, s.now()))
}

// SetSettings replaces the settings record wholesale.
func (s *Service) SetSettings(next Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setSettings(next)
}

func (s *Service) setSettings(next Settings) {
	next.DefaultTimeframe = ParseTimeframe(string(next.DefaultTimeframe))
	s.settings = next
	s.persist(SlotSettings, s.settings)
}

// AddStrategyBucket appends a bucket to the settings, dropping duplicates,
// and returns the updated settings.
func (s *Service) AddStrategyBucket(bucket string) Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setSettings(s.settings.WithBucket(bucket))
	return s.settings
}

// RemoveStrategyBucket removes a bucket from the settings and returns the
// updated settings. Holdings already labeled with the bucket keep the label;
// bucket membership is only checked at entry time.
func (s *Service) RemoveStrategyBucket(bucket string) Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setSettings(s.settings.WithoutBucket(bucket))
	return s.settings
}

// ExportData serializes all four slots into the interchange bundle.
func (s *Service) ExportData() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	// Empty collections export as [] rather than null.
	accounts := s.accounts
	if accounts == nil {
		accounts = []Account{}
	}
	holdings := s.holdings
	if holdings == nil {
		holdings = []Holding{}
	}
	snapshots := s.snapshots
	if snapshots == nil {
		snapshots = []Snapshot{}
	}
	settings := s.settings
	b := Bundle{
		Accounts:  &accounts,
		Holdings:  &holdings,
		Snapshots: &snapshots,
		Settings:  &settings,
	}
	return EncodeBundle(b)
}

// ImportData parses an interchange bundle and replaces each present slot
// wholesale; absent slots are untouched. An unparsable payload returns a
// *FormatError and leaves all state exactly as it was.
func (s *Service) ImportData(payload []byte) error {
	b, err := DecodeBundle(payload)
	if err != nil {
		return err
	}
	return s.ImportBundle(b)
}

// ImportBundle applies an already-parsed bundle, replacing each non-nil slot.
func (s *Service) ImportBundle(b Bundle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b.Accounts != nil {
		s.accounts = *b.Accounts
		s.persist(SlotAccounts, s.accounts)
	}
	if b.Holdings != nil {
		s.holdings = *b.Holdings
		s.persist(SlotHoldings, s.holdings)
	}
	if b.Snapshots != nil {
		s.snapshots = *b.Snapshots
		s.persist(SlotSnapshots, s.snapshots)
	}
	if b.Settings != nil {
		s.settings = *b.Settings
		s.persist(SlotSettings, s.settings)
	}
	s.log.Info().
		Bool("accounts", b.Accounts != nil).
		Bool("holdings", b.Holdings != nil).
		Bool("snapshots", b.Snapshots != nil).
		Bool("settings", b.Settings != nil).
		Msg("import applied")
	return nil
}
