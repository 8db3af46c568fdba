package moneyapp

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// The persisted state is four independent slots. Each slot's serialized form
// is the direct JSON serialization of the in-memory structure.
const (
	SlotAccounts  = "accounts"
	SlotHoldings  = "holdings"
	SlotSnapshots = "snapshots"
	SlotSettings  = "settings"
)

// Slots lists all slot names.
var Slots = []string{SlotAccounts, SlotHoldings, SlotSnapshots, SlotSettings}

// Store is a durable key-value slot. Get reports ok=false when the slot has
// never been written. Implementations are expected to survive process
// restarts; nothing else is assumed about them.
type Store interface {
	Get(slot string) (data []byte, ok bool, err error)
	Set(slot string, data []byte) error
}

// Notifier is implemented by stores that can observe external writers (a
// second session sharing the same slots). Subscribers are told which slot
// changed; the convention is last-writer-wins, no merge.
type Notifier interface {
	Subscribe(fn func(slot string)) (cancel func())
}

// MemStore is an in-memory Store for tests and ephemeral sessions.
type MemStore struct {
	mu    sync.Mutex
	slots map[string][]byte
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{slots: make(map[string][]byte)}
}

func (s *MemStore) Get(slot string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.slots[slot]
	return data, ok, nil
}

func (s *MemStore) Set(slot string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[slot] = append([]byte(nil), data...)
	return nil
}

// DirStore keeps each slot in a JSON file inside a directory. It is the
// file-system stand-in for a browser local store: human readable, easy to
// back up, and shared between concurrently running sessions.
//
// External changes are detected by polling file modification times; writes
// performed through this store do not notify its own subscribers.
type DirStore struct {
	dir  string
	poll time.Duration

	mu      sync.Mutex
	mtimes  map[string]time.Time
	subs    map[int]func(slot string)
	nextSub int
	done    chan struct{}
	started bool
}

// DirStoreOption configures a DirStore.
type DirStoreOption func(*DirStore)

// WithPollInterval sets how often the store checks slot files for external
// changes. The default is one second.
func WithPollInterval(d time.Duration) DirStoreOption {
	return func(s *DirStore) { s.poll = d }
}

// NewDirStore opens (creating if needed) a slot directory.
func NewDirStore(dir string, opts ...DirStoreOption) (*DirStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("cannot create store directory %q: %w", dir, err)
	}
	s := &DirStore{
		dir:    dir,
		poll:   time.Second,
		mtimes: make(map[string]time.Time),
		subs:   make(map[int]func(string)),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *DirStore) path(slot string) string {
	return filepath.Join(s.dir, slot+".json")
}

func (s *DirStore) Get(slot string) ([]byte, bool, error) {
	path := s.path(slot)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cannot read %q: %w", path, err)
	}
	s.rememberMtime(slot)
	return data, true, nil
}

// Set writes the slot atomically: the data lands in a temp file first and is
// renamed over the slot file, so a concurrent reader never sees a torn write.
func (s *DirStore) Set(slot string, data []byte) error {
	path := s.path(slot)
	tmp, err := os.CreateTemp(s.dir, slot+"-*.tmp")
	if err != nil {
		return fmt.Errorf("cannot create temp file for %q: %w", path, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("cannot write %q: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("cannot write %q: %w", path, err)
	}
	// The rename and the mtime record happen under the lock so the watcher
	// cannot observe this write half-registered and report it as external.
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("cannot replace %q: %w", path, err)
	}
	if info, err := os.Stat(path); err == nil {
		s.mtimes[slot] = info.ModTime()
	}
	return nil
}

// rememberMtime records the current modification time of a slot file so the
// watcher only fires for writes this store did not perform itself.
func (s *DirStore) rememberMtime(slot string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if info, err := os.Stat(s.path(slot)); err == nil {
		s.mtimes[slot] = info.ModTime()
	}
}

// Subscribe registers a callback for externally written slots and returns a
// cancel function. The polling watcher starts lazily with the first
// subscriber and stops when the store is closed.
func (s *DirStore) Subscribe(fn func(slot string)) (cancel func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	if !s.started {
		s.started = true
		go s.watch()
	}
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Close stops the external-change watcher. The store remains usable for Get
// and Set.
func (s *DirStore) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	select {
	case <-s.done:
	default:
		close(s.done)
	}
}

func (s *DirStore) watch() {
	// Baseline every slot first so pre-existing files do not fire a spurious
	// notification on the first tick.
	for _, slot := range Slots {
		s.rememberMtime(slot)
	}
	ticker := time.NewTicker(s.poll)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.checkSlots()
		}
	}
}

func (s *DirStore) checkSlots() {
	for _, slot := range Slots {
		s.mu.Lock()
		info, err := os.Stat(s.path(slot))
		if err != nil {
			s.mu.Unlock()
			continue
		}
		known, seen := s.mtimes[slot]
		changed := !seen || info.ModTime().After(known)
		if changed {
			s.mtimes[slot] = info.ModTime()
		}
		var fns []func(string)
		if changed {
			for _, fn := range s.subs {
				fns = append(fns, fn)
			}
		}
		s.mu.Unlock()
		for _, fn := range fns {
			fn(slot)
		}
	}
}
