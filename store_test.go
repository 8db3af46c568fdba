package moneyapp

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestMemStoreRoundTrip(t *testing.T) {
	s := NewMemStore()

	if _, ok, _ := s.Get(SlotAccounts); ok {
		t.Error("unwritten slot reported ok")
	}
	if err := s.Set(SlotAccounts, []byte(`[]`)); err != nil {
		t.Fatal(err)
	}
	data, ok, err := s.Get(SlotAccounts)
	if err != nil || !ok {
		t.Fatalf("Get = %v %v", ok, err)
	}
	if string(data) != `[]` {
		t.Errorf("data = %q", data)
	}
}

func TestDirStoreRoundTrip(t *testing.T) {
	s, err := NewDirStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if _, ok, _ := s.Get(SlotHoldings); ok {
		t.Error("unwritten slot reported ok")
	}
	if err := s.Set(SlotHoldings, []byte(`[{"id":"h1"}]`)); err != nil {
		t.Fatal(err)
	}
	data, ok, err := s.Get(SlotHoldings)
	if err != nil || !ok {
		t.Fatalf("Get = %v %v", ok, err)
	}
	if string(data) != `[{"id":"h1"}]` {
		t.Errorf("data = %q", data)
	}
}

func TestDirStoreFilesAreJSON(t *testing.T) {
	dir := t.TempDir()
	s, err := NewDirStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if err := s.Set(SlotSettings, []byte(`{}`)); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "settings.json")); err != nil {
		t.Errorf("slot file missing: %v", err)
	}
	// no temp files left behind
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected a single slot file, got %d entries", len(entries))
	}
}

func TestDirStoreSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	s, err := NewDirStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Set(SlotAccounts, []byte(`[1]`)); err != nil {
		t.Fatal(err)
	}
	s.Close()

	again, err := NewDirStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer again.Close()
	data, ok, err := again.Get(SlotAccounts)
	if err != nil || !ok {
		t.Fatalf("Get = %v %v", ok, err)
	}
	if string(data) != `[1]` {
		t.Errorf("data = %q", data)
	}
}

func TestDirStoreNotifiesExternalWrites(t *testing.T) {
	dir := t.TempDir()
	s, err := NewDirStore(dir, WithPollInterval(10*time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	changed := make(chan string, 4)
	cancel := s.Subscribe(func(slot string) { changed <- slot })
	defer cancel()

	// give the watcher a tick to baseline before the external write
	time.Sleep(50 * time.Millisecond)

	// a second session writing the same directory
	other, err := NewDirStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer other.Close()
	if err := other.Set(SlotHoldings, []byte(`[]`)); err != nil {
		t.Fatal(err)
	}

	select {
	case slot := <-changed:
		if slot != SlotHoldings {
			t.Errorf("notified slot = %q, want %q", slot, SlotHoldings)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no notification for an external write")
	}
}

func TestDirStoreOwnWritesDoNotNotify(t *testing.T) {
	s, err := NewDirStore(t.TempDir(), WithPollInterval(10*time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	changed := make(chan string, 4)
	cancel := s.Subscribe(func(slot string) { changed <- slot })
	defer cancel()

	time.Sleep(50 * time.Millisecond)
	if err := s.Set(SlotAccounts, []byte(`[]`)); err != nil {
		t.Fatal(err)
	}

	select {
	case slot := <-changed:
		t.Errorf("own write notified for slot %q", slot)
	case <-time.After(200 * time.Millisecond):
	}
}
