package moneyapp

import (
	"encoding/json"
)

// this file defines the backup/restore interchange format: a single JSON
// object with exactly four fields, one per slot, each holding the full
// current value of that slot.

// Bundle is the interchange structure. On import, nil fields mean "leave that
// slot untouched"; on export every field is set.
type Bundle struct {
	Accounts  *[]Account  `json:"accounts,omitempty"`
	Holdings  *[]Holding  `json:"holdings,omitempty"`
	Snapshots *[]Snapshot `json:"snapshots,omitempty"`
	Settings  *Settings   `json:"settings,omitempty"`
}

// EncodeBundle serializes a bundle, indented for human-readable backups.
func EncodeBundle(b Bundle) ([]byte, error) {
	return json.MarshalIndent(b, "", "  ")
}

// DecodeBundle parses an import payload. Any subset of the four fields may be
// present. A payload that fails to parse yields a *FormatError and nothing
// else: the caller must not have touched any state yet.
func DecodeBundle(payload []byte) (Bundle, error) {
	var b Bundle
	if err := json.Unmarshal(payload, &b); err != nil {
		return Bundle{}, &FormatError{Err: err}
	}
	return b, nil
}
