// Package moneyapp provides the types and functions for tracking a personal
// balance sheet. It is designed to be local-first: all state lives in a small
// set of durable key-value slots under the user's control, and every derived
// figure is recomputed from that state on demand.
//
// The core functionalities include:
//   - Data Model: Accounts (brokerage, retirement, cash), the Holdings
//     attributed to them, immutable net-worth Snapshots, and user Settings.
//   - Domain Selectors: Pure functions deriving market values, account
//     balances, net worth, ordered allocation groupings, and point-in-time
//     snapshots from in-memory collections.
//   - Data Service: The sole mutation surface. It owns the persisted store,
//     generates identifiers, cascades deletions, and handles export/import of
//     the full data set as a single JSON bundle.
//   - Scenario Engine: An ephemeral what-if projection applying per-ticker
//     price overrides and per-asset-class percentage shifts to holdings,
//     never written back to the store.
//   - Data Persistence: An abstract durable slot store with a directory-backed
//     implementation, degrading gracefully on read or write failures.
//
// This package serves as the foundational logic for the `mna` command-line
// tool, ensuring that all views are consistent and based on a single source
// of truth.
package moneyapp
