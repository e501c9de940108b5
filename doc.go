// Package expenses provides the types and functions to keep a personal
// income and expense ledger. It is local-first and keeps its data in a plain,
// human-readable CSV file.
//
// The core functionalities include:
//   - Ledger Management: recording dated income and expense transactions in
//     a chronological record that is never edited, only appended to.
//   - Balance Derivation: every transaction carries the running balance of
//     the ledger, derived from a starting balance and the signed amounts of
//     all the transactions up to it. See [Derive].
//   - Reports: summary metrics, expenses by category and per period
//     overviews.
//   - Data Persistence: encoding and decoding the ledger to and from CSV, and
//     the [Store] abstraction to load and save it as a whole.
//
// This package serves as the foundational logic for the `exp` command-line
// tool.
package expenses
