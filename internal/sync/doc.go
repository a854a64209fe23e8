// Package sync reconciles donor state from CSuite fund accounting into
// HubSpot: donation aggregates onto contact properties, event dates into
// marketing events, and newsletter opt-ins into subscription preferences.
//
// Each sync is a single sequential pass: fetch from CSuite (paginated),
// transform, look up and write per record on the HubSpot side, and return
// a tally. Per-record failures are counted, never raised; there is no
// rollback and no cross-record transactionality.
package sync
