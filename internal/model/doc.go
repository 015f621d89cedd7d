// Package model defines the shop's domain types: the catalog entities
// (products, inventory, categories, add-ons, special requests, cashier
// accounts) and the ledger entities (orders, pending orders, receipts and
// the flat history rows).
//
// Money is always a shopspring decimal. Totals are never stored as
// independent facts: Order.Total and NewPendingOrder recompute them from
// line items, so a total can only disagree with its lines if a caller
// mutates a struct field directly, which the persistence contract forbids.
package model
