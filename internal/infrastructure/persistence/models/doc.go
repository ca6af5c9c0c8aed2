// Package models holds the GORM rows behind the ledger tables and the
// mappers between them and the domain aggregates. Domain types carry no
// GORM tags.
//
// base.go has the columns shared by every aggregate table, warehouse.go the
// warehouse directory and inventory.go the stock records, movement ledger,
// batches, reservations and transfers.
package models
