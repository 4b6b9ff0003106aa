// Package models holds the GORM table mappings. Domain entities stay free
// of ORM tags; each repository converts between a model here and its
// entity at the persistence boundary.
//
// base.go carries the shared columns, identity.go the user table,
// partner.go customers and properties, billing.go invoices and payments.
package models
