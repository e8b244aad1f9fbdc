// Package models contains GORM persistence models that map to database tables.
// Domain entities stay free of ORM tags; each model converts to and from its
// entity with ToDomain / FromDomain.
//
//   - base.go: identity, timestamps and version columns
//   - partner.go: customers and suppliers
//   - address.go: addresses keyed by owner
package models
