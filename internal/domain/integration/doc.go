// Package integration contains the External Lookup bounded context.
// It describes the third-party registries consulted while saving partners.
//
// Key concepts:
//   - PostalCodeProvider: Port resolving a CEP to street, neighborhood, city and state
//   - CompanyRegistry: Port resolving a CNPJ to company names and a registered address
//   - LookupCache: Port for the expiring key-value store shared by lookups
//
// Design Pattern: Ports & Adapters
//   - Ports (interfaces) are defined here in the domain layer
//   - Adapters (implementations) are in the infrastructure layer
package integration
