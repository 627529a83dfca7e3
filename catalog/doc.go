// Package catalog provides the read-only furniture catalog consumed by the
// room designer and the catalog HTTP service.
//
// A [Provider] lists [Product] records. Three providers are included:
// [Memory] for fixed data and tests, [LoadJSON] / [Default] for JSON product
// lists, and [SQLiteProvider] for a product database.
//
// Providers hand out copies: mutating a returned Product never changes the
// provider's data.
package catalog
