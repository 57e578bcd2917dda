// Package services implements the business logic layer between the HTTP
// handlers and the dataset store. Services are interface-driven for
// testability, propagate context for cancellation and tracing, and treat
// an empty query result as data rather than an error.
package services
