// Package errs define custom error types and utilities.
//
// Its purpose is to create specific error structures
// (e.g. HTTPError for API responses) so every failure leaving
// the API has a known status code and a known body shape.
package errs
