// Package service contains the books business logic.
//
// It sits between the handler and repository layers. It receives
// validated input from the handler, applies the rules of each book
// operation (duplicate detection, not-found reporting) and calls the
// repository to reach the store.
package service
