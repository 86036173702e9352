// Package domain contains the core catalog types.
package domain

// Book is a single catalog entry. Books are immutable once added;
// there is no edit or delete operation.
type Book struct {
	ID        string
	Title     string
	Published int32
	// Author holds the author's name, not an ID. The catalog associates
	// books with authors by name and authors are never renamed, so the
	// name acts as a stable key.
	Author string
	Genres []string
}
