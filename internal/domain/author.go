package domain

// Author is a catalog author. Authors are created implicitly when the
// first book referencing a new name is added and are never deleted.
type Author struct {
	ID   string
	Name string
	// Born is nil until set via an author edit.
	Born *int32
	// BookCount is derived, never stored. Reads recompute it from the
	// books collection so it cannot drift.
	BookCount int32
}
