package domain

// User is a registered account. Users are immutable after registration
// and carry no password; login checks a single shared secret.
type User struct {
	ID            string
	Username      string
	FavoriteGenre string
}

// Token is a signed credential returned by login.
type Token struct {
	Value string
}
