package store

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexandriaapp/alexandria-server/internal/errors"
)

func TestStore_AddBook_CreatesAuthorOnDemand(t *testing.T) {
	s := New(nil)

	book, author, created, err := s.AddBook("Clean Code", 2008, "Robert Martin", []string{"refactoring"})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "Clean Code", book.Title)
	assert.Equal(t, "Robert Martin", book.Author)
	assert.Equal(t, "Robert Martin", author.Name)
	assert.Nil(t, author.Born)
	assert.Equal(t, int32(1), author.BookCount)
	assert.Equal(t, 1, s.BookCount())
	assert.Equal(t, 1, s.AuthorCount())

	// Second book for the same author reuses the author.
	_, author2, created2, err := s.AddBook("Agile software development", 2002, "Robert Martin", nil)
	require.NoError(t, err)
	assert.False(t, created2)
	assert.Equal(t, author.ID, author2.ID)
	assert.Equal(t, int32(2), author2.BookCount)
	assert.Equal(t, 2, s.BookCount())
	assert.Equal(t, 1, s.AuthorCount())
}

func TestStore_AddBook_IsNotIdempotent(t *testing.T) {
	s := New(nil)

	b1, _, _, err := s.AddBook("Demons", 1872, "Fyodor Dostoevsky", []string{"classic"})
	require.NoError(t, err)
	b2, _, _, err := s.AddBook("Demons", 1872, "Fyodor Dostoevsky", []string{"classic"})
	require.NoError(t, err)

	// Identical arguments create two distinct books but only one author.
	assert.NotEqual(t, b1.ID, b2.ID)
	assert.Equal(t, 2, s.BookCount())
	assert.Equal(t, 1, s.AuthorCount())
}

func TestStore_AddBook_ConcurrentNewAuthor(t *testing.T) {
	s := New(nil)

	const writers = 16
	var wg sync.WaitGroup
	for n := 0; n < writers; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, _, err := s.AddBook("Zelda", 2020, "Z. Author", nil)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// The race on author creation must not duplicate the author.
	assert.Equal(t, writers, s.BookCount())
	assert.Equal(t, 1, s.AuthorCount())
}

func TestStore_Books_Filters(t *testing.T) {
	s := New(nil)
	s.Seed()

	t.Run("unfiltered returns everything in insertion order", func(t *testing.T) {
		books := s.Books("", "")
		require.Len(t, books, 7)
		assert.Equal(t, "Clean Code", books[0].Title)
		assert.Equal(t, "Demons", books[6].Title)
	})

	t.Run("author filter", func(t *testing.T) {
		books := s.Books("Robert Martin", "")
		require.Len(t, books, 2)
		for _, b := range books {
			assert.Equal(t, "Robert Martin", b.Author)
		}
	})

	t.Run("genre filter", func(t *testing.T) {
		books := s.Books("", "refactoring")
		assert.Len(t, books, 4)
	})

	t.Run("filters are conjunctive", func(t *testing.T) {
		books := s.Books("Robert Martin", "refactoring")
		require.Len(t, books, 1)
		assert.Equal(t, "Clean Code", books[0].Title)
	})

	t.Run("no match", func(t *testing.T) {
		assert.Empty(t, s.Books("Robert Martin", "classic"))
	})
}

func TestStore_Authors_BookCountsMatchRecount(t *testing.T) {
	s := New(nil)
	s.Seed()

	authors := s.Authors()
	require.Len(t, authors, 5)

	for _, a := range authors {
		recount := len(s.Books(a.Name, ""))
		assert.Equal(t, int32(recount), a.BookCount, "author %s", a.Name)
	}

	// Counts stay correct after a write.
	_, _, _, err := s.AddBook("Refactoring", 1999, "Martin Fowler", nil)
	require.NoError(t, err)

	fowler, ok := s.AuthorByName("Martin Fowler")
	require.True(t, ok)
	assert.Equal(t, int32(2), fowler.BookCount)
}

func TestStore_SetAuthorBorn(t *testing.T) {
	s := New(nil)
	s.Seed()

	author, ok := s.SetAuthorBorn("Sandi Metz", 1960)
	require.True(t, ok)
	require.NotNil(t, author.Born)
	assert.Equal(t, int32(1960), *author.Born)

	// Unknown name reports no match and creates nothing.
	_, ok = s.SetAuthorBorn("No Such Author", 1900)
	assert.False(t, ok)
	assert.Equal(t, 5, s.AuthorCount())

	// The year is overwritten unconditionally, even with nonsense values.
	author, ok = s.SetAuthorBorn("Sandi Metz", -3000)
	require.True(t, ok)
	assert.Equal(t, int32(-3000), *author.Born)
}

func TestStore_CreateUser(t *testing.T) {
	s := New(nil)

	user, err := s.CreateUser("mluukkai", "refactoring")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "mluukkai", user.Username)

	// Duplicate username is rejected, case-sensitively.
	_, err = s.CreateUser("mluukkai", "crime")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrValidation))

	_, err = s.CreateUser("Mluukkai", "crime")
	require.NoError(t, err)
	assert.Equal(t, 2, s.UserCount())

	found, ok := s.UserByUsername("mluukkai")
	require.True(t, ok)
	assert.Equal(t, user.ID, found.ID)

	byID, ok := s.UserByID(user.ID)
	require.True(t, ok)
	assert.Equal(t, "mluukkai", byID.Username)
}

func TestStore_Seed_Idempotent(t *testing.T) {
	s := New(nil)
	s.Seed()
	s.Seed()

	assert.Equal(t, 7, s.BookCount())
	assert.Equal(t, 5, s.AuthorCount())
}
