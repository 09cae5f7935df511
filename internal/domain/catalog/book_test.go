package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBook(t *testing.T) {
	ownerID := uuid.New()

	t.Run("creates book with valid fields", func(t *testing.T) {
		book, err := NewBook(ownerID, "The Go Programming Language", "Donovan", "programming", 2015)

		require.NoError(t, err)
		assert.Equal(t, "The Go Programming Language", book.Title)
		assert.Equal(t, "Donovan", book.Author)
		assert.Equal(t, ownerID, book.OwnerUserID)
		assert.Equal(t, 1, book.Version)
	})

	t.Run("fails without owner", func(t *testing.T) {
		_, err := NewBook(uuid.Nil, "Title", "Author", "fiction", 2000)
		assert.Error(t, err)
	})

	t.Run("fails with empty title", func(t *testing.T) {
		_, err := NewBook(ownerID, "   ", "Author", "fiction", 2000)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Title cannot be empty")
	})

	t.Run("allows zero year as unknown", func(t *testing.T) {
		book, err := NewBook(ownerID, "Title", "Author", "fiction", 0)
		require.NoError(t, err)
		assert.Equal(t, 0, book.Year)
	})
}

func TestBook_UpdateDetails(t *testing.T) {
	ownerID := uuid.New()

	t.Run("updates fields and bumps version", func(t *testing.T) {
		book, err := NewBook(ownerID, "Old Title", "Author", "fiction", 2000)
		require.NoError(t, err)

		err = book.UpdateDetails("New Title", "New Author", "sci-fi", 2001)

		require.NoError(t, err)
		assert.Equal(t, "New Title", book.Title)
		assert.Equal(t, "sci-fi", book.Category)
		assert.Equal(t, 2, book.Version)
	})

	t.Run("owner does not change", func(t *testing.T) {
		book, err := NewBook(ownerID, "Title", "Author", "fiction", 2000)
		require.NoError(t, err)

		require.NoError(t, book.UpdateDetails("Other", "Other", "other", 0))
		assert.True(t, book.IsOwnedBy(ownerID))
	})
}

func TestCollection(t *testing.T) {
	ownerID := uuid.New()

	t.Run("adds and removes books", func(t *testing.T) {
		col, err := NewCollection(ownerID, "Favorites")
		require.NoError(t, err)

		bookID := uuid.New()
		require.NoError(t, col.AddBook(bookID))
		assert.True(t, col.ContainsBook(bookID))

		require.NoError(t, col.RemoveBook(bookID))
		assert.False(t, col.ContainsBook(bookID))
	})

	t.Run("rejects duplicate book", func(t *testing.T) {
		col, err := NewCollection(ownerID, "Favorites")
		require.NoError(t, err)

		bookID := uuid.New()
		require.NoError(t, col.AddBook(bookID))
		assert.Error(t, col.AddBook(bookID))
	})

	t.Run("removing a missing book fails", func(t *testing.T) {
		col, err := NewCollection(ownerID, "Favorites")
		require.NoError(t, err)

		assert.Error(t, col.RemoveBook(uuid.New()))
	})
}

func TestNewReview(t *testing.T) {
	t.Run("creates review in rating range", func(t *testing.T) {
		review, err := NewReview(uuid.New(), uuid.New(), 4, "Solid read")

		require.NoError(t, err)
		assert.Equal(t, 4, review.Rating)
	})

	t.Run("rejects rating out of range", func(t *testing.T) {
		_, err := NewReview(uuid.New(), uuid.New(), 0, "text")
		assert.Error(t, err)

		_, err = NewReview(uuid.New(), uuid.New(), 6, "text")
		assert.Error(t, err)
	})

	t.Run("rejects empty text", func(t *testing.T) {
		_, err := NewReview(uuid.New(), uuid.New(), 3, "  ")
		assert.Error(t, err)
	})
}
