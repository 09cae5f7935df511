package models

import (
	"time"

	"github.com/bookswap/backend/internal/domain/catalog"
	"github.com/google/uuid"
)

// BookModel is the persistence model for catalog.Book
type BookModel struct {
	AggregateModel
	Title       string    `gorm:"type:varchar(500);not null;index"`
	Author      string    `gorm:"type:varchar(255);not null;index"`
	Category    string    `gorm:"type:varchar(100);not null;index"`
	Year        int       `gorm:"not null;default:0"`
	OwnerUserID uuid.UUID `gorm:"type:uuid;not null;index"`
}

// TableName specifies the table name for BookModel
func (BookModel) TableName() string {
	return "books"
}

// ToDomain converts BookModel to domain Book
func (m *BookModel) ToDomain() *catalog.Book {
	return &catalog.Book{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Title:             m.Title,
		Author:            m.Author,
		Category:          m.Category,
		Year:              m.Year,
		OwnerUserID:       m.OwnerUserID,
	}
}

// BookModelFromDomain converts domain Book to BookModel
func BookModelFromDomain(b *catalog.Book) *BookModel {
	m := &BookModel{
		Title:       b.Title,
		Author:      b.Author,
		Category:    b.Category,
		Year:        b.Year,
		OwnerUserID: b.OwnerUserID,
	}
	m.FromDomainAggregateRoot(b.BaseAggregateRoot)
	return m
}

// CollectionModel is the persistence model for catalog.Collection.
// Member books live in the collection_books join table.
type CollectionModel struct {
	AggregateModel
	Title       string    `gorm:"type:varchar(200);not null"`
	OwnerUserID uuid.UUID `gorm:"type:uuid;not null;index"`
}

// TableName specifies the table name for CollectionModel
func (CollectionModel) TableName() string {
	return "collections"
}

// ToDomain converts CollectionModel to domain Collection.
// BookIDs must be loaded separately from the join table.
func (m *CollectionModel) ToDomain(bookIDs []uuid.UUID) *catalog.Collection {
	if bookIDs == nil {
		bookIDs = make([]uuid.UUID, 0)
	}
	return &catalog.Collection{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Title:             m.Title,
		OwnerUserID:       m.OwnerUserID,
		BookIDs:           bookIDs,
	}
}

// CollectionModelFromDomain converts domain Collection to CollectionModel
func CollectionModelFromDomain(c *catalog.Collection) *CollectionModel {
	m := &CollectionModel{
		Title:       c.Title,
		OwnerUserID: c.OwnerUserID,
	}
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	return m
}

// CollectionBookModel is the join table between collections and books
type CollectionBookModel struct {
	CollectionID uuid.UUID `gorm:"type:uuid;primaryKey"`
	BookID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt    time.Time `gorm:"not null"`
}

// TableName specifies the table name for CollectionBookModel
func (CollectionBookModel) TableName() string {
	return "collection_books"
}

// ReviewModel is the persistence model for catalog.Review
type ReviewModel struct {
	AggregateModel
	Rating     int       `gorm:"not null"`
	Text       string    `gorm:"type:text;not null"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index"`
	BookID     uuid.UUID `gorm:"type:uuid;not null;index"`
	ReviewedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for ReviewModel
func (ReviewModel) TableName() string {
	return "reviews"
}

// ToDomain converts ReviewModel to domain Review
func (m *ReviewModel) ToDomain() *catalog.Review {
	return &catalog.Review{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Rating:            m.Rating,
		Text:              m.Text,
		UserID:            m.UserID,
		BookID:            m.BookID,
		ReviewedAt:        m.ReviewedAt,
	}
}

// ReviewModelFromDomain converts domain Review to ReviewModel
func ReviewModelFromDomain(r *catalog.Review) *ReviewModel {
	m := &ReviewModel{
		Rating:     r.Rating,
		Text:       r.Text,
		UserID:     r.UserID,
		BookID:     r.BookID,
		ReviewedAt: r.ReviewedAt,
	}
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	return m
}
