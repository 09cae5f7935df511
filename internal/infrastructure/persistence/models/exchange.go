package models

import (
	"time"

	"github.com/bookswap/backend/internal/domain/exchange"
	"github.com/google/uuid"
)

// ExchangeModel is the persistence model for exchange.Exchange.
// The table keeps its historical name "transactions".
type ExchangeModel struct {
	AggregateModel
	Date       time.Time `gorm:"not null;index"`
	FromUserID uuid.UUID `gorm:"type:uuid;not null;index"`
	ToUserID   uuid.UUID `gorm:"type:uuid;not null;index"`
	BookID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Place      string    `gorm:"type:varchar(255);not null"`
	Status     string    `gorm:"type:varchar(20);not null;default:'pending';index"`
}

// TableName specifies the table name for ExchangeModel
func (ExchangeModel) TableName() string {
	return "transactions"
}

// ToDomain converts ExchangeModel to domain Exchange
func (m *ExchangeModel) ToDomain() *exchange.Exchange {
	return &exchange.Exchange{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Date:              m.Date,
		FromUserID:        m.FromUserID,
		ToUserID:          m.ToUserID,
		BookID:            m.BookID,
		Place:             m.Place,
		Status:            exchange.Status(m.Status),
	}
}

// ExchangeModelFromDomain converts domain Exchange to ExchangeModel
func ExchangeModelFromDomain(e *exchange.Exchange) *ExchangeModel {
	m := &ExchangeModel{
		Date:       e.Date,
		FromUserID: e.FromUserID,
		ToUserID:   e.ToUserID,
		BookID:     e.BookID,
		Place:      e.Place,
		Status:     string(e.Status),
	}
	m.FromDomainAggregateRoot(e.BaseAggregateRoot)
	return m
}
