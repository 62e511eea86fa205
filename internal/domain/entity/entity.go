package entity

import (
	"time"

	"github.com/google/uuid"
)

// Base carries the identity and audit fields shared by every persisted aggregate.
// Timestamps are owned by the unit of work; gorm's automatic stamping is disabled.
type Base struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time  `gorm:"not null;autoCreateTime:false"`
	UpdatedAt *time.Time `gorm:"autoUpdateTime:false"`
}

// Auditable is implemented by entities whose audit fields are stamped at commit.
type Auditable interface {
	GetID() uuid.UUID
	MarkCreated(at time.Time)
	MarkUpdated(at time.Time)
}

// Pointer constrains generic repositories to pointers of auditable entities.
type Pointer[T any] interface {
	*T
	Auditable
}

func (b *Base) GetID() uuid.UUID { return b.ID }

// MarkCreated sets CreatedAt and clears UpdatedAt, which stays nil until the first modification.
func (b *Base) MarkCreated(at time.Time) {
	b.CreatedAt = at
	b.UpdatedAt = nil
}

func (b *Base) MarkUpdated(at time.Time) {
	b.UpdatedAt = &at
}

// NewID returns a time ordered identifier for new aggregates.
func NewID() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return id
}
