package shared

import "time"

// ID is the storage-assigned identifier shared by all entities.
// Zero means the entity has not been persisted yet.
type ID = uint

// Entity is the base interface for all domain entities
type Entity interface {
	GetID() ID
	IsNew() bool
}

// BaseEntity provides common fields for all entities
type BaseEntity struct {
	ID        ID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GetID returns the entity ID
func (e *BaseEntity) GetID() ID {
	return e.ID
}

// IsNew reports whether the entity has not been assigned an ID yet
func (e *BaseEntity) IsNew() bool {
	return e.ID == 0
}

// Touch updates the last modification timestamp
func (e *BaseEntity) Touch() {
	e.UpdatedAt = time.Now()
}

// NewBaseEntity creates a base entity without an ID; persistence assigns it
func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{
		CreatedAt: now,
		UpdatedAt: now,
	}
}
