package database

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type ContentItem struct {
	ID            uuid.UUID
	Kind          string
	OwnerID       uuid.UUID
	Body          string
	AudienceScope string
	GroupID       uuid.NullUUID
	DeletedAt     sql.NullTime
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type ShareCounter struct {
	ItemID uuid.UUID
	Count  int64
}

type Reshare struct {
	ID               uuid.UUID
	SourceKind       string
	SourceItemID     uuid.UUID
	OriginRootID     uuid.UUID
	ActorID          uuid.UUID
	DestinationScope string
	Commentary       sql.NullString
	CreatedAt        time.Time
}

type ShareEvent struct {
	ID         uuid.UUID
	ItemID     uuid.UUID
	Channel    string
	ActorID    uuid.NullUUID
	OccurredAt time.Time
}

type ApiToken struct {
	ID        uuid.UUID
	ActorID   uuid.UUID
	TokenHash string
	CreatedAt time.Time
}
