package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Package and Addon are read-only reference data within this service.
// Rows are maintained in the database and listed ordered by price.

type Package struct {
	ID             uuid.UUID
	Name           string
	Description    sql.NullString
	PriceCentsEach int64
	IsActive       bool
	CreatedAt      time.Time
}

type Addon struct {
	ID             uuid.UUID
	Name           string
	Description    sql.NullString
	PriceCentsEach int64
	IsActive       bool
	CreatedAt      time.Time
}

type CustomerProfile struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Email     string
	FirstName sql.NullString
	LastName  sql.NullString
	Company   sql.NullString
	Role      string
	Credits   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Referral struct {
	ID             uuid.UUID
	Code           string
	ReferrerUserID uuid.UUID
	RedeemedBy     uuid.NullUUID
	Status         string
	CreatedAt      time.Time
}
