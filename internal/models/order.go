package models

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// OrderStatus values an order moves through after submission.
type OrderStatus string

const (
	StatusPending      OrderStatus = "pending"
	StatusProcessing   OrderStatus = "processing"
	StatusQualityCheck OrderStatus = "quality_check"
	StatusRevision     OrderStatus = "revision"
	StatusCompleted    OrderStatus = "completed"
	StatusDelivered    OrderStatus = "delivered"
	StatusCancelled    OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusQualityCheck, StatusRevision,
		StatusCompleted, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

type Order struct {
	ID                 uuid.UUID
	UserID             uuid.UUID
	Status             OrderStatus
	PhotoType          string
	PackageID          uuid.UUID
	AddonIDs           []uuid.UUID
	ImageCount         int
	GrossCents         int64
	CreditCentsApplied int64
	FinalCents         int64
	Email              string
	Company            sql.NullString
	ObjectReference    sql.NullString
	SpecialRequests    sql.NullString
	PaymentIntentID    sql.NullString
	PaidAt             sql.NullTime
	Metadata           json.RawMessage
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// AdminOrder is an order joined with the owning customer profile for the
// back-office views.
type AdminOrder struct {
	Order
	CustomerEmail   string
	FirstName       sql.NullString
	LastName        sql.NullString
	CustomerCompany sql.NullString
}

type OrderImage struct {
	ID          uuid.UUID
	OrderID     uuid.UUID
	UserID      uuid.UUID
	Filename    string
	StoragePath string
	StorageURL  string
	FileSize    sql.NullInt64
	MimeType    string
	IsProcessed bool
	CreatedAt   time.Time
}

type OrderNotification struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	UserID    uuid.UUID
	Status    OrderStatus
	Note      sql.NullString
	IsRead    bool
	CreatedAt time.Time
}
