package domain

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// OwnershipRole distinguishes the exclusive PRIMARY owner from BACKUP owners.
type OwnershipRole string

const (
	RolePrimary OwnershipRole = "PRIMARY"
	RoleBackup  OwnershipRole = "BACKUP"
)

// ParseOwnershipRole accepts the role names case-insensitively.
func ParseOwnershipRole(s string) (OwnershipRole, error) {
	switch OwnershipRole(strings.ToUpper(strings.TrimSpace(s))) {
	case RolePrimary:
		return RolePrimary, nil
	case RoleBackup:
		return RoleBackup, nil
	}
	return "", ErrValidation("invalid role %q: must be PRIMARY or BACKUP", s)
}

// Ownership assigns a contact to a FOBO account over a validity interval.
// Role, account and contact are fixed at creation; only the interval and the
// comment change afterwards.
type Ownership struct {
	ID        uuid.UUID     `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	AccountID int64         `gorm:"column:fobo_account_id;not null;index" json:"fobo_account"`
	ContactID int64         `gorm:"column:contact_id;not null;index" json:"contact"`
	Role      OwnershipRole `gorm:"column:role;type:varchar(16);not null" json:"role"`
	StartDate time.Time     `gorm:"column:start_date;not null" json:"start_date"`
	EndDate   *time.Time    `gorm:"column:end_date" json:"end_date"`
	// Comment keeps NULL and '' apart; both are valid and must round-trip.
	Comment   *string   `gorm:"column:ownership_comment" json:"ownership_comment"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Ownership) TableName() string {
	return "fobo_account_ownerships"
}

// BeforeCreate sets the id when the caller did not.
func (o *Ownership) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// IsBackupOwner mirrors the legacy boolean column name used by clients.
func (o Ownership) IsBackupOwner() bool {
	return o.Role == RoleBackup
}

// Overlaps reports whether the two inclusive intervals share at least one instant.
func (o Ownership) Overlaps(other Ownership) bool {
	if o.EndDate != nil && other.StartDate.After(*o.EndDate) {
		return false
	}
	if other.EndDate != nil && o.StartDate.After(*other.EndDate) {
		return false
	}
	return true
}

// OwnershipPatch lists the mutable fields; omitted fields keep their value.
// EndDate and Comment may be supplied as nil to clear them.
type OwnershipPatch struct {
	StartDate Optional[time.Time]
	EndDate   Optional[*time.Time]
	Comment   Optional[*string]
}

// IsEmpty reports whether no field was supplied.
func (p OwnershipPatch) IsEmpty() bool {
	return !p.StartDate.Set && !p.EndDate.Set && !p.Comment.Set
}

// Apply returns a copy of o with the supplied fields replaced.
func (p OwnershipPatch) Apply(o Ownership) Ownership {
	o.StartDate = p.StartDate.Or(o.StartDate)
	o.EndDate = p.EndDate.Or(o.EndDate)
	o.Comment = p.Comment.Or(o.Comment)
	return o
}

// Columns returns the column updates for the supplied fields.
func (p OwnershipPatch) Columns() map[string]interface{} {
	cols := map[string]interface{}{}
	if p.StartDate.Set {
		cols["start_date"] = p.StartDate.Value
	}
	if p.EndDate.Set {
		cols["end_date"] = p.EndDate.Value
	}
	if p.Comment.Set {
		cols["ownership_comment"] = p.Comment.Value
	}
	return cols
}

// OwnershipEvent is the audit trail row written with every ownership mutation.
type OwnershipEvent struct {
	EventID     uuid.UUID      `gorm:"column:event_id;type:uuid;primaryKey" json:"event_id"`
	OwnershipID uuid.UUID      `gorm:"column:ownership_id;type:uuid;not null;index" json:"ownership_id"`
	EventType   string         `gorm:"column:event_type;type:varchar(20);not null" json:"event_type"`
	EventData   datatypes.JSON `gorm:"column:event_data" json:"event_data"`
	CreatedAt   time.Time      `gorm:"column:created_at" json:"created_at"`
}

func (OwnershipEvent) TableName() string {
	return "fobo_account_ownership_events"
}

func (e *OwnershipEvent) BeforeCreate(tx *gorm.DB) error {
	if e.EventID == uuid.Nil {
		e.EventID = uuid.New()
	}
	return nil
}

const (
	OwnershipEventCreated = "CREATED"
	OwnershipEventUpdated = "UPDATED"
)

// OwnershipGuard vets the record about to be written against every stored
// assignment of its account. Stores run it inside the write transaction with
// the account locked, so a nil error means the write commits as checked.
type OwnershipGuard func(candidate Ownership, account []Ownership) error

// OwnershipStore persists ownership records. It applies each write atomically
// and carries no business rules beyond the guard it is handed. Get and Update
// return a *NotFoundError for unknown ids.
type OwnershipStore interface {
	Insert(ctx context.Context, o *Ownership, guard OwnershipGuard) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, patch OwnershipPatch, guard OwnershipGuard) (*Ownership, error)
	Get(ctx context.Context, id uuid.UUID) (*Ownership, error)
	ListByAccount(ctx context.Context, accountID int64) ([]Ownership, error)
}

// AccountLookup resolves FOBO accounts; unknown ids yield a *NotFoundError.
type AccountLookup interface {
	GetAccount(ctx context.Context, id int64) (*FoboAccount, error)
}

// ContactLookup resolves contacts; unknown ids yield a *NotFoundError.
type ContactLookup interface {
	GetContact(ctx context.Context, id int64) (*Contact, error)
}
