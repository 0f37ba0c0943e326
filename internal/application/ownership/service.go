package ownership

import (
	"context"
	"time"

	"ledger-admin/internal/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Service manages temporary account ownership. It validates intervals and the
// PRIMARY exclusivity rule, persists through Store and derives status with
// domain.ResolveStatus.
type Service struct {
	Store    domain.OwnershipStore
	Accounts domain.AccountLookup
	Contacts domain.ContactLookup
	Clock    domain.Clock
}

// CreateInput carries a new assignment. A nil EndDate is open-ended; a nil
// Comment is stored as absent, distinct from "".
type CreateInput struct {
	AccountID int64
	ContactID int64
	Role      domain.OwnershipRole
	StartDate *time.Time
	EndDate   *time.Time
	Comment   *string
}

// TemporaryOwnerInput adds an owner to the account of an existing assignment.
type TemporaryOwnerInput struct {
	ContactID int64
	StartDate *time.Time
	EndDate   *time.Time
	Comment   *string
}

// WithStatus pairs an assignment with its status at one instant.
type WithStatus struct {
	domain.Ownership
	Status domain.OwnershipStatus `json:"status"`
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Ownership, error) {
	if in.StartDate == nil {
		return nil, domain.ErrValidation("start_date is required")
	}
	role, err := domain.ParseOwnershipRole(string(in.Role))
	if err != nil {
		return nil, err
	}
	o := domain.Ownership{
		AccountID: in.AccountID,
		ContactID: in.ContactID,
		Role:      role,
		StartDate: in.StartDate.UTC(),
		EndDate:   utcPtr(in.EndDate),
		Comment:   in.Comment,
	}
	if err := validateInterval(o); err != nil {
		return nil, err
	}
	if _, err := s.Accounts.GetAccount(ctx, o.AccountID); err != nil {
		return nil, err
	}
	if _, err := s.Contacts.GetContact(ctx, o.ContactID); err != nil {
		return nil, err
	}

	id, err := s.Store.Insert(ctx, &o, primaryExclusive)
	if err != nil {
		return nil, err
	}
	o.ID = id
	zerolog.Ctx(ctx).Info().Str("ownership_id", id.String()).Int64("fobo_account", o.AccountID).Str("role", string(o.Role)).Msg("ownership created")
	return &o, nil
}

// AddTemporaryOwner creates an assignment on the same account and with the
// same role as the referenced one.
func (s *Service) AddTemporaryOwner(ctx context.Context, ownershipID uuid.UUID, in TemporaryOwnerInput) (*domain.Ownership, error) {
	ref, err := s.Store.Get(ctx, ownershipID)
	if err != nil {
		return nil, err
	}
	return s.Create(ctx, CreateInput{
		AccountID: ref.AccountID,
		ContactID: in.ContactID,
		Role:      ref.Role,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		Comment:   in.Comment,
	})
}

// Update changes the supplied fields only. The interval and the PRIMARY rule
// are checked against the merged record inside the store's write.
func (s *Service) Update(ctx context.Context, id uuid.UUID, patch domain.OwnershipPatch) (*domain.Ownership, error) {
	if patch.StartDate.Set {
		patch.StartDate.Value = patch.StartDate.Value.UTC()
	}
	if patch.EndDate.Set {
		patch.EndDate.Value = utcPtr(patch.EndDate.Value)
	}

	datesChanged := patch.StartDate.Set || patch.EndDate.Set
	updated, err := s.Store.Update(ctx, id, patch, func(merged domain.Ownership, account []domain.Ownership) error {
		if err := validateInterval(merged); err != nil {
			return err
		}
		if !datesChanged {
			return nil
		}
		return primaryExclusive(merged, account)
	})
	if err != nil {
		return nil, err
	}
	zerolog.Ctx(ctx).Info().Str("ownership_id", id.String()).Int("fields", len(patch.Columns())).Msg("ownership updated")
	return updated, nil
}

// GetWithStatus loads one assignment and derives its status from a single
// clock sample.
func (s *Service) GetWithStatus(ctx context.Context, id uuid.UUID) (*domain.Ownership, domain.OwnershipStatus, error) {
	o, err := s.Store.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	return o, domain.ResolveStatus(o.StartDate, o.EndDate, s.Clock.Now()), nil
}

// ListByAccount returns every assignment of an account with its status. All
// statuses are derived from the same instant.
func (s *Service) ListByAccount(ctx context.Context, accountID int64) ([]WithStatus, error) {
	if _, err := s.Accounts.GetAccount(ctx, accountID); err != nil {
		return nil, err
	}
	list, err := s.Store.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	now := s.Clock.Now()
	out := make([]WithStatus, len(list))
	for i, o := range list {
		out[i] = WithStatus{Ownership: o, Status: domain.ResolveStatus(o.StartDate, o.EndDate, now)}
	}
	return out, nil
}

func validateInterval(o domain.Ownership) error {
	if o.StartDate.IsZero() {
		return domain.ErrValidation("start_date is required")
	}
	if o.EndDate != nil && o.EndDate.Before(o.StartDate) {
		return domain.ErrInvalidInterval
	}
	return nil
}

// primaryExclusive rejects a PRIMARY interval that overlaps another PRIMARY
// assignment of the same account.
func primaryExclusive(o domain.Ownership, account []domain.Ownership) error {
	if o.Role != domain.RolePrimary {
		return nil
	}
	for _, other := range account {
		if other.ID == o.ID || other.Role != domain.RolePrimary {
			continue
		}
		if o.Overlaps(other) {
			return domain.ErrConflict("primary ownership overlaps ownership %s of fobo account %d", other.ID, o.AccountID)
		}
	}
	return nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
