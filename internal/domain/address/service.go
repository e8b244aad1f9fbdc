package address

import (
	"context"
)

// Outcome describes what an upsert or removal did to the stored address
type Outcome string

const (
	OutcomeCreated   Outcome = "created"
	OutcomeUpdated   Outcome = "updated"
	OutcomeDeleted   Outcome = "deleted"
	OutcomeUnchanged Outcome = "unchanged"
)

// PrimaryService maintains the one-address-per-owner rule.
// It is stateless; the repository passed in decides the transaction scope,
// so callers that need atomicity hand in a transactional repository.
type PrimaryService struct{}

// NewPrimaryService creates a new PrimaryService
func NewPrimaryService() *PrimaryService {
	return &PrimaryService{}
}

// UpsertPrimary creates or replaces the owner's single primary address.
// Empty fields clear the owner's addresses instead. Other primaries of the
// owner are demoted before the target row is written.
func (s *PrimaryService) UpsertPrimary(ctx context.Context, repo Repository, owner OwnerRef, fields Fields, defaultType AddressType) (*Address, Outcome, error) {
	if err := owner.Validate(); err != nil {
		return nil, OutcomeUnchanged, err
	}
	if fields.IsEmpty() {
		outcome, err := s.Clear(ctx, repo, owner)
		return nil, outcome, err
	}

	current, err := s.current(ctx, repo, owner)
	if err != nil {
		return nil, OutcomeUnchanged, err
	}

	outcome := OutcomeUpdated
	if current == nil {
		current, err = NewAddress(owner, fields, defaultType)
		if err != nil {
			return nil, OutcomeUnchanged, err
		}
		outcome = OutcomeCreated
	} else if err := current.Replace(fields, defaultType); err != nil {
		return nil, OutcomeUnchanged, err
	}

	current.MarkPrimary()
	if err := repo.DemoteOthers(ctx, owner, current.ID); err != nil {
		return nil, OutcomeUnchanged, err
	}
	if err := repo.Save(ctx, current); err != nil {
		return nil, OutcomeUnchanged, err
	}
	return current, outcome, nil
}

// Clear deletes every address of owner, primary or not, so no leftover row
// can be promoted later
func (s *PrimaryService) Clear(ctx context.Context, repo Repository, owner OwnerRef) (Outcome, error) {
	if err := owner.Validate(); err != nil {
		return OutcomeUnchanged, err
	}
	removed, err := repo.DeleteByOwner(ctx, owner)
	if err != nil {
		return OutcomeUnchanged, err
	}
	if removed == 0 {
		return OutcomeUnchanged, nil
	}
	return OutcomeDeleted, nil
}

// current returns the primary address, falling back to the oldest one
func (s *PrimaryService) current(ctx context.Context, repo Repository, owner OwnerRef) (*Address, error) {
	addresses, err := repo.FindByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}
	if len(addresses) == 0 {
		return nil, nil
	}
	for i := range addresses {
		if addresses[i].IsPrimary {
			return &addresses[i], nil
		}
	}
	return &addresses[0], nil
}
