package partner

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/forniture-store/backend/internal/domain/address"
	"github.com/forniture-store/backend/internal/domain/integration"
	"github.com/forniture-store/backend/internal/domain/partner"
	"github.com/forniture-store/backend/internal/domain/shared"
	"github.com/forniture-store/backend/internal/infrastructure/telemetry"
)

// ErrSaveFailed marks persistence failures of a save; the owner write was rolled back
var ErrSaveFailed = errors.New("partner: save failed")

// CompanyLookup resolves a CNPJ against a company registry.
// Failures are reported as not found.
type CompanyLookup interface {
	LookupCompanyByTaxID(ctx context.Context, taxID string) (*integration.CompanyProfile, bool)
}

// SaveResult reports what a save did
type SaveResult struct {
	Enriched bool             // registry names were applied to the owner
	Action   AddressAction    // resolved address step
	Outcome  address.Outcome  // what happened to the stored address
	Address  *address.Address // primary address after the save, nil when none was written
}

// SaveWorkflow saves an owner and its primary address as one unit:
// enrich, validate, persist the owner, then apply the address action.
// The last two steps share a transaction.
type SaveWorkflow struct {
	scope     TransactionScope
	lookup    CompanyLookup
	addresses *address.PrimaryService
	logger    *zap.Logger
}

// NewSaveWorkflow creates a SaveWorkflow. lookup may be nil, which disables enrichment.
func NewSaveWorkflow(scope TransactionScope, lookup CompanyLookup, logger *zap.Logger) *SaveWorkflow {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SaveWorkflow{
		scope:     scope,
		lookup:    lookup,
		addresses: address.NewPrimaryService(),
		logger:    logger,
	}
}

// ownerStore adapts the customer and supplier repositories to one shape
type ownerStore struct {
	exists func(ctx context.Context, repos TransactionalRepositories, taxID string, excludeID uuid.UUID) (bool, error)
	save   func(ctx context.Context, repos TransactionalRepositories) error
}

// SaveCustomer runs the workflow for a customer.
// addr nil means the caller sent no address.
func (w *SaveWorkflow) SaveCustomer(ctx context.Context, customer *partner.Customer, addr *address.Fields) (*SaveResult, error) {
	return w.save(ctx, customer, addr, ownerStore{
		exists: func(ctx context.Context, repos TransactionalRepositories, taxID string, excludeID uuid.UUID) (bool, error) {
			return repos.Customers().ExistsByTaxID(ctx, taxID, excludeID)
		},
		save: func(ctx context.Context, repos TransactionalRepositories) error {
			return repos.Customers().Save(ctx, customer)
		},
	})
}

// SaveSupplier runs the workflow for a supplier.
// addr nil means the caller sent no address.
func (w *SaveWorkflow) SaveSupplier(ctx context.Context, supplier *partner.Supplier, addr *address.Fields) (*SaveResult, error) {
	return w.save(ctx, supplier, addr, ownerStore{
		exists: func(ctx context.Context, repos TransactionalRepositories, taxID string, excludeID uuid.UUID) (bool, error) {
			return repos.Suppliers().ExistsByTaxID(ctx, taxID, excludeID)
		},
		save: func(ctx context.Context, repos TransactionalRepositories) error {
			return repos.Suppliers().Save(ctx, supplier)
		},
	})
}

func (w *SaveWorkflow) save(ctx context.Context, owner partner.Owner, addr *address.Fields, store ownerStore) (*SaveResult, error) {
	party := owner.GetParty()
	ref := owner.OwnerRef()

	ctx, span := telemetry.StartServiceSpan(ctx, "partner", "save",
		telemetry.WithAttribute(telemetry.SpanAttrOwnerKind, string(ref.Kind)),
		telemetry.WithAttribute(telemetry.SpanAttrOwnerID, ref.ID.String()),
		telemetry.WithAttribute(telemetry.SpanAttrPartyType, string(party.Type)))
	defer span.End()

	result := &SaveResult{Outcome: address.OutcomeUnchanged}

	// Enrichment runs before the transaction so that no connection is held
	// while the registry is being called.
	var company *integration.CompanyProfile
	if w.lookup != nil && party.NeedsCompanyLookup() {
		if profile, ok := w.lookup.LookupCompanyByTaxID(ctx, party.TaxID); ok {
			company = profile
			result.Enriched = owner.ApplyCompanyProfile(profile)
		}
	}

	if err := owner.Validate(); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	result.Action = ResolveAddressAction(addr, party.Type, company)
	telemetry.SetAttributes(span, telemetry.SpanAttrAddressAction, string(result.Action))

	err := w.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		taken, err := store.exists(ctx, repos, party.TaxID, ref.ID)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrSaveFailed, err)
		}
		if taken {
			verrs := make(shared.ValidationErrors)
			verrs.Add("tax_id", shared.NewDomainError("ALREADY_EXISTS", "Tax ID is already registered"))
			return verrs
		}

		if err := store.save(ctx, repos); err != nil {
			return fmt.Errorf("%w: %w", ErrSaveFailed, err)
		}

		return w.applyAddress(ctx, repos.Addresses(), ref, party.Type, addr, company, result)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.SetAttributes(span, telemetry.SpanAttrAddressAction, string(result.Action))
	if result.Outcome != address.OutcomeUnchanged {
		w.logger.Info("Address saved",
			zap.String("owner", ref.String()),
			zap.String("outcome", string(result.Outcome)),
			zap.String("source", result.Action.Source()))
	}
	telemetry.SetOK(span)
	return result, nil
}

func (w *SaveWorkflow) applyAddress(
	ctx context.Context,
	repo address.Repository,
	ref address.OwnerRef,
	partyType partner.PartyType,
	addr *address.Fields,
	company *integration.CompanyProfile,
	result *SaveResult,
) error {
	var (
		fields address.Fields
		err    error
	)
	switch result.Action {
	case ActionKeep:
		return nil
	case ActionDelete:
		result.Outcome, err = w.addresses.Clear(ctx, repo, ref)
		return wrapAddressError(err)
	case ActionUpsertFromCaller:
		fields = *addr
	case ActionUpsertFromLookup:
		fields = company.Address
	}

	result.Address, result.Outcome, err = w.addresses.UpsertPrimary(ctx, repo, ref, fields, partyType.DefaultAddressType())
	if err != nil && result.Action == ActionUpsertFromLookup && isRejectedAddress(err) {
		// registry data the caller never sent must not fail the save
		w.logger.Warn("Registry address rejected, keeping current address",
			zap.String("owner", ref.String()),
			zap.Error(err))
		result.Action = ActionKeep
		result.Address, result.Outcome = nil, address.OutcomeUnchanged
		return nil
	}
	return wrapAddressError(err)
}

// isRejectedAddress reports whether err is a validation failure of the
// address values rather than a storage failure
func isRejectedAddress(err error) bool {
	if _, ok := shared.AsValidationErrors(err); ok {
		return true
	}
	var derr *shared.DomainError
	return errors.As(err, &derr) && !errors.Is(err, shared.ErrNotFound)
}

// wrapAddressError keys address validation errors under "address." and marks
// everything else as a failed save
func wrapAddressError(err error) error {
	if err == nil {
		return nil
	}
	if verrs, ok := shared.AsValidationErrors(err); ok {
		prefixed := make(shared.ValidationErrors)
		prefixed.Merge("address.", verrs)
		return prefixed
	}
	var derr *shared.DomainError
	if errors.As(err, &derr) && !errors.Is(err, shared.ErrNotFound) {
		prefixed := make(shared.ValidationErrors)
		prefixed.Add("address", derr)
		return prefixed
	}
	return fmt.Errorf("%w: %w", ErrSaveFailed, err)
}
