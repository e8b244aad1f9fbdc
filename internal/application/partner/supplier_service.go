package partner

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/forniture-store/backend/internal/domain/address"
	"github.com/forniture-store/backend/internal/domain/partner"
	"github.com/forniture-store/backend/internal/domain/shared"
)

// SupplierService handles supplier-related business operations
type SupplierService struct {
	supplierRepo partner.SupplierRepository
	addressRepo  address.Repository
	scope        TransactionScope
	workflow     *SaveWorkflow
	logger       *zap.Logger
}

// NewSupplierService creates a new SupplierService
func NewSupplierService(
	supplierRepo partner.SupplierRepository,
	addressRepo address.Repository,
	scope TransactionScope,
	workflow *SaveWorkflow,
	logger *zap.Logger,
) *SupplierService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SupplierService{
		supplierRepo: supplierRepo,
		addressRepo:  addressRepo,
		scope:        scope,
		workflow:     workflow,
		logger:       logger,
	}
}

// Create creates a new supplier. CORP suppliers are enriched from the
// company registry before validation, so names may be left blank.
func (s *SupplierService) Create(ctx context.Context, req CreateSupplierRequest) (*SupplierResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	supplier, err := partner.NewSupplier(partner.PartyType(req.PartyType), req.LegalName, req.TaxID)
	if err != nil {
		return nil, err
	}
	supplier.PreferredName = req.PreferredName
	supplier.Phone = req.Phone
	supplier.Email = req.Email
	supplier.StateRegistration = req.StateRegistration
	supplier.MunicipalRegistration = req.MunicipalRegistration
	supplier.ContactPerson = req.ContactPerson
	supplier.BankName = req.BankName
	supplier.BankAgency = req.BankAgency
	supplier.BankAccount = req.BankAccount
	supplier.PixKey = req.PixKey
	supplier.Notes = req.Notes

	result, err := s.workflow.SaveSupplier(ctx, supplier, req.Address)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Supplier created",
		zap.String("supplier_id", supplier.ID.String()),
		zap.String("party_type", string(supplier.Type)),
		zap.Bool("enriched", result.Enriched))

	response := ToSupplierResponse(supplier, result.Address)
	return &response, nil
}

// GetByID retrieves a supplier and its primary address
func (s *SupplierService) GetByID(ctx context.Context, id uuid.UUID) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	primary, err := findPrimary(ctx, s.addressRepo, supplier.OwnerRef())
	if err != nil {
		return nil, err
	}
	response := ToSupplierResponse(supplier, primary)
	return &response, nil
}

// List retrieves a page of suppliers with their primary addresses
func (s *SupplierService) List(ctx context.Context, filter SupplierListFilter) (*shared.Paginated[SupplierResponse], error) {
	if err := validateRequest(filter); err != nil {
		return nil, err
	}

	domainFilter := toFilter(filter.Search, filter.PartyType, filter.IsActive,
		filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir)

	suppliers, err := s.supplierRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.supplierRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(suppliers))
	for i := range suppliers {
		ids[i] = suppliers[i].ID
	}
	primaries, err := s.addressRepo.FindPrimaryByOwners(ctx, address.OwnerKindSupplier, ids)
	if err != nil {
		return nil, err
	}

	items := make([]SupplierResponse, len(suppliers))
	for i := range suppliers {
		items[i] = ToSupplierResponse(&suppliers[i], primaries[suppliers[i].ID])
	}
	page := shared.NewPaginated(items, total, domainFilter.Page, domainFilter.PageSize)
	return &page, nil
}

// Update applies a partial update and runs the save workflow again
func (s *SupplierService) Update(ctx context.Context, id uuid.UUID, req UpdateSupplierRequest) (*SupplierResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.PartyType != nil {
		partyType := partner.PartyType(*req.PartyType)
		if !partyType.IsValid() {
			return nil, shared.NewDomainError("INVALID_TYPE", "Supplier type must be IND or CORP")
		}
		supplier.Type = partyType
	}
	assign(&supplier.LegalName, req.LegalName)
	assign(&supplier.PreferredName, req.PreferredName)
	assign(&supplier.TaxID, req.TaxID)
	assign(&supplier.Phone, req.Phone)
	assign(&supplier.Email, req.Email)
	assign(&supplier.StateRegistration, req.StateRegistration)
	assign(&supplier.MunicipalRegistration, req.MunicipalRegistration)
	assign(&supplier.ContactPerson, req.ContactPerson)
	assign(&supplier.BankName, req.BankName)
	assign(&supplier.BankAgency, req.BankAgency)
	assign(&supplier.BankAccount, req.BankAccount)
	assign(&supplier.PixKey, req.PixKey)
	assign(&supplier.Notes, req.Notes)
	supplier.Touch()

	result, err := s.workflow.SaveSupplier(ctx, supplier, req.Address)
	if err != nil {
		return nil, err
	}

	primary := result.Address
	if result.Action == ActionKeep {
		if primary, err = findPrimary(ctx, s.addressRepo, supplier.OwnerRef()); err != nil {
			return nil, err
		}
	}
	response := ToSupplierResponse(supplier, primary)
	return &response, nil
}

// Delete removes a supplier and every address it owns
func (s *SupplierService) Delete(ctx context.Context, id uuid.UUID) error {
	owner := address.OwnerRef{Kind: address.OwnerKindSupplier, ID: id}
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.Suppliers().Delete(ctx, id); err != nil {
			return err
		}
		if _, err := repos.Addresses().DeleteByOwner(ctx, owner); err != nil {
			return fmt.Errorf("delete supplier addresses: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("Supplier deleted", zap.String("supplier_id", id.String()))
	return nil
}

// Activate activates a supplier
func (s *SupplierService) Activate(ctx context.Context, id uuid.UUID) (*SupplierResponse, error) {
	return s.setActive(ctx, id, (*partner.Supplier).Activate)
}

// Deactivate deactivates a supplier
func (s *SupplierService) Deactivate(ctx context.Context, id uuid.UUID) (*SupplierResponse, error) {
	return s.setActive(ctx, id, (*partner.Supplier).Deactivate)
}

func (s *SupplierService) setActive(ctx context.Context, id uuid.UUID, change func(*partner.Supplier) error) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := change(supplier); err != nil {
		return nil, err
	}
	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}
	primary, err := findPrimary(ctx, s.addressRepo, supplier.OwnerRef())
	if err != nil {
		return nil, err
	}
	response := ToSupplierResponse(supplier, primary)
	return &response, nil
}
