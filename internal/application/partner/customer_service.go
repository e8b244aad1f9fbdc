package partner

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/forniture-store/backend/internal/domain/address"
	"github.com/forniture-store/backend/internal/domain/partner"
	"github.com/forniture-store/backend/internal/domain/shared"
)

// CustomerService handles customer-related business operations
type CustomerService struct {
	customerRepo partner.CustomerRepository
	addressRepo  address.Repository
	scope        TransactionScope
	workflow     *SaveWorkflow
	logger       *zap.Logger
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(
	customerRepo partner.CustomerRepository,
	addressRepo address.Repository,
	scope TransactionScope,
	workflow *SaveWorkflow,
	logger *zap.Logger,
) *CustomerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CustomerService{
		customerRepo: customerRepo,
		addressRepo:  addressRepo,
		scope:        scope,
		workflow:     workflow,
		logger:       logger,
	}
}

// Create creates a new customer together with its optional primary address
func (s *CustomerService) Create(ctx context.Context, req CreateCustomerRequest) (*CustomerResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	customer, err := partner.NewCustomer(partner.PartyType(req.PartyType), req.LegalName, req.TaxID)
	if err != nil {
		return nil, err
	}
	customer.PreferredName = req.PreferredName
	customer.Phone = req.Phone
	customer.Email = req.Email
	customer.IsVIP = req.IsVIP
	customer.Profession = req.Profession
	customer.Interests = req.Interests
	customer.Notes = req.Notes

	result, err := s.workflow.SaveCustomer(ctx, customer, req.Address)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Customer created",
		zap.String("customer_id", customer.ID.String()),
		zap.String("party_type", string(customer.Type)),
		zap.Bool("enriched", result.Enriched))

	response := ToCustomerResponse(customer, result.Address)
	return &response, nil
}

// GetByID retrieves a customer and its primary address
func (s *CustomerService) GetByID(ctx context.Context, id uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	primary, err := findPrimary(ctx, s.addressRepo, customer.OwnerRef())
	if err != nil {
		return nil, err
	}
	response := ToCustomerResponse(customer, primary)
	return &response, nil
}

// List retrieves a page of customers with their primary addresses
func (s *CustomerService) List(ctx context.Context, filter CustomerListFilter) (*shared.Paginated[CustomerResponse], error) {
	if err := validateRequest(filter); err != nil {
		return nil, err
	}

	domainFilter := toFilter(filter.Search, filter.PartyType, filter.IsActive,
		filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir)
	if filter.IsVIP != nil {
		domainFilter.Filters[partner.FilterIsVIP] = *filter.IsVIP
	}

	customers, err := s.customerRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.customerRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(customers))
	for i := range customers {
		ids[i] = customers[i].ID
	}
	primaries, err := s.addressRepo.FindPrimaryByOwners(ctx, address.OwnerKindCustomer, ids)
	if err != nil {
		return nil, err
	}

	items := make([]CustomerResponse, len(customers))
	for i := range customers {
		items[i] = ToCustomerResponse(&customers[i], primaries[customers[i].ID])
	}
	page := shared.NewPaginated(items, total, domainFilter.Page, domainFilter.PageSize)
	return &page, nil
}

// Update applies a partial update and runs the save workflow again.
// The address payload follows the same rules as Create.
func (s *CustomerService) Update(ctx context.Context, id uuid.UUID, req UpdateCustomerRequest) (*CustomerResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.PartyType != nil {
		partyType := partner.PartyType(*req.PartyType)
		if !partyType.IsValid() {
			return nil, shared.NewDomainError("INVALID_TYPE", "Customer type must be IND or CORP")
		}
		customer.Type = partyType
	}
	assign(&customer.LegalName, req.LegalName)
	assign(&customer.PreferredName, req.PreferredName)
	assign(&customer.TaxID, req.TaxID)
	assign(&customer.Phone, req.Phone)
	assign(&customer.Email, req.Email)
	assign(&customer.Profession, req.Profession)
	assign(&customer.Interests, req.Interests)
	assign(&customer.Notes, req.Notes)
	if req.IsVIP != nil {
		customer.IsVIP = *req.IsVIP
	}
	customer.Touch()

	result, err := s.workflow.SaveCustomer(ctx, customer, req.Address)
	if err != nil {
		return nil, err
	}

	primary := result.Address
	if result.Action == ActionKeep {
		if primary, err = findPrimary(ctx, s.addressRepo, customer.OwnerRef()); err != nil {
			return nil, err
		}
	}
	response := ToCustomerResponse(customer, primary)
	return &response, nil
}

// Delete removes a customer and every address it owns
func (s *CustomerService) Delete(ctx context.Context, id uuid.UUID) error {
	owner := address.OwnerRef{Kind: address.OwnerKindCustomer, ID: id}
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.Customers().Delete(ctx, id); err != nil {
			return err
		}
		removed, err := repos.Addresses().DeleteByOwner(ctx, owner)
		if err != nil {
			return fmt.Errorf("delete customer addresses: %w", err)
		}
		s.logger.Debug("Customer addresses removed",
			zap.String("customer_id", id.String()),
			zap.Int64("count", removed))
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("Customer deleted", zap.String("customer_id", id.String()))
	return nil
}

// Activate activates a customer
func (s *CustomerService) Activate(ctx context.Context, id uuid.UUID) (*CustomerResponse, error) {
	return s.setActive(ctx, id, (*partner.Customer).Activate)
}

// Deactivate deactivates a customer
func (s *CustomerService) Deactivate(ctx context.Context, id uuid.UUID) (*CustomerResponse, error) {
	return s.setActive(ctx, id, (*partner.Customer).Deactivate)
}

func (s *CustomerService) setActive(ctx context.Context, id uuid.UUID, change func(*partner.Customer) error) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := change(customer); err != nil {
		return nil, err
	}
	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	primary, err := findPrimary(ctx, s.addressRepo, customer.OwnerRef())
	if err != nil {
		return nil, err
	}
	response := ToCustomerResponse(customer, primary)
	return &response, nil
}

// findPrimary returns the owner's primary address, nil when it has none
func findPrimary(ctx context.Context, repo address.Repository, owner address.OwnerRef) (*address.Address, error) {
	primary, err := repo.FindPrimary(ctx, owner)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, nil
	}
	return primary, err
}

func assign(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
