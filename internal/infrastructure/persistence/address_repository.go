package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/forniture-store/backend/internal/domain/address"
	"github.com/forniture-store/backend/internal/domain/shared"
	"github.com/forniture-store/backend/internal/infrastructure/persistence/models"
)

// GormAddressRepository implements address.Repository using GORM
type GormAddressRepository struct {
	db *gorm.DB
}

// NewGormAddressRepository creates a new GormAddressRepository
func NewGormAddressRepository(db *gorm.DB) *GormAddressRepository {
	return &GormAddressRepository{db: db}
}

func (r *GormAddressRepository) ownedBy(ctx context.Context, owner address.OwnerRef) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.AddressModel{}).
		Where("owner_kind = ? AND owner_id = ?", owner.Kind, owner.ID)
}

// FindByID finds an address by its ID
func (r *GormAddressRepository) FindByID(ctx context.Context, id uuid.UUID) (*address.Address, error) {
	var model models.AddressModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByOwner returns every address of owner, primary first then oldest first
func (r *GormAddressRepository) FindByOwner(ctx context.Context, owner address.OwnerRef) ([]address.Address, error) {
	var addressModels []models.AddressModel
	if err := r.ownedBy(ctx, owner).
		Order("is_primary DESC").Order("created_at ASC").Order("id ASC").
		Find(&addressModels).Error; err != nil {
		return nil, err
	}

	addresses := make([]address.Address, len(addressModels))
	for i := range addressModels {
		addresses[i] = *addressModels[i].ToDomain()
	}
	return addresses, nil
}

// FindPrimary returns the owner's primary address
func (r *GormAddressRepository) FindPrimary(ctx context.Context, owner address.OwnerRef) (*address.Address, error) {
	var model models.AddressModel
	if err := r.ownedBy(ctx, owner).Where("is_primary = ?", true).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindPrimaryByOwners returns the primary address of each owner that has one
func (r *GormAddressRepository) FindPrimaryByOwners(ctx context.Context, kind address.OwnerKind, ownerIDs []uuid.UUID) (map[uuid.UUID]*address.Address, error) {
	result := make(map[uuid.UUID]*address.Address, len(ownerIDs))
	if len(ownerIDs) == 0 {
		return result, nil
	}

	var addressModels []models.AddressModel
	if err := r.db.WithContext(ctx).
		Where("owner_kind = ? AND owner_id IN ? AND is_primary = ?", kind, ownerIDs, true).
		Find(&addressModels).Error; err != nil {
		return nil, err
	}
	for i := range addressModels {
		result[addressModels[i].OwnerID] = addressModels[i].ToDomain()
	}
	return result, nil
}

// Save creates or updates an address
func (r *GormAddressRepository) Save(ctx context.Context, a *address.Address) error {
	model := models.AddressModelFromDomain(a)
	return r.db.WithContext(ctx).Save(model).Error
}

// DemoteOthers clears the primary flag on every address of owner except keepID
func (r *GormAddressRepository) DemoteOthers(ctx context.Context, owner address.OwnerRef, keepID uuid.UUID) error {
	return r.ownedBy(ctx, owner).
		Where("is_primary = ? AND id <> ?", true, keepID).
		Update("is_primary", false).Error
}

// Delete deletes an address
func (r *GormAddressRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.AddressModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteByOwner deletes every address of owner
func (r *GormAddressRepository) DeleteByOwner(ctx context.Context, owner address.OwnerRef) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("owner_kind = ? AND owner_id = ?", owner.Kind, owner.ID).
		Delete(&models.AddressModel{})
	return result.RowsAffected, result.Error
}

// CountPrimary counts the owner's primary addresses
func (r *GormAddressRepository) CountPrimary(ctx context.Context, owner address.OwnerRef) (int64, error) {
	var count int64
	if err := r.ownedBy(ctx, owner).Where("is_primary = ?", true).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormAddressRepository implements address.Repository
var _ address.Repository = (*GormAddressRepository)(nil)
