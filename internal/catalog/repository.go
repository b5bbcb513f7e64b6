package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	ListPackages(ctx context.Context, query PackageListQuery) ([]Package, error)
	GetPackageByID(ctx context.Context, id uuid.UUID) (*Package, error)
	ListExtras(ctx context.Context) ([]Extra, error)
	GetExtrasByIDs(ctx context.Context, ids []uuid.UUID) ([]Extra, error)
	GetExtraByKind(ctx context.Context, kind ExtraKind) (*Extra, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListPackages(ctx context.Context, query PackageListQuery) ([]Package, error) {
	var packages []Package

	q := r.db.WithContext(ctx).Model(&Package{}).Where("active = ?", true)

	if query.Country != "" {
		q = q.Where("country = ?", query.Country)
	}
	if query.MinRating > 0 {
		q = q.Where("rating >= ?", query.MinRating)
	}
	if query.MaxPrice > 0 {
		q = q.Where("price_per_adult <= ?", query.MaxPrice)
	}

	err := q.Order("rating DESC, name ASC").Find(&packages).Error
	return packages, err
}

func (r *repository) GetPackageByID(ctx context.Context, id uuid.UUID) (*Package, error) {
	var pkg Package
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&pkg).Error
	if err != nil {
		return nil, err
	}
	return &pkg, nil
}

func (r *repository) ListExtras(ctx context.Context) ([]Extra, error) {
	var extras []Extra
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("kind ASC, name ASC").
		Find(&extras).Error
	return extras, err
}

func (r *repository) GetExtrasByIDs(ctx context.Context, ids []uuid.UUID) ([]Extra, error) {
	var extras []Extra
	if len(ids) == 0 {
		return extras, nil
	}
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Where("active = ?", true).
		Find(&extras).Error
	return extras, err
}

func (r *repository) GetExtraByKind(ctx context.Context, kind ExtraKind) (*Extra, error) {
	var extra Extra
	err := r.db.WithContext(ctx).
		Where("kind = ?", kind).
		Where("active = ?", true).
		Order("created_at ASC").
		First(&extra).Error
	if err != nil {
		return nil, err
	}
	return &extra, nil
}
