package catalog

import (
	"context"
	"errors"
	"fmt"

	"tourwise/internal/pricing"
	"tourwise/internal/shared/constants"
	"tourwise/pkg/cache"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrPackageNotFound is returned when a package does not exist or is inactive.
var ErrPackageNotFound = errors.New("package not found")

// PackageInfo is the snapshot of a package the wizard embeds into a draft.
// Snapshotting keeps an in-flight booking stable if the catalog changes.
type PackageInfo struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Country       string    `json:"country"`
	DurationLabel string    `json:"duration_label"`
	PricePerAdult float64   `json:"price_per_adult"`
}

// Service defines the catalog business logic.
type Service interface {
	SetCacheService(cacheService cache.Service)

	ListPackages(ctx context.Context, query PackageListQuery) ([]PackageResponse, error)
	GetPackage(ctx context.Context, id string) (*PackageResponse, error)
	ListExtras(ctx context.Context) ([]Extra, error)

	// Wizard-facing lookups.
	PackageByID(ctx context.Context, id uuid.UUID) (*PackageInfo, error)
	ExtraCharges(ctx context.Context, insurance, carRental bool, excursionIDs []uuid.UUID) ([]pricing.LineItem, error)
}

type service struct {
	repo         Repository
	rates        pricing.Rates
	cacheService cache.Service
}

// NewService creates a new catalog service instance.
func NewService(repo Repository, rates pricing.Rates) Service {
	return &service{repo: repo, rates: rates}
}

// SetCacheService injects the cache service dependency
func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

// cachedPackages reads the raw listing through the cache. Estimates are
// computed per request afterwards, never cached.
func (s *service) cachedPackages(ctx context.Context, query PackageListQuery) ([]Package, error) {
	if s.cacheService == nil {
		return s.repo.ListPackages(ctx, query)
	}

	key := constants.BuildPackageListKey(query.Country, query.MinRating, query.MaxPrice)

	var packages []Package
	err := s.cacheService.GetOrSet(ctx, key, constants.TTL_PACKAGES_LIST, func() (interface{}, error) {
		return s.repo.ListPackages(ctx, query)
	}, &packages)
	if err != nil {
		// Cache path failed, fall through to the repository
		return s.repo.ListPackages(ctx, query)
	}
	return packages, nil
}

// ListPackages returns active packages matching the browse filters. When the
// query carries a party size, each item gets the quick child-discounted
// estimate used on the package selection step.
func (s *service) ListPackages(ctx context.Context, query PackageListQuery) ([]PackageResponse, error) {
	packages, err := s.cachedPackages(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}

	responses := make([]PackageResponse, 0, len(packages))
	for i := range packages {
		resp := packages[i].ToResponse()
		if query.Adults > 0 {
			est := pricing.Estimate(packages[i].PricePerAdult, query.Adults, query.Children, s.rates)
			resp.EstimatedTotal = &est
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

func (s *service) GetPackage(ctx context.Context, id string) (*PackageResponse, error) {
	pkgID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid package ID: %w", err)
	}

	if s.cacheService != nil {
		var cached PackageResponse
		err := s.cacheService.GetOrSet(ctx, constants.BuildPackageDetailKey(id), constants.TTL_PACKAGE_DETAIL, func() (interface{}, error) {
			pkg, err := s.repo.GetPackageByID(ctx, pkgID)
			if err != nil {
				return nil, err
			}
			return pkg.ToResponse(), nil
		}, &cached)
		if err == nil {
			return &cached, nil
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPackageNotFound
		}
	}

	pkg, err := s.repo.GetPackageByID(ctx, pkgID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPackageNotFound
		}
		return nil, fmt.Errorf("failed to get package: %w", err)
	}

	resp := pkg.ToResponse()
	return &resp, nil
}

func (s *service) ListExtras(ctx context.Context) ([]Extra, error) {
	if s.cacheService != nil {
		var extras []Extra
		err := s.cacheService.GetOrSet(ctx, constants.CACHE_KEY_EXTRAS_LIST, constants.TTL_EXTRAS_LIST, func() (interface{}, error) {
			return s.repo.ListExtras(ctx)
		}, &extras)
		if err == nil {
			return extras, nil
		}
	}

	extras, err := s.repo.ListExtras(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list extras: %w", err)
	}
	return extras, nil
}

// PackageByID returns the wizard snapshot for an active package.
func (s *service) PackageByID(ctx context.Context, id uuid.UUID) (*PackageInfo, error) {
	pkg, err := s.repo.GetPackageByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPackageNotFound
		}
		return nil, fmt.Errorf("failed to get package: %w", err)
	}
	if !pkg.Active {
		return nil, ErrPackageNotFound
	}

	return &PackageInfo{
		ID:            pkg.ID,
		Name:          pkg.Name,
		Country:       pkg.Country,
		DurationLabel: pkg.DurationLabel,
		PricePerAdult: pkg.PricePerAdult,
	}, nil
}

// ExtraCharges resolves an extras selection into flat-priced line items. The
// insurance and car rental toggles map to the first active extra of their
// kind; each selected excursion contributes its own price.
func (s *service) ExtraCharges(ctx context.Context, insurance, carRental bool, excursionIDs []uuid.UUID) ([]pricing.LineItem, error) {
	var items []pricing.LineItem

	if insurance {
		extra, err := s.repo.GetExtraByKind(ctx, ExtraKindInsurance)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve insurance extra: %w", err)
		}
		items = append(items, pricing.LineItem{Name: extra.Name, Price: extra.Price})
	}

	if carRental {
		extra, err := s.repo.GetExtraByKind(ctx, ExtraKindCarRental)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve car rental extra: %w", err)
		}
		items = append(items, pricing.LineItem{Name: extra.Name, Price: extra.Price})
	}

	if len(excursionIDs) > 0 {
		extras, err := s.repo.GetExtrasByIDs(ctx, excursionIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve excursions: %w", err)
		}
		if len(extras) != len(excursionIDs) {
			return nil, fmt.Errorf("unknown excursion in selection: requested %d, found %d", len(excursionIDs), len(extras))
		}
		for _, extra := range extras {
			if extra.Kind != ExtraKindExcursion {
				return nil, fmt.Errorf("extra %s is not an excursion", extra.ID)
			}
			items = append(items, pricing.LineItem{Name: extra.Name, Price: extra.Price})
		}
	}

	return items, nil
}
