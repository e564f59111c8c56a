package services

import (
	"github.com/caiosilvaazeredo/ASG-Coleta/internal/models"
)

// CatalogStore holds the immutable indicator catalog seeded at startup.
type CatalogStore interface {
	GetIndicator(code string) *models.Indicator
	ListIndicators(fw models.Framework) []*models.Indicator
	ListAllIndicators() []*models.Indicator
}

type CatalogService struct {
	store CatalogStore
}

func NewCatalogService(store CatalogStore) *CatalogService {
	return &CatalogService{store: store}
}

func (s *CatalogService) Get(code string) (*models.Indicator, error) {
	ind := s.store.GetIndicator(code)
	if ind == nil {
		return nil, ErrIndicatorNotFound
	}
	return ind, nil
}

// List returns the catalog for one framework, or everything when fw is empty.
func (s *CatalogService) List(fw models.Framework) ([]*models.Indicator, error) {
	switch fw {
	case "":
		return s.store.ListAllIndicators(), nil
	case models.FrameworkGRI, models.FrameworkEthos:
		return s.store.ListIndicators(fw), nil
	default:
		return nil, NewInvalidError("unknown framework")
	}
}
