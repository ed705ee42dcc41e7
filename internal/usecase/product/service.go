package product

import (
	"context"
	"strings"

	domcatalog "example.com/storefront/internal/domain/catalog"
	dom "example.com/storefront/internal/domain/product"
)

type Service struct {
	repo dom.Repository
}

func NewService(repo dom.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, p *dom.Product) (*dom.Product, error) {
	p.Name = strings.TrimSpace(p.Name)
	if err := p.Validate(); err != nil {
		return nil, err
	}
	p.ID = dom.NewID()
	return s.repo.Create(ctx, p)
}

func (s *Service) Update(ctx context.Context, p *dom.Product) (*dom.Product, error) {
	if err := dom.ValidateID(p.ID); err != nil {
		return nil, err
	}
	existed, err := s.repo.GetByID(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(p.Name); name != "" {
		existed.Name = name
	}
	if p.Description != "" {
		existed.Description = p.Description
	}
	if p.Price > 0 {
		existed.Price = p.Price
	}
	if p.Category != "" {
		existed.Category = p.Category
	}
	if p.Image != "" {
		existed.Image = p.Image
	}

	return s.repo.Update(ctx, existed)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := dom.ValidateID(id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) GetByID(ctx context.Context, id string) (*dom.Product, error) {
	if err := dom.ValidateID(id); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, filter dom.ListFilter) ([]*dom.Product, error) {
	products, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []*dom.Product{}
	}
	return products, nil
}

// ListByCategory returns an empty list, not an error, for unknown categories.
func (s *Service) ListByCategory(ctx context.Context, category string) ([]*dom.Product, error) {
	return s.List(ctx, dom.ListFilter{Category: category})
}

// Search lists the stored products and narrows them with the catalog filter.
func (s *Service) Search(ctx context.Context, q domcatalog.Query) ([]*dom.Product, error) {
	products, err := s.List(ctx, dom.ListFilter{})
	if err != nil {
		return nil, err
	}

	values := make([]dom.Product, 0, len(products))
	for _, p := range products {
		values = append(values, *p)
	}

	filtered := domcatalog.Filter(values, q)
	result := make([]*dom.Product, 0, len(filtered))
	for i := range filtered {
		result = append(result, &filtered[i])
	}
	return result, nil
}

func (s *Service) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
