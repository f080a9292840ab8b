package service

import (
	"errors"
	"fmt"

	"kopdes-pos/internal/model"
	"kopdes-pos/internal/readmodel"
	"kopdes-pos/internal/repository"
	"kopdes-pos/internal/ws"
	"kopdes-pos/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CatalogService manages the product catalog and the member register.
// Stock is never edited here: all stock movement goes through the ledger.
type CatalogService interface {
	CreateProduct(req *model.Product, actor string) error
	UpdateProduct(id uuid.UUID, req *model.Product, actor string) (*model.Product, error)
	DeleteProduct(id uuid.UUID) error
	Products() []model.Product

	AddMember(req *model.Member) error
	DeleteMember(id string) error
	Members() []model.Member
}

type catalogService struct {
	productRepo repository.ProductRepository
	memberRepo  repository.MemberRepository
	cache       *readmodel.Cache
	hub         *ws.Hub
}

func NewCatalogService(
	productRepo repository.ProductRepository,
	memberRepo repository.MemberRepository,
	cache *readmodel.Cache,
	hub *ws.Hub,
) CatalogService {
	return &catalogService{
		productRepo: productRepo,
		memberRepo:  memberRepo,
		cache:       cache,
		hub:         hub,
	}
}

func (s *catalogService) CreateProduct(req *model.Product, actor string) error {
	if msg := validator.FirstError(req); msg != "" {
		return fmt.Errorf("%s: %w", msg, ErrValidation)
	}

	// SKU dimaksudkan unik; dijaga lewat pre-check, bukan constraint DB
	existing, _ := s.productRepo.FindBySKU(req.SKU)
	if existing != nil && existing.ID != uuid.Nil {
		return fmt.Errorf("SKU %q: %w", req.SKU, ErrDuplicate)
	}

	req.CreatedBy = actor
	req.UpdatedBy = actor

	if err := s.productRepo.Create(req); err != nil {
		return err
	}

	s.cache.ApplyProductCreated(*req)

	if s.hub != nil {
		s.hub.Publish("product_created", map[string]interface{}{
			"product_id": req.ID,
			"sku":        req.SKU,
			"name":       req.Name,
			"by":         actor,
		})
	}
	return nil
}

// UpdateProduct edits catalog fields only. The stored stock value is always
// preserved; adjustments must go through the ledger so the log stays the
// source of truth.
func (s *catalogService) UpdateProduct(id uuid.UUID, req *model.Product, actor string) (*model.Product, error) {
	if msg := validator.FirstError(req); msg != "" {
		return nil, fmt.Errorf("%s: %w", msg, ErrValidation)
	}

	existing, ok := s.cache.FindProduct(id)
	if !ok {
		return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
	}

	existing.SKU = req.SKU
	existing.Name = req.Name
	existing.PurchasePrice = req.PurchasePrice
	existing.SellPrice = req.SellPrice
	existing.Unit = req.Unit
	existing.UpdatedBy = actor

	if err := s.productRepo.Update(&existing); err != nil {
		return nil, err
	}

	s.cache.ApplyProductUpdated(existing)

	if s.hub != nil {
		s.hub.Publish("product_updated", map[string]interface{}{
			"product_id": existing.ID,
			"name":       existing.Name,
			"by":         actor,
		})
	}
	return &existing, nil
}

func (s *catalogService) DeleteProduct(id uuid.UUID) error {
	if _, ok := s.cache.FindProduct(id); !ok {
		return fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	if err := s.productRepo.Delete(id); err != nil {
		return err
	}
	s.cache.ApplyProductDeleted(id)

	if s.hub != nil {
		s.hub.Publish("product_deleted", map[string]interface{}{"product_id": id})
	}
	return nil
}

func (s *catalogService) Products() []model.Product {
	return s.cache.Products()
}

func (s *catalogService) AddMember(req *model.Member) error {
	if msg := validator.FirstError(req); msg != "" {
		return fmt.Errorf("%s: %w", msg, ErrValidation)
	}

	if _, ok := s.cache.FindMember(req.ID); ok {
		return fmt.Errorf("member number %q: %w", req.ID, ErrDuplicate)
	}

	if err := s.memberRepo.Create(req); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("member number %q: %w", req.ID, ErrDuplicate)
		}
		return err
	}

	s.cache.ApplyMemberAdded(*req)
	return nil
}

func (s *catalogService) DeleteMember(id string) error {
	if _, ok := s.cache.FindMember(id); !ok {
		return fmt.Errorf("member %s: %w", id, ErrNotFound)
	}
	if err := s.memberRepo.Delete(id); err != nil {
		return err
	}
	s.cache.ApplyMemberDeleted(id)
	return nil
}

func (s *catalogService) Members() []model.Member {
	return s.cache.Members()
}
