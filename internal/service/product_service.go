package service

import (
	"context"
	"strings"

	"katalog/internal/asset"
	"katalog/internal/catalog"
	"katalog/internal/metrics"
	"katalog/internal/model"
	"katalog/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	images      asset.Pipeline
	validate    *validator.Validate
	logger      zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(productRepo repository.ProductRepository, images asset.Pipeline, logger zerolog.Logger) ProductService {
	return &productService{
		productRepo: productRepo,
		images:      images,
		validate:    newValidator(),
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

// ListAll retrieves every product, newest id first.
func (s *productService) ListAll(ctx context.Context) ([]model.Product, error) {
	return s.list(ctx, repository.ProductFilter{})
}

// ListBestsellers retrieves bestseller products only.
func (s *productService) ListBestsellers(ctx context.Context) ([]model.Product, error) {
	return s.list(ctx, repository.ProductFilter{BestsellerOnly: true})
}

func (s *productService) list(ctx context.Context, filter repository.ProductFilter) ([]model.Product, error) {
	products, err := s.productRepo.Select(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).
			Bool("bestseller_only", filter.BestsellerOnly).
			Msg("failed to list products")
		return nil, model.NewBackendError("failed to list products", err)
	}

	for i := range products {
		products[i].ImageRef = s.images.ResolveURL(products[i].ImageRef)
	}

	s.logger.Debug().
		Int("count", len(products)).
		Bool("bestseller_only", filter.BestsellerOnly).
		Msg("retrieved products")

	return products, nil
}

// GetByID retrieves a single product by ID.
func (s *productService) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	if id <= 0 {
		s.logger.Warn().Int64("product_id", id).Msg("invalid product ID")
		return nil, model.ErrProductNotFound
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to get product by ID")
		return nil, model.NewBackendError("failed to get product", err)
	}

	if product == nil {
		s.logger.Debug().Int64("product_id", id).Msg("product not found")
		return nil, model.ErrProductNotFound
	}

	product.ImageRef = s.images.ResolveURL(product.ImageRef)
	return product, nil
}

// Create validates fields, resolves the image and inserts the product.
func (s *productService) Create(ctx context.Context, fields model.ProductFields, image model.ImageSource) (*model.Product, error) {
	product, err := s.create(ctx, fields, image)
	recordMutation("create", err)
	return product, err
}

func (s *productService) create(ctx context.Context, fields model.ProductFields, image model.ImageSource) (*model.Product, error) {
	if err := validateFields(s.validate, fields); err != nil {
		return nil, err
	}

	switch image.Kind() {
	case model.ImagePending:
		url, err := s.upload(ctx, image)
		if err != nil {
			return nil, err
		}
		fields.ImageRef = url
	case model.ImageExisting:
		ref := strings.TrimSpace(image.Ref())
		if s.images.Owns(ref) {
			return nil, model.NewValidationError("image reference must be an external URL, upload a file to store a new image")
		}
		fields.ImageRef = ref
	default:
		fields.ImageRef = ""
	}
	if fields.ImageRef == "" {
		return nil, model.ErrImageRequired
	}

	product, err := s.productRepo.Insert(ctx, fields)
	if err != nil {
		s.logger.Error().Err(err).
			Str("name", fields.Name).
			Str("image", fields.ImageRef).
			Msg("failed to insert product, uploaded image is orphaned")
		return nil, model.NewBackendError("failed to create product", err)
	}

	s.logger.Info().
		Int64("product_id", product.ID).
		Str("name", product.Name).
		Msg("product created")

	product.ImageRef = s.images.ResolveURL(product.ImageRef)
	return product, nil
}

// Update validates fields, resolves the image and replaces the product.
func (s *productService) Update(ctx context.Context, id int64, fields model.ProductFields, image model.ImageSource) (*model.Product, error) {
	product, err := s.update(ctx, id, fields, image)
	recordMutation("update", err)
	return product, err
}

func (s *productService) update(ctx context.Context, id int64, fields model.ProductFields, image model.ImageSource) (*model.Product, error) {
	if id <= 0 {
		return nil, model.ErrProductNotFound
	}
	if err := validateFields(s.validate, fields); err != nil {
		return nil, err
	}

	current, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to load product for update")
		return nil, model.NewBackendError("failed to update product", err)
	}
	if current == nil {
		s.logger.Debug().Int64("product_id", id).Msg("product not found")
		return nil, model.ErrProductNotFound
	}

	switch image.Kind() {
	case model.ImagePending:
		url, err := s.upload(ctx, image)
		if err != nil {
			return nil, err
		}
		fields.ImageRef = url
	case model.ImageExisting:
		ref := strings.TrimSpace(image.Ref())
		switch {
		case ref == current.ImageRef || ref == s.images.ResolveURL(current.ImageRef):
			fields.ImageRef = current.ImageRef
		case s.images.Owns(ref):
			return nil, model.NewValidationError("image reference does not belong to this product")
		default:
			fields.ImageRef = ref
		}
	default:
		fields.ImageRef = current.ImageRef
	}
	if fields.ImageRef == "" {
		return nil, model.ErrImageRequired
	}

	product, err := s.productRepo.Update(ctx, id, fields)
	if err != nil {
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to update product")
		return nil, model.NewBackendError("failed to update product", err)
	}
	if product == nil {
		s.logger.Debug().Int64("product_id", id).Msg("product not found")
		return nil, model.ErrProductNotFound
	}

	s.logger.Info().Int64("product_id", id).Msg("product updated")

	product.ImageRef = s.images.ResolveURL(product.ImageRef)
	return product, nil
}

// Delete removes the asset best-effort, then the record.
func (s *productService) Delete(ctx context.Context, id int64, imageRef string) error {
	err := s.delete(ctx, id, imageRef)
	recordMutation("delete", err)
	return err
}

func (s *productService) delete(ctx context.Context, id int64, imageRef string) error {
	if id <= 0 {
		return model.ErrProductNotFound
	}

	if imageRef != "" {
		if err := s.images.Remove(ctx, imageRef); err != nil {
			s.logger.Warn().Err(err).
				Int64("product_id", id).
				Str("image", imageRef).
				Msg("failed to remove product image, continuing with delete")
		}
	}

	deleted, err := s.productRepo.Delete(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("product_id", id).Msg("failed to delete product")
		return model.NewBackendError("failed to delete product", err)
	}
	if !deleted {
		s.logger.Debug().Int64("product_id", id).Msg("product not found")
		return model.ErrProductNotFound
	}

	s.logger.Info().Int64("product_id", id).Msg("product deleted")
	return nil
}

// Categories returns the categories present in the full list.
func (s *productService) Categories(ctx context.Context) ([]string, error) {
	products, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.Categories(products), nil
}

func (s *productService) upload(ctx context.Context, image model.ImageSource) (string, error) {
	data, fileName := image.Upload()
	url, err := s.images.Upload(ctx, data, fileName)
	if err != nil {
		s.logger.Error().Err(err).Str("file_name", fileName).Msg("image upload failed, product not written")
		return "", err
	}
	return url, nil
}

func recordMutation(operation string, err error) {
	result := metrics.ResultSuccess
	if err != nil {
		result = model.KindOf(err).String()
	}
	metrics.ProductMutationsTotal.WithLabelValues(operation, result).Inc()
}
