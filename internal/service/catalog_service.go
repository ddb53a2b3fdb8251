package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/tamilselvan8428/rajasnacksBilling/internal/billing"
	"github.com/tamilselvan8428/rajasnacksBilling/internal/dto"
	"github.com/tamilselvan8428/rajasnacksBilling/internal/model"
	"github.com/tamilselvan8428/rajasnacksBilling/internal/repository"

	"github.com/bwmarrin/snowflake"
	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog/log"
)

// CatalogService manages the product price list. Every mutation writes the
// whole catalog back before returning.
type CatalogService interface {
	Load(ctx context.Context) ([]model.Product, error)
	Add(ctx context.Context, req dto.CreateProductRequest) (model.Product, error)
	Update(ctx context.Context, id snowflake.ID, req dto.UpdateProductRequest) (model.Product, error)
	Remove(ctx context.Context, id snowflake.ID) error
	SeedIfEmpty(ctx context.Context) ([]model.Product, error)
	ExportCSV(ctx context.Context, w io.Writer) error
	ImportCSV(ctx context.Context, r io.Reader) (dto.CatalogImportResponse, error)
}

type catalogService struct {
	repo repository.CatalogRepository
	ids  billing.IDGenerator

	// mu guards load-modify-save of the catalog document.
	mu sync.Mutex
}

func NewCatalogService(repo repository.CatalogRepository, ids billing.IDGenerator) CatalogService {
	return &catalogService{repo: repo, ids: ids}
}

func (s *catalogService) Load(ctx context.Context) ([]model.Product, error) {
	return s.repo.Load(ctx)
}

func (s *catalogService) Add(ctx context.Context, req dto.CreateProductRequest) (model.Product, error) {
	p, err := newProduct(req.Name, req.NameLocalized, req.Price)
	if err != nil {
		return model.Product{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.repo.Load(ctx)
	if err != nil {
		return model.Product{}, err
	}
	p.ID = s.ids.Generate()
	if err := s.repo.Save(ctx, append(products, p)); err != nil {
		return model.Product{}, err
	}
	log.Info().Str("product_id", p.ID.String()).Str("name", p.Name).Msg("catalog: product added")
	return p, nil
}

func (s *catalogService) Update(ctx context.Context, id snowflake.ID, req dto.UpdateProductRequest) (model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.repo.Load(ctx)
	if err != nil {
		return model.Product{}, err
	}
	i := indexOfProduct(products, id)
	if i < 0 {
		return model.Product{}, model.NewNotFoundError("product", id)
	}

	p := products[i]
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return model.Product{}, model.NewValidationError("name", "name is required")
		}
		p.Name = name
	}
	if req.NameLocalized != nil {
		p.NameLocalized = strings.TrimSpace(*req.NameLocalized)
	}
	if req.Price != nil {
		price, err := parsePrice(req.Price)
		if err != nil {
			return model.Product{}, err
		}
		p.Price = price
	}

	products[i] = p
	if err := s.repo.Save(ctx, products); err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// Remove is idempotent: removing an unknown id succeeds without a write.
func (s *catalogService) Remove(ctx context.Context, id snowflake.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}
	i := indexOfProduct(products, id)
	if i < 0 {
		return nil
	}
	products = append(products[:i], products[i+1:]...)
	if err := s.repo.Save(ctx, products); err != nil {
		return err
	}
	log.Info().Str("product_id", id.String()).Msg("catalog: product removed")
	return nil
}

// SeedIfEmpty stores the sample catalog when nothing is stored yet and
// returns the resulting catalog either way.
func (s *catalogService) SeedIfEmpty(ctx context.Context) ([]model.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	if len(products) > 0 {
		return products, nil
	}
	products = billing.SampleCatalog(s.ids)
	if err := s.repo.Save(ctx, products); err != nil {
		return nil, err
	}
	log.Info().Int("products", len(products)).Msg("catalog: seeded sample products")
	return products, nil
}

// catalogCSVRow is the CSV shape of a product. Fields are strings so that
// every row can be validated with a row-numbered message.
type catalogCSVRow struct {
	ID            string `csv:"id"`
	Name          string `csv:"name"`
	NameLocalized string `csv:"name_localized"`
	Price         string `csv:"price"`
}

func (s *catalogService) ExportCSV(ctx context.Context, w io.Writer) error {
	products, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}
	rows := make([]*catalogCSVRow, 0, len(products))
	for _, p := range products {
		rows = append(rows, &catalogCSVRow{
			ID:            p.ID.String(),
			Name:          p.Name,
			NameLocalized: p.NameLocalized,
			Price:         p.Price.StringFixed(2),
		})
	}
	return gocsv.Marshal(&rows, w)
}

// ImportCSV upserts products by id; a blank id creates a new product. Every
// row is validated before the single write, so a bad row changes nothing.
func (s *catalogService) ImportCSV(ctx context.Context, r io.Reader) (dto.CatalogImportResponse, error) {
	var rows []*catalogCSVRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return dto.CatalogImportResponse{}, model.NewValidationError("file", "CSV file is empty")
		}
		return dto.CatalogImportResponse{}, model.NewValidationError("file", "invalid CSV: "+err.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.repo.Load(ctx)
	if err != nil {
		return dto.CatalogImportResponse{}, err
	}

	var resp dto.CatalogImportResponse
	for n, row := range rows {
		line := n + 2 // header is line 1
		p, err := newProduct(row.Name, row.NameLocalized, row.Price)
		if err != nil {
			var de *model.DomainError
			if errors.As(err, &de) {
				return dto.CatalogImportResponse{}, model.NewValidationError(de.Field, fmt.Sprintf("line %d: %s", line, de.Message))
			}
			return dto.CatalogImportResponse{}, err
		}

		rawID := strings.TrimSpace(row.ID)
		if rawID == "" {
			p.ID = s.ids.Generate()
			products = append(products, p)
			resp.Created++
			continue
		}
		id, err := snowflake.ParseString(rawID)
		if err != nil || id <= 0 {
			return dto.CatalogImportResponse{}, model.NewValidationError("id", fmt.Sprintf("line %d: invalid id %q", line, rawID))
		}
		p.ID = id
		if i := indexOfProduct(products, id); i >= 0 {
			products[i] = p
			resp.Updated++
		} else {
			products = append(products, p)
			resp.Created++
		}
	}

	if err := s.repo.Save(ctx, products); err != nil {
		return dto.CatalogImportResponse{}, err
	}
	resp.Total = len(products)
	log.Info().Int("created", resp.Created).Int("updated", resp.Updated).Msg("catalog: CSV imported")
	return resp, nil
}

func newProduct(name, nameLocalized string, price any) (model.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Product{}, model.NewValidationError("name", "name is required")
	}
	d, err := parsePrice(price)
	if err != nil {
		return model.Product{}, err
	}
	return model.Product{
		Name:          name,
		NameLocalized: strings.TrimSpace(nameLocalized),
		Price:         d,
	}, nil
}

func indexOfProduct(products []model.Product, id snowflake.ID) int {
	for i, p := range products {
		if p.ID == id {
			return i
		}
	}
	return -1
}
