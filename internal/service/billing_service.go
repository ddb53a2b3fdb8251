package service

import (
	"context"
	"sync"
	"time"

	"github.com/tamilselvan8428/rajasnacksBilling/internal/billing"
	"github.com/tamilselvan8428/rajasnacksBilling/internal/dto"
	"github.com/tamilselvan8428/rajasnacksBilling/internal/model"
	"github.com/tamilselvan8428/rajasnacksBilling/internal/repository"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Draft is an open bill on the billing screen.
type Draft struct {
	ID       uuid.UUID
	Composer billing.Composer
}

// BillingService keeps the open drafts in memory and routes billing-screen
// commands to them. Drafts are not persisted; only saved bills are.
type BillingService interface {
	CreateDraft(ctx context.Context) (Draft, error)
	Draft(id uuid.UUID) (Draft, error)
	Discard(id uuid.UUID) error

	SetCustomer(id uuid.UUID, req dto.CustomerRequest) (Draft, error)
	Suggest(ctx context.Context, id uuid.UUID, query string) (Draft, error)
	Select(ctx context.Context, id uuid.UUID, productID snowflake.ID) (Draft, error)
	Navigate(ctx context.Context, id uuid.UUID, key string) (Draft, error)
	AddLine(ctx context.Context, id uuid.UUID, req dto.AddLineRequest) (Draft, error)
	BeginEdit(id uuid.UUID, lineID snowflake.ID) (Draft, error)
	EditLine(id uuid.UUID, lineID snowflake.ID, req dto.EditLineRequest) (Draft, error)
	CancelEdit(id uuid.UUID) (Draft, error)
	RemoveLine(id uuid.UUID, lineID snowflake.ID) (Draft, error)

	Save(ctx context.Context, id uuid.UUID) (model.BillSnapshot, error)
	ListSaved(ctx context.Context) ([]dto.BillSummary, error)
	FindSaved(ctx context.Context, id uuid.UUID) (model.BillSnapshot, error)
}

type billingService struct {
	catalog CatalogService
	bills   repository.BillLogRepository
	ids     billing.IDGenerator
	opts    billing.Options
	now     func() time.Time

	mu     sync.Mutex
	drafts map[uuid.UUID]billing.Composer
}

func NewBillingService(
	catalog CatalogService,
	bills repository.BillLogRepository,
	ids billing.IDGenerator,
	opts billing.Options,
) BillingService {
	return &billingService{
		catalog: catalog,
		bills:   bills,
		ids:     ids,
		opts:    opts,
		now:     time.Now,
		drafts:  make(map[uuid.UUID]billing.Composer),
	}
}

// CreateDraft opens an empty bill dated today. With sample seeding enabled an
// empty catalog is filled first, matching what the billing screen shows on
// first start.
func (s *billingService) CreateDraft(ctx context.Context) (Draft, error) {
	if s.opts.SeedSampleCatalog {
		if _, err := s.catalog.SeedIfEmpty(ctx); err != nil {
			return Draft{}, err
		}
	}
	d := Draft{ID: uuid.New(), Composer: billing.New(s.ids, s.opts, s.now())}

	s.mu.Lock()
	s.drafts[d.ID] = d.Composer
	s.mu.Unlock()

	log.Debug().Str("draft_id", d.ID.String()).Msg("billing: draft opened")
	return d, nil
}

func (s *billingService) Draft(id uuid.UUID) (Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.drafts[id]
	if !ok {
		return Draft{}, model.NewNotFoundError("draft", id)
	}
	return Draft{ID: id, Composer: c}, nil
}

func (s *billingService) Discard(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.drafts[id]; !ok {
		return model.NewNotFoundError("draft", id)
	}
	delete(s.drafts, id)
	return nil
}

// apply runs cmd against the stored composer and keeps the result only when
// cmd succeeds, so a failed command leaves the draft as it was.
func (s *billingService) apply(id uuid.UUID, cmd func(billing.Composer) (billing.Composer, error)) (Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.drafts[id]
	if !ok {
		return Draft{}, model.NewNotFoundError("draft", id)
	}
	next, err := cmd(c)
	if err != nil {
		return Draft{ID: id, Composer: c}, err
	}
	s.drafts[id] = next
	return Draft{ID: id, Composer: next}, nil
}

func (s *billingService) SetCustomer(id uuid.UUID, req dto.CustomerRequest) (Draft, error) {
	return s.apply(id, func(c billing.Composer) (billing.Composer, error) {
		return c.SetCustomer(req.CustomerName, req.CustomerMobile, req.Date)
	})
}

func (s *billingService) Suggest(ctx context.Context, id uuid.UUID, query string) (Draft, error) {
	products, err := s.catalog.Load(ctx)
	if err != nil {
		return Draft{}, err
	}
	return s.apply(id, func(c billing.Composer) (billing.Composer, error) {
		return c.Search(products, query), nil
	})
}

// Select re-checks the catalog: a product removed since the suggestions were
// computed cannot be selected.
func (s *billingService) Select(ctx context.Context, id uuid.UUID, productID snowflake.ID) (Draft, error) {
	products, err := s.catalog.Load(ctx)
	if err != nil {
		return Draft{}, err
	}
	if indexOfProduct(products, productID) < 0 {
		return Draft{}, model.NewNotFoundError("product", productID)
	}
	return s.apply(id, func(c billing.Composer) (billing.Composer, error) {
		return c.Select(productID)
	})
}

func (s *billingService) Navigate(_ context.Context, id uuid.UUID, key string) (Draft, error) {
	return s.apply(id, func(c billing.Composer) (billing.Composer, error) {
		switch key {
		case "up":
			return c.Navigate(-1)
		case "down":
			return c.Navigate(1)
		case "enter":
			return c.SelectHighlighted()
		}
		return c, model.NewValidationError("key", "key must be up, down or enter")
	})
}

// AddLine adds the selected product, or req.ProductID when given. The line
// snapshots the catalog record as it is now, not as it was when selected.
func (s *billingService) AddLine(ctx context.Context, id uuid.UUID, req dto.AddLineRequest) (Draft, error) {
	qty, err := parseQuantity(req.Quantity, 1)
	if err != nil {
		return Draft{}, err
	}
	products, err := s.catalog.Load(ctx)
	if err != nil {
		return Draft{}, err
	}
	return s.apply(id, func(c billing.Composer) (billing.Composer, error) {
		var ref snowflake.ID
		switch {
		case req.ProductID != nil:
			ref = *req.ProductID
		case c.SearchState().Selected != nil:
			ref = c.SearchState().Selected.ID
		default:
			return c.AddLine(qty), nil
		}
		i := indexOfProduct(products, ref)
		if i < 0 {
			return c, model.NewNotFoundError("product", ref)
		}
		return c.AddProduct(products[i], qty), nil
	})
}

func (s *billingService) BeginEdit(id uuid.UUID, lineID snowflake.ID) (Draft, error) {
	return s.apply(id, func(c billing.Composer) (billing.Composer, error) {
		return c.BeginEdit(lineID)
	})
}

func (s *billingService) EditLine(id uuid.UUID, lineID snowflake.ID, req dto.EditLineRequest) (Draft, error) {
	qty, err := parseQuantity(req.Quantity, 1)
	if err != nil {
		return Draft{}, err
	}
	price, err := parsePrice(req.UnitPrice)
	if err != nil {
		return Draft{}, err
	}
	return s.apply(id, func(c billing.Composer) (billing.Composer, error) {
		return c.EditLine(lineID, qty, price)
	})
}

func (s *billingService) CancelEdit(id uuid.UUID) (Draft, error) {
	return s.apply(id, func(c billing.Composer) (billing.Composer, error) {
		return c.CancelEdit(), nil
	})
}

func (s *billingService) RemoveLine(id uuid.UUID, lineID snowflake.ID) (Draft, error) {
	return s.apply(id, func(c billing.Composer) (billing.Composer, error) {
		return c.RemoveLine(lineID)
	})
}

// Save appends the draft to the bills log and closes it. The log write
// happens before the draft is dropped, so a storage failure keeps the draft.
func (s *billingService) Save(ctx context.Context, id uuid.UUID) (model.BillSnapshot, error) {
	if !s.opts.EnableSaveLog {
		return model.BillSnapshot{}, model.NewValidationError("billLog", "saving bills is disabled")
	}
	d, err := s.Draft(id)
	if err != nil {
		return model.BillSnapshot{}, err
	}
	bill := d.Composer.Bill()
	if err := bill.ValidateForDocument(); err != nil {
		return model.BillSnapshot{}, err
	}

	snap := model.NewBillSnapshot(uuid.New(), bill, s.now())
	if err := s.bills.Append(ctx, snap); err != nil {
		return model.BillSnapshot{}, err
	}

	s.mu.Lock()
	delete(s.drafts, id)
	s.mu.Unlock()

	log.Info().
		Str("bill_id", snap.ID.String()).
		Str("total", snap.Total.StringFixed(2)).
		Int("items", len(snap.Items)).
		Msg("billing: bill saved")
	return snap, nil
}

// ListSaved returns the log newest first.
func (s *billingService) ListSaved(ctx context.Context) ([]dto.BillSummary, error) {
	list, err := s.bills.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BillSummary, 0, len(list))
	for i := len(list) - 1; i >= 0; i-- {
		out = append(out, mapBillSummary(list[i]))
	}
	return out, nil
}

func (s *billingService) FindSaved(ctx context.Context, id uuid.UUID) (model.BillSnapshot, error) {
	snap, err := s.bills.FindByID(ctx, id)
	if err != nil {
		return model.BillSnapshot{}, err
	}
	return *snap, nil
}

func mapBillSummary(s model.BillSnapshot) dto.BillSummary {
	return dto.BillSummary{
		ID:             s.ID,
		CustomerName:   s.CustomerName,
		CustomerMobile: s.CustomerMobile,
		Date:           s.Date,
		Items:          len(s.Items),
		Total:          s.Total.StringFixed(2),
		SavedAt:        s.SavedAt,
	}
}
