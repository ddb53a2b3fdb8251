package service

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/tamilselvan8428/rajasnacksBilling/internal/dto"
	"github.com/tamilselvan8428/rajasnacksBilling/internal/infra"
	"github.com/tamilselvan8428/rajasnacksBilling/internal/model"
	"github.com/tamilselvan8428/rajasnacksBilling/internal/repository"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seqIDs struct{ n atomic.Int64 }

func (s *seqIDs) Generate() snowflake.ID { return snowflake.ID(5000 + s.n.Add(1)) }

func newCatalog(t *testing.T) (CatalogService, repository.CatalogRepository) {
	t.Helper()
	repo := repository.NewCatalogRepository(infra.NewMemoryStore())
	return NewCatalogService(repo, &seqIDs{}), repo
}

func strPtr(s string) *string { return &s }

func TestCatalog_Add(t *testing.T) {
	ctx := context.Background()
	svc, repo := newCatalog(t)

	p, err := svc.Add(ctx, dto.CreateProductRequest{Name: " Rice ", NameLocalized: "அரிசி", Price: "50"})
	require.NoError(t, err)
	assert.NotZero(t, p.ID)
	assert.Equal(t, "Rice", p.Name)
	assert.Equal(t, "50.00", p.Price.StringFixed(2))

	// JSON numbers arrive as float64
	p2, err := svc.Add(ctx, dto.CreateProductRequest{Name: "Oil", Price: 120.5})
	require.NoError(t, err)
	assert.Equal(t, "120.50", p2.Price.StringFixed(2))
	assert.NotEqual(t, p.ID, p2.ID)

	// negative prices are clamped, not rejected
	p3, err := svc.Add(ctx, dto.CreateProductRequest{Name: "Refund", Price: json.Number("-5")})
	require.NoError(t, err)
	assert.True(t, p3.Price.IsZero())

	stored, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, stored, 3)
}

func TestCatalog_PriceRoundedToPaise(t *testing.T) {
	ctx := context.Background()
	svc, _ := newCatalog(t)

	p, err := svc.Add(ctx, dto.CreateProductRequest{Name: "Murukku", Price: "0.333"})
	require.NoError(t, err)
	assert.Equal(t, "0.33", p.Price.String())

	p, err = svc.Update(ctx, p.ID, dto.UpdateProductRequest{Price: 12.345})
	require.NoError(t, err)
	assert.Equal(t, "12.35", p.Price.String())
}

func TestCatalog_ConcurrentAddsAreAllKept(t *testing.T) {
	ctx := context.Background()
	svc, repo := newCatalog(t)

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Add(ctx, dto.CreateProductRequest{Name: "Snack", Price: "10"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	stored, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, stored, n)
}

func TestCatalog_AddValidation(t *testing.T) {
	ctx := context.Background()
	svc, repo := newCatalog(t)

	cases := []struct {
		name  string
		req   dto.CreateProductRequest
		field string
	}{
		{"blank name", dto.CreateProductRequest{Name: "  ", Price: "10"}, "name"},
		{"missing price", dto.CreateProductRequest{Name: "Tea"}, "price"},
		{"empty price", dto.CreateProductRequest{Name: "Tea", Price: " "}, "price"},
		{"non-numeric price", dto.CreateProductRequest{Name: "Tea", Price: "ten"}, "price"},
		{"non-numeric type", dto.CreateProductRequest{Name: "Tea", Price: []int{1}}, "price"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Add(ctx, tc.req)
			require.ErrorIs(t, err, model.ErrValidation)
			var de *model.DomainError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tc.field, de.Field)
		})
	}

	stored, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, stored, "failed adds must not persist anything")
}

func TestCatalog_Update(t *testing.T) {
	ctx := context.Background()
	svc, _ := newCatalog(t)
	p, err := svc.Add(ctx, dto.CreateProductRequest{Name: "Rice", NameLocalized: "அரிசி", Price: 50})
	require.NoError(t, err)

	up, err := svc.Update(ctx, p.ID, dto.UpdateProductRequest{Price: "55.5"})
	require.NoError(t, err)
	assert.Equal(t, "Rice", up.Name)
	assert.Equal(t, "அரிசி", up.NameLocalized)
	assert.Equal(t, "55.50", up.Price.StringFixed(2))

	up, err = svc.Update(ctx, p.ID, dto.UpdateProductRequest{Name: strPtr("Basmati"), NameLocalized: strPtr("")})
	require.NoError(t, err)
	assert.Equal(t, "Basmati", up.Name)
	assert.Empty(t, up.NameLocalized)

	_, err = svc.Update(ctx, p.ID, dto.UpdateProductRequest{Name: strPtr(" ")})
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = svc.Update(ctx, 42, dto.UpdateProductRequest{Price: 1})
	assert.ErrorIs(t, err, model.ErrNotFound)

	list, err := svc.Load(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Basmati", list[0].Name)
}

func TestCatalog_RemoveIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, _ := newCatalog(t)
	a, _ := svc.Add(ctx, dto.CreateProductRequest{Name: "A", Price: 1})
	b, _ := svc.Add(ctx, dto.CreateProductRequest{Name: "B", Price: 2})

	require.NoError(t, svc.Remove(ctx, a.ID))
	require.NoError(t, svc.Remove(ctx, a.ID))

	list, err := svc.Load(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, b.ID, list[0].ID)
}

func TestCatalog_SeedIfEmpty(t *testing.T) {
	ctx := context.Background()
	svc, _ := newCatalog(t)

	list, err := svc.SeedIfEmpty(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Rice", list[0].Name)

	_, err = svc.Add(ctx, dto.CreateProductRequest{Name: "Tea", Price: 10})
	require.NoError(t, err)
	list, err = svc.SeedIfEmpty(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 4, "an existing catalog is never reseeded")
}

func TestCatalog_ExportCSV(t *testing.T) {
	ctx := context.Background()
	svc, _ := newCatalog(t)
	p, err := svc.Add(ctx, dto.CreateProductRequest{Name: "Rice", NameLocalized: "அரிசி", Price: 50})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(ctx, &buf))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "id,name,name_localized,price", lines[0])
	assert.Equal(t, p.ID.String()+",Rice,அரிசி,50.00", lines[1])
}

func TestCatalog_ImportCSV(t *testing.T) {
	ctx := context.Background()
	svc, _ := newCatalog(t)
	rice, err := svc.Add(ctx, dto.CreateProductRequest{Name: "Rice", Price: 50})
	require.NoError(t, err)

	csv := "id,name,name_localized,price\n" +
		rice.ID.String() + ",Rice,அரிசி,52\n" +
		",Sugar,சீனி,40\n" +
		"9001,Oil,எண்ணெய்,120.00\n"
	resp, err := svc.ImportCSV(ctx, strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, dto.CatalogImportResponse{Created: 2, Updated: 1, Total: 3}, resp)

	list, err := svc.Load(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "அரிசி", list[0].NameLocalized)
	assert.Equal(t, "52.00", list[0].Price.StringFixed(2))
	assert.Equal(t, snowflake.ID(9001), list[2].ID)
}

func TestCatalog_ImportCSV_RejectsWholeFileOnBadRow(t *testing.T) {
	ctx := context.Background()
	svc, _ := newCatalog(t)

	csv := "id,name,name_localized,price\n" +
		",Sugar,சீனி,40\n" +
		",Oil,எண்ணெய்,abc\n"
	_, err := svc.ImportCSV(ctx, strings.NewReader(csv))
	require.ErrorIs(t, err, model.ErrValidation)
	assert.Contains(t, err.Error(), "line 3")

	_, err = svc.ImportCSV(ctx, strings.NewReader("id,name,name_localized,price\nxyz,Tea,,1\n"))
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = svc.ImportCSV(ctx, strings.NewReader(""))
	assert.ErrorIs(t, err, model.ErrValidation)

	list, err := svc.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}
