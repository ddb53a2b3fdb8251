// cmd/seedcatalog/main.go seeds the sample catalog into the configured store,
// or replaces the catalog with a CSV file.
// Usage: go run ./cmd/seedcatalog [catalog.csv]
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/tamilselvan8428/rajasnacksBilling/internal/config"
	"github.com/tamilselvan8428/rajasnacksBilling/internal/infra"
	"github.com/tamilselvan8428/rajasnacksBilling/internal/repository"
	"github.com/tamilselvan8428/rajasnacksBilling/internal/service"

	"github.com/bwmarrin/snowflake"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	log.Logger = config.NewLogger(cfg)

	store, err := infra.NewDocumentStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open document store")
	}
	defer store.Close()

	node, err := snowflake.NewNode(cfg.NodeID)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid NODE_ID")
	}
	catalog := service.NewCatalogService(repository.NewCatalogRepository(store), node)
	ctx := context.Background()

	if len(os.Args) > 1 {
		f, err := os.Open(os.Args[1])
		if err != nil {
			log.Fatal().Err(err).Msg("open CSV")
		}
		defer f.Close()
		res, err := catalog.ImportCSV(ctx, f)
		if err != nil {
			log.Fatal().Err(err).Msg("import failed")
		}
		fmt.Printf("imported %s: %d created, %d updated, %d products total\n", os.Args[1], res.Created, res.Updated, res.Total)
		return
	}

	products, err := catalog.SeedIfEmpty(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}
	fmt.Printf("catalog has %d products\n", len(products))
}
