package main

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"katalog/internal/asset"
	"katalog/internal/config"
	"katalog/internal/database"
	"katalog/internal/model"
	"katalog/internal/repository"
	"katalog/internal/router"
	"katalog/internal/service"
	"katalog/internal/storage"
)

// seed fills an empty catalogue with sample products. Each product gets a
// generated placeholder image uploaded through the normal asset pipeline.
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Sample products
var samples = []struct {
	fields model.ProductFields
	tint   color.RGBA
}{
	{model.ProductFields{Name: "Nasi Goreng Spesial", Category: "makanan", Price: 25000, Bestseller: true}, color.RGBA{R: 200, G: 120, B: 40, A: 255}},
	{model.ProductFields{Name: "Mie Ayam", Category: "makanan", Price: 18000}, color.RGBA{R: 230, G: 200, B: 90, A: 255}},
	{model.ProductFields{Name: "Sate Ayam", Category: "makanan", Price: 22000, Bestseller: true}, color.RGBA{R: 150, G: 80, B: 30, A: 255}},
	{model.ProductFields{Name: "Es Teh Manis", Category: "minuman", Price: 5000, Bestseller: true}, color.RGBA{R: 170, G: 90, B: 20, A: 255}},
	{model.ProductFields{Name: "Jus Alpukat", Category: "minuman", Price: 15000}, color.RGBA{R: 120, G: 170, B: 60, A: 255}},
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)
	ctx := context.Background()

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool, logger); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	store, _, err := storage.Open(ctx, cfg.Storage, router.ImagesPrefix, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize object storage: %w", err)
	}

	pipeline := asset.NewPipeline(store, asset.NewKeyGenerator(nil), cfg.Storage.MaxUploadBytes, logger)
	products := service.NewProductService(repository.NewProductRepository(pool, logger), pipeline, logger)

	existing, err := products.ListAll(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		fmt.Printf("Catalogue already has %d products, nothing to do\n", len(existing))
		return nil
	}

	for _, s := range samples {
		img, err := placeholder(s.tint)
		if err != nil {
			return err
		}

		p, err := products.Create(ctx, s.fields, model.PendingImage(img, "placeholder.png"))
		if err != nil {
			return fmt.Errorf("failed to seed %q: %w", s.fields.Name, err)
		}
		fmt.Printf("Created %d %s (%s)\n", p.ID, p.Name, p.ImageRef)
	}

	return nil
}

// placeholder renders a flat 64x64 PNG.
func placeholder(c color.RGBA) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.SetRGBA(x, y, c)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode placeholder: %w", err)
	}
	return buf.Bytes(), nil
}
