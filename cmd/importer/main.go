package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"bookstore-storefront/internal/config"
	"bookstore-storefront/internal/db"
	"bookstore-storefront/internal/importer"
	bookrepo "bookstore-storefront/internal/repository/book"
	"github.com/joho/godotenv"
)

func main() {
	var filePath string
	flag.StringVar(&filePath, "file", "", "Path to a book catalogue CSV export")
	flag.Parse()

	if filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	_ = godotenv.Load()
	cfg := config.FromEnv()
	logger := log.New(os.Stderr, "[importer] ", log.LstdFlags|log.LUTC)
	ctx := context.Background()

	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	f, err := os.Open(filePath)
	if err != nil {
		logger.Fatalf("open file: %v", err)
	}
	defer f.Close()

	imp := importer.NewCSVImporter(f, bookrepo.NewPostgres(pool, logger))

	start := time.Now()
	report, err := imp.Run(ctx)
	if err != nil {
		logger.Fatalf("import failed after %d books: %v", report.Imported, err)
	}

	for _, skipped := range report.Skipped {
		fmt.Fprintf(os.Stderr, "skipped %v\n", skipped)
	}
	fmt.Printf("Imported %d books (%d skipped) in %s\n", report.Imported, len(report.Skipped), time.Since(start).Truncate(time.Millisecond))
}
