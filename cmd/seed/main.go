package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"worldlib/internal/config"
	catalogSvc "worldlib/internal/domain/services/catalog"
	"worldlib/internal/repository/postgres"
	postgresCatalog "worldlib/internal/repository/postgres/catalog"
	serviceCatalog "worldlib/internal/service/catalog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

const seedUsername = "demo_author"

func main() {
	// Parse command-line flags
	clearData := flag.Bool("clear-data", false, "Clear the demo author's catalog before seeding")
	schemaOnly := flag.Bool("schema-only", false, "Only run migrations, don't seed data")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && *clearData {
		log.Fatalf("🚫 BLOCKED: Cannot run --clear-data in production environment")
	}

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	ctx := context.Background()

	// Run migrations first so seeding always targets the current schema
	log.Println("📋 Ensuring database schema is up to date...")
	if err := postgres.RunMigrations(ctx, cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("✅ Schema ready")

	if *schemaOnly {
		log.Println("✅ Schema setup complete (schema-only mode)")
		return
	}

	// Create database connection pool
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames()

	// Ensure the demo author exists
	userID, err := ensureSeedUser(ctx, pool, tables)
	if err != nil {
		log.Fatalf("Failed to ensure seed user: %v", err)
	}

	if *clearData {
		log.Println("🧹 Clearing the demo author's catalog...")
		if err := clearCatalog(ctx, pool, tables, userID); err != nil {
			log.Fatalf("Failed to clear data: %v", err)
		}
		log.Println("✅ Data cleared")
	}

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	seriesRepo := postgresCatalog.NewSeriesRepository(repoConfig)
	bookRepo := postgresCatalog.NewBookRepository(repoConfig)
	chapterRepo := postgresCatalog.NewChapterRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	// Create services
	seriesService := serviceCatalog.NewSeriesService(seriesRepo, bookRepo, txManager, logger)
	bookService := serviceCatalog.NewBookService(bookRepo, seriesRepo, chapterRepo, logger)
	chapterService := serviceCatalog.NewChapterService(chapterRepo, bookRepo, txManager, logger)

	log.Printf("🌱 Seeding catalog for %s (%s)", seedUsername, userID)
	if err := seedCatalog(ctx, userID, seriesService, bookService, chapterService); err != nil {
		log.Fatalf("Failed to seed catalog: %v", err)
	}
	log.Println("✅ Seeding complete")
}

// ensureSeedUser inserts the demo author if missing and returns its id.
func ensureSeedUser(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) (string, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (username, name, email)
		VALUES ($1, $2, $3)
		ON CONFLICT (username) DO UPDATE SET updated_at = now()
		RETURNING id`, tables.Users)

	var id string
	err := pool.QueryRow(ctx, query, seedUsername, "Demo Author", "demo@example.com").Scan(&id)
	if err != nil {
		return "", fmt.Errorf("upsert seed user: %w", err)
	}
	return id, nil
}

// clearCatalog removes everything the demo author has written. Chapters,
// bookmarks and reviews go through the schema cascades.
func clearCatalog(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames, userID string) error {
	if _, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE author_id = $1", tables.Books), userID); err != nil {
		return fmt.Errorf("delete books: %w", err)
	}
	if _, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE author_id = $1", tables.Series), userID); err != nil {
		return fmt.Errorf("delete series: %w", err)
	}
	return nil
}

type seedChapter struct {
	title    string
	content  string
	isPublic bool
}

type seedBook struct {
	title       string
	description string
	isPublic    bool
	inSeries    bool
	chapters    []seedChapter
}

// seedCatalog builds a small demo library through the same services the API
// uses, so word counts and sort orders come out the way production writes
// would produce them.
func seedCatalog(
	ctx context.Context,
	userID string,
	seriesService catalogSvc.SeriesService,
	bookService catalogSvc.BookService,
	chapterService catalogSvc.ChapterService,
) error {
	series, err := seriesService.CreateSeries(ctx, &catalogSvc.CreateSeriesRequest{
		UserID: userID,
		Name:   "The Lighthouse Chronicles",
	})
	if err != nil {
		return fmt.Errorf("create series: %w", err)
	}

	books := []seedBook{
		{
			title:       "Keeper of the First Flame",
			description: "A lighthouse keeper discovers the lamp she tends is older than the sea.",
			isPublic:    true,
			inSeries:    true,
			chapters: []seedChapter{
				{
					title:    "The Long Watch",
					content:  "The lamp had burned for two hundred years before Maren ever climbed the stairs. She counted the steps out of habit, one hundred and twelve, and on the last one the light dimmed as if it had been waiting for her.",
					isPublic: true,
				},
				{
					title:    "Saltglass",
					content:  "By morning the windows had grown a skin of salt. Maren scraped it away and found writing underneath, etched into the glass from the inside.",
					isPublic: true,
				},
				{
					title:   "Notes for the Next Keeper",
					content: "Draft. Do not publish until the ending settles.",
				},
			},
		},
		{
			title:       "The Tide Ledger",
			description: "Second book of the Chronicles. The town below the light starts keeping two sets of records.",
			isPublic:    true,
			inSeries:    true,
			chapters: []seedChapter{
				{
					title:    "Double Entry",
					content:  "Every tide was logged twice in the town hall, once in ink and once in something that dried darker.",
					isPublic: true,
				},
			},
		},
		{
			title:       "Unsent Letters",
			description: "A standalone collection, still private.",
			chapters: []seedChapter{
				{title: "To the Harbor Master", content: "You were right about the weather and wrong about everything else."},
			},
		},
	}

	for _, sb := range books {
		req := &catalogSvc.CreateBookRequest{
			UserID:      userID,
			Title:       sb.title,
			Description: sb.description,
			IsPublic:    sb.isPublic,
		}
		if sb.inSeries {
			req.SeriesID = &series.ID
		}

		book, err := bookService.CreateBook(ctx, req)
		if err != nil {
			return fmt.Errorf("create book %q: %w", sb.title, err)
		}

		for _, sc := range sb.chapters {
			chapter, err := chapterService.CreateChapter(ctx, book.ID, userID)
			if err != nil {
				return fmt.Errorf("create chapter %q: %w", sc.title, err)
			}
			if _, err := chapterService.UpdateChapter(ctx, chapter.ID, userID, &catalogSvc.UpdateChapterRequest{
				Title:    sc.title,
				IsPublic: sc.isPublic,
				Content:  sc.content,
			}); err != nil {
				return fmt.Errorf("fill chapter %q: %w", sc.title, err)
			}
		}

		log.Printf("📝 Seeded %q with %d chapters", sb.title, len(sb.chapters))
	}

	return nil
}
