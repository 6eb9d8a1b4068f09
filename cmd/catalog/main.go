// Command catalog builds an offline snapshot of the card catalogs.
// It fetches every enabled source, merges and dedupes the results, and
// upserts them into a local SQLite database for inspection without
// hitting the sites again.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"botbrowser/card"
	"botbrowser/config"
	"botbrowser/sources"
	"botbrowser/tokens"
)

func main() {
	var (
		dbPath  = flag.String("db", "catalog.db", "SQLite database path")
		search  = flag.String("search", "", "Source-side search term")
		sort    = flag.String("sort", "default", "API-level sort token")
		first   = flag.Int("first", 100, "Page size per source")
		nsfw    = flag.Bool("nsfw", false, "Include adult-flagged cards")
		timeout = flag.Duration("timeout", 60*time.Second, "Overall fetch timeout")
		stats   = flag.Bool("stats", false, "Show database statistics and exit")
	)
	flag.Parse()

	db, err := initDB(*dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if *stats {
		showStats(db)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	tok, err := tokens.Load()
	if err != nil {
		log.Fatalf("Failed to load tokens: %v", err)
	}

	var srcs []sources.Source
	for _, name := range cfg.Sources.Enabled {
		switch name {
		case "chub":
			srcs = append(srcs, sources.NewChub(tok.Get(tokens.ChubAPIToken)))
		case "aicc":
			srcs = append(srcs, sources.NewAICC())
		case "tavern":
			srcs = append(srcs, sources.NewTavern(cfg.Fetcher.UserAgent))
		}
	}
	if len(srcs) == 0 {
		log.Fatal("No sources enabled")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	runID := uuid.NewString()
	started := time.Now()

	agg := sources.NewAggregator(srcs...)
	agg.SetConcurrency(cfg.Sources.Concurrency)
	cards, errs := agg.FetchAll(ctx, sources.Query{
		Search: *search,
		Sort:   *sort,
		First:  *first,
		NSFW:   *nsfw,
	})

	for name, err := range errs {
		fmt.Fprintf(os.Stderr, "source %s failed: %v\n", name, err)
	}

	stored, err := storeCards(db, runID, cards)
	if err != nil {
		log.Fatalf("Failed to store cards: %v", err)
	}

	if err := recordRun(db, runID, started, len(srcs), stored, len(errs)); err != nil {
		log.Fatalf("Failed to record run: %v", err)
	}

	fmt.Printf("Run %s: %d cards stored from %d sources (%d failed) in %s\n",
		runID, stored, len(srcs), len(errs), time.Since(started).Round(time.Millisecond))
}

func initDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return nil, fmt.Errorf("pragma %s: %w", p, err)
		}
	}

	schema := `
	CREATE TABLE IF NOT EXISTS cards (
		key TEXT PRIMARY KEY,
		name TEXT,
		creator TEXT,
		service TEXT,
		tags TEXT,
		preview TEXT,
		nsfw BOOLEAN DEFAULT FALSE,
		avatar_url TEXT,
		card_url TEXT,
		first_seen TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		last_seen TIMESTAMP,
		last_run TEXT
	);

	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		started TIMESTAMP,
		finished TIMESTAMP,
		sources INTEGER,
		cards INTEGER,
		failures INTEGER
	);

	CREATE INDEX IF NOT EXISTS idx_cards_service ON cards(service);
	CREATE INDEX IF NOT EXISTS idx_cards_creator ON cards(creator);
	`

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return db, nil
}

// storeCards upserts the merged cards, preserving first_seen across runs.
func storeCards(db *sql.DB, runID string, cards []card.Card) (int, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO cards (key, name, creator, service, tags, preview, nsfw, avatar_url, card_url, last_seen, last_run)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, ?)
		ON CONFLICT(key) DO UPDATE SET
			name = excluded.name,
			creator = excluded.creator,
			service = excluded.service,
			tags = excluded.tags,
			preview = excluded.preview,
			nsfw = excluded.nsfw,
			avatar_url = excluded.avatar_url,
			card_url = excluded.card_url,
			last_seen = CURRENT_TIMESTAMP,
			last_run = excluded.last_run
	`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	stored := 0
	for _, c := range cards {
		tags := ""
		for i, t := range c.Tags {
			if i > 0 {
				tags += ","
			}
			tags += t
		}
		if _, err := stmt.Exec(c.Key(), c.Name, c.Creator, c.Service, tags,
			c.Preview, c.NSFW, c.AvatarURL, c.CardURL, runID); err != nil {
			return stored, fmt.Errorf("upserting %s: %w", c.Key(), err)
		}
		stored++
	}

	return stored, tx.Commit()
}

func recordRun(db *sql.DB, id string, started time.Time, srcCount, cardCount, failures int) error {
	_, err := db.Exec(
		`INSERT INTO runs (id, started, finished, sources, cards, failures) VALUES (?, ?, ?, ?, ?, ?)`,
		id, started, time.Now(), srcCount, cardCount, failures,
	)
	return err
}

func showStats(db *sql.DB) {
	var total, nsfw, runs int
	db.QueryRow("SELECT COUNT(*) FROM cards").Scan(&total)
	db.QueryRow("SELECT COUNT(*) FROM cards WHERE nsfw").Scan(&nsfw)
	db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&runs)

	fmt.Printf("cards: %d (%d nsfw)\nruns:  %d\n\n", total, nsfw, runs)

	rows, err := db.Query("SELECT service, COUNT(*) FROM cards GROUP BY service ORDER BY COUNT(*) DESC")
	if err != nil {
		return
	}
	defer rows.Close()

	for rows.Next() {
		var service string
		var count int
		if rows.Scan(&service, &count) == nil {
			fmt.Printf("%-10s %d\n", service, count)
		}
	}
}
