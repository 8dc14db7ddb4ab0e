package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/k0kubun/go-ansi"
	"github.com/schollz/progressbar/v3"

	"github.com/stagekit/stagekit/config"
	"github.com/stagekit/stagekit/internal/dedup"
	"github.com/stagekit/stagekit/internal/domain"
	"github.com/stagekit/stagekit/internal/importer"
	"github.com/stagekit/stagekit/internal/library"
	"github.com/stagekit/stagekit/internal/scoring"
	"github.com/stagekit/stagekit/internal/similarity"
)

func main() {
	csvPath := flag.String("import", "", "Path to a CSV song library to import (required)")
	seedTitle := flag.String("seed", "", "Song title to print next-song suggestions for (optional)")
	userID := flag.String("user", "default", "User whose library to import into")
	configPath := flag.String("config", "./config/config.yaml", "Path to the config file")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage of %s:\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *csvPath == "" {
		log.Fatal("Missing required flag: -import")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		cfg = config.Default()
	}

	store, err := library.Open(cfg.Storage.Path)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	songs, err := importer.NewCSVImporter().Import(context.Background(), *csvPath)
	if err != nil {
		log.Fatal(err)
	}

	existing, err := store.ListSongs(*userID)
	if err != nil {
		log.Fatal(err)
	}

	bar := progressbar.NewOptions(
		len(songs),
		progressbar.OptionSetWriter(ansi.NewAnsiStdout()),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetTheme(progressbar.ThemeASCII),
		progressbar.OptionFullWidth(),
		progressbar.OptionShowCount(),
		progressbar.OptionSetDescription("[cyan]Importing songs...[reset]"),
	)

	imported, skipped := 0, 0
	for _, song := range songs {
		if dup := dedup.FindDuplicate(song, existing, ""); dup != nil {
			skipped++
			bar.Add(1)
			continue
		}
		if err := store.CreateSong(*userID, song); err != nil {
			log.Fatal(err)
		}
		existing = append(existing, song)
		imported++
		bar.Add(1)
	}
	fmt.Printf("\nImported %d songs (%d duplicates skipped)\n", imported, skipped)

	if *seedTitle == "" {
		return
	}

	seed := findByTitle(existing, *seedTitle)
	if seed == nil {
		log.Fatalf("Seed song not found in library: %s", *seedTitle)
	}

	results, err := scoring.Rank(seed, existing, map[string]bool{seed.ID: true}, scoring.DefaultRankLimit)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("\nNext-song suggestions after %q by %s:\n", seed.Title, seed.Artist)
	for i, result := range results {
		fmt.Printf("%d. %s - %s (%.1f)\n", i+1, result.Song.Artist, result.Song.Title, result.Score)
		for _, reason := range result.Reasons {
			fmt.Printf("   %s\n", reason)
		}
	}
}

func findByTitle(songs []*domain.Song, title string) *domain.Song {
	normalized := similarity.Normalize(title)
	for _, song := range songs {
		if similarity.Normalize(song.Title) == normalized {
			return song
		}
	}
	// Fall back to a fuzzy match so minor spelling differences still resolve.
	var best *domain.Song
	bestScore := 0.0
	for _, song := range songs {
		if score := similarity.Score(similarity.Normalize(song.Title), normalized); score > bestScore && score >= 0.8 {
			best, bestScore = song, score
		}
	}
	return best
}
