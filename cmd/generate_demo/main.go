// Command generate_demo creates a demo library database with quotes from public domain books.
// Usage: go run cmd/generate_demo/main.go [-db path/to/demo.db]
package main

import (
	"flag"
	"log"
	"os"

	"github.com/mrlokans/quotevault/internal/database"
	"github.com/mrlokans/quotevault/internal/library"
)

const defaultDemoDatabasePath = "./demo/demo.db"

type demoQuote struct {
	Content   string
	Page      int
	Chapter   string
	Tags      []string
	Favourite bool
}

type demoBook struct {
	Title  string
	Author string
	Quotes []demoQuote
}

func main() {
	dbPath := flag.String("db", defaultDemoDatabasePath, "path to the demo database file")
	namespace := flag.String("namespace", library.DefaultNamespace, "storage key namespace")
	flag.Parse()

	log.Printf("Generating demo database at %s...", *dbPath)

	// Start fresh
	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing demo database: %v", err)
	}

	db, err := database.NewDatabase(*dbPath, database.Options{})
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	cfg := library.DefaultConfig()
	cfg.Namespace = *namespace
	cfg.StrictPersistence = true
	store := library.NewStore(db.Blobs(), cfg)

	for _, b := range publicDomainBooks() {
		inputs := make([]library.QuoteInput, 0, len(b.Quotes))
		for _, q := range b.Quotes {
			page := q.Page
			inputs = append(inputs, library.QuoteInput{Content: q.Content, Page: &page, Chapter: q.Chapter, Tags: q.Tags})
		}

		book, added, err := store.ImportBook(b.Title, b.Author, inputs)
		if err != nil {
			log.Fatalf("Failed to save book %s: %v", b.Title, err)
		}

		favourites := make(map[string]bool)
		for _, q := range b.Quotes {
			favourites[q.Content] = q.Favourite
		}
		for _, q := range store.GetQuotes(book.ID) {
			if favourites[q.Content] {
				if _, err := store.ToggleFavorite(q.ID); err != nil {
					log.Fatalf("Failed to mark favourite in %s: %v", b.Title, err)
				}
			}
		}

		log.Printf("Saved: %s by %s (%d quotes)", book.Title, book.Author, added)
	}

	stats := store.Stats()
	log.Printf("Demo database generated: %d books, %d quotes, %d favourites", stats.Books, stats.Quotes, stats.Favourites)
}

func publicDomainBooks() []demoBook {
	return []demoBook{
		{
			Title:  "Meditations",
			Author: "Marcus Aurelius",
			Quotes: []demoQuote{
				{Content: "You have power over your mind - not outside events. Realize this, and you will find strength.", Page: 12, Chapter: "Book II", Tags: []string{"philosophy", "stoicism"}, Favourite: true},
				{Content: "The happiness of your life depends upon the quality of your thoughts.", Page: 31, Chapter: "Book V", Tags: []string{"philosophy"}},
				{Content: "Waste no more time arguing about what a good man should be. Be one.", Page: 118, Chapter: "Book X", Tags: []string{"philosophy", "virtue"}, Favourite: true},
				{Content: "The soul becomes dyed with the color of its thoughts.", Page: 33, Chapter: "Book V", Tags: []string{"philosophy"}},
			},
		},
		{
			Title:  "Letters from a Stoic",
			Author: "Seneca",
			Quotes: []demoQuote{
				{Content: "We suffer more often in imagination than in reality.", Page: 44, Chapter: "Letter XIII", Tags: []string{"philosophy", "stoicism"}, Favourite: true},
				{Content: "Luck is what happens when preparation meets opportunity.", Page: 91, Tags: []string{"philosophy"}},
			},
		},
		{
			Title:  "Pride and Prejudice",
			Author: "Jane Austen",
			Quotes: []demoQuote{
				{Content: "It is a truth universally acknowledged, that a single man in possession of a good fortune, must be in want of a wife.", Page: 1, Chapter: "Chapter 1", Tags: []string{"fiction", "classic"}, Favourite: true},
				{Content: "I declare after all there is no enjoyment like reading!", Page: 52, Chapter: "Chapter 11", Tags: []string{"fiction", "reading"}},
			},
		},
		{
			Title:  "Walden",
			Author: "Henry David Thoreau",
			Quotes: []demoQuote{
				{Content: "I went to the woods because I wished to live deliberately, to front only the essential facts of life.", Page: 90, Chapter: "Where I Lived, and What I Lived For", Tags: []string{"philosophy", "nature"}},
				{Content: "Rather than love, than money, than fame, give me truth.", Page: 322, Chapter: "Conclusion", Tags: []string{"philosophy"}},
			},
		},
	}
}
