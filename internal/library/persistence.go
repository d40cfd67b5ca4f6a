package library

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/mrlokans/quotevault/internal/entities"
)

// KeyValueStore is the storage facility collections are written to.
// A missing key must read as nil, nil.
type KeyValueStore interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Ping() error
}

const (
	DefaultNamespace = "quotevault"

	CollectionBooks  = "books"
	CollectionQuotes = "quotes"
)

const booksSchemaJSON = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "title", "author", "created_at"],
    "properties": {
      "id": {"type": "string", "minLength": 1},
      "title": {"type": "string"},
      "author": {"type": "string"},
      "cover_image": {"type": ["string", "null"]},
      "created_at": {"type": "string", "format": "date-time"}
    }
  }
}`

const quotesSchemaJSON = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "content", "book_id", "created_at"],
    "properties": {
      "id": {"type": "string", "minLength": 1},
      "content": {"type": "string"},
      "book_id": {"type": "string", "minLength": 1},
      "page": {"type": ["integer", "null"], "minimum": 0},
      "chapter": {"type": "string"},
      "notes": {"type": "string"},
      "created_at": {"type": "string", "format": "date-time"},
      "is_favorite": {"type": "boolean"},
      "tags": {"type": ["array", "null"], "items": {"type": "string"}}
    }
  }
}`

var (
	booksSchema  = mustSchema(booksSchemaJSON)
	quotesSchema = mustSchema(quotesSchemaJSON)
)

func mustSchema(src string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("invalid collection schema: %v", err))
	}
	return schema
}

// Collections encodes whole collections into blobs stored under
// "<namespace>.saved_<collection>".
type Collections struct {
	kv        KeyValueStore
	namespace string
}

func NewCollections(kv KeyValueStore, namespace string) *Collections {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &Collections{kv: kv, namespace: namespace}
}

// Key returns the storage key of a collection.
func (c *Collections) Key(collection string) string {
	return c.namespace + ".saved_" + collection
}

func (c *Collections) SaveBooks(books []entities.Book) error {
	return save(c, CollectionBooks, books)
}

func (c *Collections) SaveQuotes(quotes []entities.Quote) error {
	return save(c, CollectionQuotes, quotes)
}

// LoadBooks never fails: unreadable or invalid data yields an empty collection.
func (c *Collections) LoadBooks() []entities.Book {
	return load[entities.Book](c, CollectionBooks, booksSchema)
}

// LoadQuotes never fails: unreadable or invalid data yields an empty collection.
func (c *Collections) LoadQuotes() []entities.Quote {
	return load[entities.Quote](c, CollectionQuotes, quotesSchema)
}

func save[T any](c *Collections, collection string, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", collection, err)
	}
	if err := c.kv.Put(c.Key(collection), data); err != nil {
		return fmt.Errorf("store %s: %w", collection, err)
	}
	return nil
}

func load[T any](c *Collections, collection string, schema *gojsonschema.Schema) []T {
	key := c.Key(collection)

	data, err := c.kv.Get(key)
	if err != nil {
		log.Printf("Failed to read %s, starting empty: %v", key, err)
		return []T{}
	}
	if len(data) == 0 {
		return []T{}
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		log.Printf("Failed to parse %s, starting empty: %v", key, err)
		return []T{}
	}
	if !result.Valid() {
		problems := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			problems = append(problems, e.String())
		}
		log.Printf("Stored %s does not match schema, starting empty: %s", key, strings.Join(problems, "; "))
		return []T{}
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		log.Printf("Failed to decode %s, starting empty: %v", key, err)
		return []T{}
	}
	if items == nil {
		items = []T{}
	}
	return items
}
