package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/quotevault/internal/covers"
	"github.com/mrlokans/quotevault/internal/entities"
)

type BooksController struct {
	store BookStore
}

func NewBooksController(store BookStore) *BooksController {
	return &BooksController{store: store}
}

// BookResponse omits the cover bytes; they are served by /api/books/:id/cover.
type BookResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	HasCover  bool      `json:"has_cover"`
	CoverURL  string    `json:"cover_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func toBookResponse(b entities.Book) BookResponse {
	resp := BookResponse{
		ID:        b.ID,
		Title:     b.Title,
		Author:    b.Author,
		HasCover:  b.HasCover(),
		CreatedAt: b.CreatedAt,
	}
	if resp.HasCover {
		resp.CoverURL = "/api/books/" + b.ID + "/cover"
	}
	return resp
}

type AddBookRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	// CoverImage is base64 in JSON.
	CoverImage []byte `json:"cover_image"`
}

// List handles GET /api/books?q=
func (bc *BooksController) List(c *gin.Context) {
	books := bc.store.SearchBooks(c.Query("q"))

	resp := make([]BookResponse, 0, len(books))
	for _, b := range books {
		resp = append(resp, toBookResponse(b))
	}
	c.JSON(http.StatusOK, gin.H{"books": resp, "total": len(resp)})
}

// Create handles POST /api/books
func (bc *BooksController) Create(c *gin.Context) {
	var req AddBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	book, err := bc.store.AddBook(req.Title, req.Author, req.CoverImage)
	if err != nil {
		respondStoreError(c, err, "add book")
		return
	}
	respondCreated(c, toBookResponse(*book))
}

// Get handles GET /api/books/:id
func (bc *BooksController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := bc.store.GetBook(id)
	if err != nil {
		respondStoreError(c, err, "get book")
		return
	}
	c.JSON(http.StatusOK, toBookResponse(*book))
}

// Delete handles DELETE /api/books/:id and reports how many quotes went with it.
func (bc *BooksController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	removed, err := bc.store.DeleteBook(id)
	if err != nil {
		respondStoreError(c, err, "delete book")
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{
		Message: "book deleted",
		Data:    gin.H{"quotes_deleted": removed},
	})
}

// Cover handles GET /api/books/:id/cover
func (bc *BooksController) Cover(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := bc.store.GetBook(id)
	if err != nil {
		respondStoreError(c, err, "get cover")
		return
	}
	if !book.HasCover() {
		respondNotFound(c, "cover")
		return
	}

	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, covers.ContentType(book.CoverImage), book.CoverImage)
}

// Quotes handles GET /api/books/:id/quotes
func (bc *BooksController) Quotes(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := bc.store.GetBook(id); err != nil {
		respondStoreError(c, err, "get book quotes")
		return
	}

	quotes := bc.store.GetQuotes(id)
	c.JSON(http.StatusOK, gin.H{"quotes": quotes, "total": len(quotes)})
}
