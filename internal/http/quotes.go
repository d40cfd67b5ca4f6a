package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/quotevault/internal/library"
)

type QuotesController struct {
	store  QuoteStore
	picker library.Picker
}

func NewQuotesController(store QuoteStore) *QuotesController {
	return &QuotesController{store: store}
}

type AddQuoteRequest struct {
	Content string   `json:"content"`
	BookID  string   `json:"book_id"`
	Page    *int     `json:"page"`
	Chapter string   `json:"chapter"`
	Notes   string   `json:"notes"`
	Tags    []string `json:"tags"`
}

// UpdateQuoteRequest changes only the fields present in the body.
type UpdateQuoteRequest struct {
	Content   *string `json:"content"`
	Page      *int    `json:"page"`
	ClearPage bool    `json:"clear_page"`
	Chapter   *string `json:"chapter"`
	Notes     *string `json:"notes"`
}

type SetTagsRequest struct {
	Tags []string `json:"tags"`
}

// List handles GET /api/quotes?q=&book_id=&favorites=&tag=
func (qc *QuotesController) List(c *gin.Context) {
	filter := library.QuoteFilter{
		Query:      c.Query("q"),
		BookID:     c.Query("book_id"),
		TagPattern: c.Query("tag"),
	}
	if raw := c.Query("favorites"); raw != "" {
		fav, err := strconv.ParseBool(raw)
		if err != nil {
			respondBadRequest(c, "favorites must be a boolean")
			return
		}
		filter.FavoritesOnly = fav
	}

	quotes, err := qc.store.FindQuotes(filter)
	if err != nil {
		respondStoreError(c, err, "find quotes")
		return
	}
	c.JSON(http.StatusOK, gin.H{"quotes": quotes, "total": len(quotes)})
}

// Create handles POST /api/quotes
func (qc *QuotesController) Create(c *gin.Context) {
	var req AddQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	quote, err := qc.store.AddQuote(library.QuoteInput{
		Content: req.Content,
		BookID:  req.BookID,
		Page:    req.Page,
		Chapter: req.Chapter,
		Notes:   req.Notes,
		Tags:    req.Tags,
	})
	if err != nil {
		respondStoreError(c, err, "add quote")
		return
	}
	respondCreated(c, quote)
}

// Daily handles GET /api/quotes/daily
func (qc *QuotesController) Daily(c *gin.Context) {
	quote, book, err := qc.store.DailyQuote(qc.picker)
	if err != nil {
		respondStoreError(c, err, "daily quote")
		return
	}
	c.JSON(http.StatusOK, gin.H{"quote": quote, "book": toBookResponse(*book)})
}

// Get handles GET /api/quotes/:id
func (qc *QuotesController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	quote, err := qc.store.GetQuote(id)
	if err != nil {
		respondStoreError(c, err, "get quote")
		return
	}
	c.JSON(http.StatusOK, quote)
}

// Update handles PATCH /api/quotes/:id
func (qc *QuotesController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	quote, err := qc.store.UpdateQuote(id, library.QuoteEdit{
		Content:   req.Content,
		Page:      req.Page,
		ClearPage: req.ClearPage,
		Chapter:   req.Chapter,
		Notes:     req.Notes,
	})
	if err != nil {
		respondStoreError(c, err, "update quote")
		return
	}
	c.JSON(http.StatusOK, quote)
}

// Delete handles DELETE /api/quotes/:id
func (qc *QuotesController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := qc.store.DeleteQuote(id); err != nil {
		respondStoreError(c, err, "delete quote")
		return
	}
	respondSuccess(c, "quote deleted")
}

// ToggleFavourite handles POST /api/quotes/:id/favourite
func (qc *QuotesController) ToggleFavourite(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	quote, err := qc.store.ToggleFavorite(id)
	if err != nil {
		respondStoreError(c, err, "toggle favourite")
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": quote.ID, "is_favorite": quote.IsFavorite})
}

// SetTags handles PUT /api/quotes/:id/tags
func (qc *QuotesController) SetTags(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req SetTagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body: "+err.Error())
		return
	}

	quote, err := qc.store.SetTags(id, req.Tags)
	if err != nil {
		respondStoreError(c, err, "set tags")
		return
	}
	c.JSON(http.StatusOK, quote)
}

// Share handles GET /api/quotes/:id/share
func (qc *QuotesController) Share(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	text, err := qc.store.ShareQuote(id)
	if err != nil {
		respondStoreError(c, err, "share quote")
		return
	}
	c.String(http.StatusOK, text)
}
