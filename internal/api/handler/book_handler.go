package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pagebound/bookstore-api/internal/core/ports"
)

// BookHandler handles catalog endpoints.
type BookHandler struct {
	service ports.BookService
}

func NewBookHandler(service ports.BookService) *BookHandler {
	return &BookHandler{service: service}
}

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type bookRequest struct {
	Title       string    `json:"title"        validate:"required"`
	Authors     []string  `json:"authors"      validate:"required,min=1,dive,required"`
	Price       float64   `json:"price"        validate:"gte=0"`
	ReleaseDate time.Time `json:"release_date" validate:"required"`
	ISBN        string    `json:"isbn"         validate:"required"`
	Stock       int       `json:"stock"        validate:"gte=0"`
}

// List returns catalog entries, optionally filtered by a substring query.
//
// @Summary      List books
// @Tags         books
// @Produce      json
// @Param        q  query  string  false  "Substring matched against title and authors"
// @Success      200  {array}  domain.Book
// @Router       /v1/books [get]
func (h *BookHandler) List(c echo.Context) error {
	books, err := h.service.List(c.Request().Context(), ports.BookFilter{Query: c.QueryParam("q")})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, books)
}

// Get returns a single catalog entry.
//
// @Summary      Get a book
// @Tags         books
// @Produce      json
// @Param        id  path  string  true  "Book id"
// @Success      200  {object}  domain.Book
// @Failure      404  {object}  errorResponse
// @Router       /v1/books/{id} [get]
func (h *BookHandler) Get(c echo.Context) error {
	book, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, book)
}

// Create adds a catalog entry. Admin only.
//
// @Summary      Create a book
// @Tags         books
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      bookRequest  true  "Book details"
// @Success      201   {object}  domain.Book
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/books [post]
func (h *BookHandler) Create(c echo.Context) error {
	var req bookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	book, err := h.service.Create(c.Request().Context(), principalFrom(c), toBookInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, book)
}

// Update replaces a catalog entry. Admin only.
//
// @Summary      Update a book
// @Tags         books
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "Book id"
// @Param        body  body      bookRequest  true  "Book details"
// @Success      200   {object}  domain.Book
// @Failure      404   {object}  errorResponse
// @Router       /v1/books/{id} [put]
func (h *BookHandler) Update(c echo.Context) error {
	var req bookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	book, err := h.service.Update(c.Request().Context(), principalFrom(c), c.Param("id"), toBookInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, book)
}

// Delete removes a catalog entry. Admin only.
//
// @Summary      Delete a book
// @Tags         books
// @Security     BearerAuth
// @Param        id  path  string  true  "Book id"
// @Success      204  "deleted"
// @Failure      404  {object}  errorResponse
// @Router       /v1/books/{id} [delete]
func (h *BookHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), principalFrom(c), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func toBookInput(req bookRequest) ports.BookInput {
	return ports.BookInput{
		Title:       req.Title,
		Authors:     req.Authors,
		Price:       req.Price,
		ReleaseDate: req.ReleaseDate,
		ISBN:        req.ISBN,
		Stock:       req.Stock,
	}
}
