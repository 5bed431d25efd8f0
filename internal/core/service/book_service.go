package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/pagebound/bookstore-api/internal/api/metrics"
	"github.com/pagebound/bookstore-api/internal/core/domain"
	"github.com/pagebound/bookstore-api/internal/core/ports"
)

// BookService implements catalog use cases. Reads are open to everyone,
// including anonymous callers; writes are admin only.
type BookService struct {
	books  ports.BookRepository
	logger zerolog.Logger
}

func NewBookService(books ports.BookRepository, logger zerolog.Logger) *BookService {
	return &BookService{books: books, logger: logger}
}

func (s *BookService) List(ctx context.Context, filter ports.BookFilter) ([]*domain.Book, error) {
	return s.books.List(ctx, filter)
}

func (s *BookService) Get(ctx context.Context, id string) (*domain.Book, error) {
	return s.books.FindByID(ctx, id)
}

func (s *BookService) Create(ctx context.Context, p domain.Principal, input ports.BookInput) (*domain.Book, error) {
	if !domain.Authorize(p, domain.ActionWriteBook, domain.Resource{}) {
		metrics.AuthzDenialsTotal.WithLabelValues(string(domain.ActionWriteBook)).Inc()
		return nil, domain.ErrForbidden
	}

	now := time.Now().UTC()
	book := &domain.Book{
		Title:       input.Title,
		Authors:     input.Authors,
		Price:       input.Price,
		ReleaseDate: input.ReleaseDate,
		ISBN:        input.ISBN,
		Stock:       input.Stock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.books.Create(ctx, book)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("book_id", created.ID).Str("isbn", created.ISBN).Msg("book created")
	return created, nil
}

func (s *BookService) Update(ctx context.Context, p domain.Principal, id string, input ports.BookInput) (*domain.Book, error) {
	if !domain.Authorize(p, domain.ActionWriteBook, domain.Resource{}) {
		metrics.AuthzDenialsTotal.WithLabelValues(string(domain.ActionWriteBook)).Inc()
		return nil, domain.ErrForbidden
	}

	book, err := s.books.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	book.Title = input.Title
	book.Authors = input.Authors
	book.Price = input.Price
	book.ReleaseDate = input.ReleaseDate
	book.ISBN = input.ISBN
	book.Stock = input.Stock
	book.UpdatedAt = time.Now().UTC()

	if err := s.books.Update(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

func (s *BookService) Delete(ctx context.Context, p domain.Principal, id string) error {
	if !domain.Authorize(p, domain.ActionWriteBook, domain.Resource{}) {
		metrics.AuthzDenialsTotal.WithLabelValues(string(domain.ActionWriteBook)).Inc()
		return domain.ErrForbidden
	}
	return s.books.Delete(ctx, id)
}
