package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/shelfkeeper/shelfkeeper-server/internal/domain"
	"github.com/shelfkeeper/shelfkeeper-server/internal/live"
)

func (s *Server) registerBookRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listBooks",
		Method:      http.MethodGet,
		Path:        "/api/v1/books",
		Summary:     "List books",
		Description: "Returns all books sorted by title, optionally filtered by search query or language",
		Tags:        []string{"Books"},
	}, s.handleListBooks)

	huma.Register(s.api, huma.Operation{
		OperationID: "addBook",
		Method:      http.MethodPost,
		Path:        "/api/v1/books",
		Summary:     "Add book",
		Description: "Adds a new book; its location path is resolved into the location tree",
		Tags:        []string{"Books"},
	}, s.handleAddBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "getBook",
		Method:      http.MethodGet,
		Path:        "/api/v1/books/{id}",
		Summary:     "Get book",
		Description: "Returns a book by ID",
		Tags:        []string{"Books"},
	}, s.handleGetBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateBook",
		Method:      http.MethodPut,
		Path:        "/api/v1/books/{id}",
		Summary:     "Update book",
		Description: "Replaces a book record; the location path is re-resolved from the flat fields",
		Tags:        []string{"Books"},
	}, s.handleUpdateBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteBook",
		Method:      http.MethodDelete,
		Path:        "/api/v1/books/{id}",
		Summary:     "Delete book",
		Description: "Deletes a book; idempotent, location nodes are kept",
		Tags:        []string{"Books"},
	}, s.handleDeleteBook)
}

// === DTOs ===

type BookRequest struct {
	Title          string `json:"title" doc:"Book title"`
	Authors        string `json:"authors" doc:"Authors, comma separated"`
	Language       string `json:"language" doc:"Language code"`
	Genre          string `json:"genre,omitempty" doc:"Genre"`
	LocationLevel1 string `json:"location_level1" doc:"Room"`
	LocationLevel2 string `json:"location_level2,omitempty" doc:"Shelf or cabinet"`
	LocationLevel3 string `json:"location_level3,omitempty" doc:"Row or drawer"`
	LocationLevel4 string `json:"location_level4,omitempty" doc:"Section"`
	LocationLevel5 string `json:"location_level5,omitempty" doc:"Position"`
	ReadingStatus  string `json:"reading_status,omitempty" doc:"not_read, reading or read" enum:"not_read,reading,read"`
}

type BookResponse struct {
	ID             int64  `json:"id" doc:"Book ID"`
	Title          string `json:"title" doc:"Book title"`
	Authors        string `json:"authors" doc:"Authors"`
	Language       string `json:"language" doc:"Language code"`
	Genre          string `json:"genre,omitempty" doc:"Genre"`
	LocationLevel1 string `json:"location_level1" doc:"Room"`
	LocationLevel2 string `json:"location_level2,omitempty" doc:"Shelf or cabinet"`
	LocationLevel3 string `json:"location_level3,omitempty" doc:"Row or drawer"`
	LocationLevel4 string `json:"location_level4,omitempty" doc:"Section"`
	LocationLevel5 string `json:"location_level5,omitempty" doc:"Position"`
	LocationID     int64  `json:"location_id,omitempty" doc:"Resolved leaf location ID"`
	ReadingStatus  string `json:"reading_status" doc:"Reading status"`
}

type ListBooksInput struct {
	Query    string `query:"q" doc:"Case-insensitive substring search over title and authors"`
	Language string `query:"language" doc:"Exact language code filter"`
}

type ListBooksResponse struct {
	Books []BookResponse `json:"books" doc:"List of books"`
}

type ListBooksOutput struct {
	Body ListBooksResponse
}

type AddBookInput struct {
	Body BookRequest
}

type BookOutput struct {
	Body BookResponse
}

type GetBookInput struct {
	ID int64 `path:"id" doc:"Book ID"`
}

type UpdateBookInput struct {
	ID   int64 `path:"id" doc:"Book ID"`
	Body BookRequest
}

type DeleteBookInput struct {
	ID int64 `path:"id" doc:"Book ID"`
}

type MessageResponse struct {
	Message string `json:"message" doc:"Status message"`
}

type MessageOutput struct {
	Body MessageResponse
}

func mapBookResponse(b *domain.Book) BookResponse {
	return BookResponse{
		ID:             b.ID,
		Title:          b.Title,
		Authors:        b.Authors,
		Language:       b.Language,
		Genre:          b.Genre,
		LocationLevel1: b.LocationLevel1,
		LocationLevel2: b.LocationLevel2,
		LocationLevel3: b.LocationLevel3,
		LocationLevel4: b.LocationLevel4,
		LocationLevel5: b.LocationLevel5,
		LocationID:     b.LocationID,
		ReadingStatus:  string(b.ReadingStatus),
	}
}

func bookFromRequest(req BookRequest) *domain.Book {
	return &domain.Book{
		Title:          req.Title,
		Authors:        req.Authors,
		Language:       req.Language,
		Genre:          req.Genre,
		LocationLevel1: req.LocationLevel1,
		LocationLevel2: req.LocationLevel2,
		LocationLevel3: req.LocationLevel3,
		LocationLevel4: req.LocationLevel4,
		LocationLevel5: req.LocationLevel5,
		ReadingStatus:  domain.ReadingStatus(req.ReadingStatus),
	}
}

// === Handlers ===

func (s *Server) handleListBooks(ctx context.Context, input *ListBooksInput) (*ListBooksOutput, error) {
	var (
		books []*domain.Book
		err   error
	)
	switch {
	case input.Query != "":
		books, err = s.services.Catalog.SearchBooks(ctx, input.Query)
	case input.Language != "":
		books, err = s.services.Catalog.ListBooksByLanguage(ctx, input.Language)
	default:
		books, err = s.services.Catalog.ListBooks(ctx)
	}
	if err != nil {
		return nil, err
	}

	if input.Query != "" {
		books = live.FilterByLanguage(books, input.Language)
	}

	resp := make([]BookResponse, len(books))
	for i, b := range books {
		resp[i] = mapBookResponse(b)
	}
	return &ListBooksOutput{Body: ListBooksResponse{Books: resp}}, nil
}

func (s *Server) handleAddBook(ctx context.Context, input *AddBookInput) (*BookOutput, error) {
	b := bookFromRequest(input.Body)
	if _, err := s.services.Catalog.AddBook(ctx, b); err != nil {
		return nil, err
	}
	return &BookOutput{Body: mapBookResponse(b)}, nil
}

func (s *Server) handleGetBook(ctx context.Context, input *GetBookInput) (*BookOutput, error) {
	b, err := s.services.Catalog.GetBook(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &BookOutput{Body: mapBookResponse(b)}, nil
}

func (s *Server) handleUpdateBook(ctx context.Context, input *UpdateBookInput) (*BookOutput, error) {
	b := bookFromRequest(input.Body)
	b.ID = input.ID
	if err := s.services.Catalog.UpdateBook(ctx, b); err != nil {
		return nil, err
	}
	return &BookOutput{Body: mapBookResponse(b)}, nil
}

func (s *Server) handleDeleteBook(ctx context.Context, input *DeleteBookInput) (*MessageOutput, error) {
	if err := s.services.Catalog.DeleteBook(ctx, input.ID); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "Book deleted"}}, nil
}
