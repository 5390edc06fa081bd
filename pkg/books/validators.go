package books

// CreateBookPayload represents the request body for creating a book.
type CreateBookPayload struct {
	Title           string  `json:"title" validate:"required,max=100"`
	Author          string  `json:"author" validate:"required,max=100"`
	Publisher       string  `json:"publisher" validate:"required,max=100"`
	Genre           string  `json:"genre" validate:"required,max=100"`
	Edition         int     `json:"edition" validate:"required,min=1"`
	PublicationDate string  `json:"publication_date" validate:"required,libdate"`
	Description     string  `json:"description" validate:"max=500"`
	Price           float64 `json:"price" validate:"required,gt=0"`
	ISBN            string  `json:"isbn" validate:"required,isbn"`
	Quantity        int     `json:"quantity" validate:"min=0"`
}

// UpdateBookPayload represents the request body for updating a book. Only
// provided fields are changed.
type UpdateBookPayload struct {
	Title           *string  `json:"title" validate:"omitempty,max=100"`
	Author          *string  `json:"author" validate:"omitempty,max=100"`
	Publisher       *string  `json:"publisher" validate:"omitempty,max=100"`
	Genre           *string  `json:"genre" validate:"omitempty,max=100"`
	Edition         *int     `json:"edition" validate:"omitempty,min=1"`
	PublicationDate *string  `json:"publication_date" validate:"omitempty,libdate"`
	Description     *string  `json:"description" validate:"omitempty,max=500"`
	Price           *float64 `json:"price" validate:"omitempty,gt=0"`
}

// CopiesPayload represents the request body for adding or removing copies.
type CopiesPayload struct {
	Count int `json:"count" validate:"required,min=1"`
}

// ListBooksQuery represents the query parameters for searching the catalog.
type ListBooksQuery struct {
	ISBN            *string  `query:"isbn" validate:"omitempty,isbn"`
	Title           *string  `query:"title"`
	Author          *string  `query:"author"`
	Publisher       *string  `query:"publisher"`
	Genre           *string  `query:"genre"`
	Edition         *int     `query:"edition" validate:"omitempty,min=1"`
	PublicationDate *string  `query:"publication_date" validate:"omitempty,libdate"`
	Price           *float64 `query:"price" validate:"omitempty,gt=0"`

	Limit  int `query:"limit" default:"50"`
	Offset int `query:"offset" default:"0"`
}
