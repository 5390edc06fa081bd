package rentals

// RentPayload represents the request body for opening a rental. The book may
// be addressed by id or by ISBN.
type RentPayload struct {
	BookID     int    `json:"book_id" validate:"omitempty,min=1"`
	ISBN       string `json:"isbn" validate:"omitempty,isbn"`
	ReturnDate string `json:"return_date" validate:"required,libdate"`
}

// ReturnPayload represents the request body for closing a rental.
type ReturnPayload struct {
	BookID int `json:"book_id" validate:"required,min=1"`
}
