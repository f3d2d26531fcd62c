package model

// Genre is a movie category. Names are unique across the `genres` table.
type Genre struct {
	ID   uint64 // genres.id
	Name string // genres.name
}

// Actor is a cast member. The displayed full name is derived as
// "first_name last_name" by the view layer, never stored.
type Actor struct {
	ID        uint64 // actors.id
	FirstName string // actors.first_name
	LastName  string // actors.last_name
}

// CinemaHall describes a screening room and its seat geometry. Rows and
// SeatsInRow must both be positive; together they bound the (row, seat)
// pairs a ticket may reference.
type CinemaHall struct {
	ID         uint64 // cinema_halls.id
	Name       string // cinema_halls.name
	Rows       int    // cinema_halls.rows_count
	SeatsInRow int    // cinema_halls.seats_in_row
}
