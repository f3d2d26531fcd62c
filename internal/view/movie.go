package view

import "github.com/NazarKravchenk0/cinema-booking-api/internal/model"

// MovieView is shared by the movie list and detail operations: genres
// collapse to a flat set of names, actors to "first last" strings. The
// create response reuses it with relations echoed back the same way.
type MovieView struct {
	ID          uint64   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Duration    int      `json:"duration"`
	Genres      []string `json:"genres"`
	Actors      []string `json:"actors"`
	Image       *string  `json:"image"`
}

func NewMovieView(m model.Movie) MovieView {
	genres := make([]string, 0, len(m.Genres))
	for _, g := range m.Genres {
		genres = append(genres, g.Name)
	}
	actors := make([]string, 0, len(m.Actors))
	for _, a := range m.Actors {
		actors = append(actors, a.FirstName+" "+a.LastName)
	}
	return MovieView{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Duration:    m.Duration,
		Genres:      genres,
		Actors:      actors,
		Image:       m.Image,
	}
}

func NewMovieList(ms []model.Movie) []MovieView {
	out := make([]MovieView, 0, len(ms))
	for _, m := range ms {
		out = append(out, NewMovieView(m))
	}
	return out
}

// MovieImageView is the single extra variant returned by the image
// upload operation.
type MovieImageView struct {
	ID    uint64  `json:"id"`
	Image *string `json:"image"`
}

func NewMovieImageView(id uint64, image string) MovieImageView {
	return MovieImageView{ID: id, Image: &image}
}

// MovieNestedView is the reduced movie representation embedded in the
// session detail variant.
type MovieNestedView struct {
	ID    uint64  `json:"id"`
	Title string  `json:"title"`
	Image *string `json:"image"`
}
