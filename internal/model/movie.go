package model

// Movie represents a row in the `movies` table together with its
// many-to-many genre and actor links. Image holds the relative storage
// path of the uploaded poster (nil until one is uploaded); it is
// write-only through the dedicated upload endpoint, never through the
// general create path.
type Movie struct {
	ID          uint64  // movies.id
	Title       string  // movies.title (indexed)
	Description string  // movies.description
	Duration    int     // movies.duration, minutes
	Image       *string // movies.image (nullable)

	Genres []Genre // via movie_genres
	Actors []Actor // via movie_actors
}
