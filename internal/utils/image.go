package utils

import (
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// imageExts lists the upload extensions accepted for movie posters. The
// extension is taken from the uploaded filename, case-folded; file
// contents are not inspected.
var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".bmp":  true,
}

// ValidImageExt reports whether the uploaded filename carries a known
// image extension.
func ValidImageExt(filename string) bool {
	return imageExts[strings.ToLower(path.Ext(filename))]
}

// MovieImagePath builds the storage path of an uploaded poster:
// uploads/movies/<slug(title)>-<uuid><ext>. The random suffix keeps
// repeated uploads for the same title from colliding.
func MovieImagePath(title, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	name := slug.Make(title) + "-" + uuid.New().String() + ext
	return path.Join("uploads", "movies", name)
}
