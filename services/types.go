package services

// ProductInput carries the fields for creating a product. Image and gallery
// entries are opaque storage references produced by the upload layer.
type ProductInput struct {
	Title       string
	Description string
	Price       float64
	Image       string
	Gallery     []string
	Features    []string
	Warranty    string
	Video       string
}

// ProductPatch is a partial update. A nil pointer means "leave the field
// untouched"; this keeps "absent" and "explicitly empty" distinguishable.
type ProductPatch struct {
	Title       *string
	Description *string
	Price       *float64
	Features    *[]string
	Warranty    *string
	Video       *string

	// NewImage replaces the primary image; ClearImage empties it and is
	// ignored when NewImage is set.
	NewImage   *string
	ClearImage bool

	// GalleryAdd holds newly uploaded references appended after GalleryRemove
	// entries are dropped from the current gallery.
	GalleryAdd    []string
	GalleryRemove []string
}

// ReviewInput carries a customer review submission.
type ReviewInput struct {
	Name    string
	Rating  float64
	Comment string
}
