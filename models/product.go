package models

import "time"

// Product is the catalog aggregate. Reviews are embedded as an ordered array
// and have no lifecycle outside their parent product.
type Product struct {
	ID          string    `json:"id" bson:"_id"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	Price       float64   `json:"price" bson:"price"`
	Image       string    `json:"image,omitempty" bson:"image,omitempty"`
	Gallery     []string  `json:"gallery" bson:"gallery"`
	Features    []string  `json:"features" bson:"features"`
	Warranty    string    `json:"warranty,omitempty" bson:"warranty,omitempty"`
	Video       string    `json:"video,omitempty" bson:"video,omitempty"`
	Reviews     []Review  `json:"reviews" bson:"reviews"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// Review is a customer review embedded in a product document. IDs are unique
// within the parent product's review array, not globally.
type Review struct {
	ID      string    `json:"id" bson:"_id"`
	Name    string    `json:"name" bson:"name"`
	Rating  float64   `json:"rating" bson:"rating"`
	Comment string    `json:"comment" bson:"comment"`
	Date    time.Time `json:"date" bson:"date"`
	Hidden  bool      `json:"hidden" bson:"hidden"`
}

// VisibleReviews returns the reviews not hidden by an administrator, in
// insertion order.
func (p *Product) VisibleReviews() []Review {
	visible := make([]Review, 0, len(p.Reviews))
	for _, r := range p.Reviews {
		if !r.Hidden {
			visible = append(visible, r)
		}
	}
	return visible
}
