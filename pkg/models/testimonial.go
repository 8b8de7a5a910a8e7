package models

// Testimonial is a customer quote in the "testimonial" collection,
// seeded once and read-only.
type Testimonial struct {
	Author  string   `json:"author" bson:"author" validate:"required"`
	Role    string   `json:"role,omitempty" bson:"role,omitempty"`
	Content string   `json:"content" bson:"content" validate:"required"`
	Avatar  string   `json:"avatar,omitempty" bson:"avatar,omitempty"`
	Rating  *float64 `json:"rating,omitempty" bson:"rating,omitempty" validate:"omitempty,gte=0,lte=5"`
}

const defaultTestimonialRating = 5.0

func (t *Testimonial) Normalize() {
	if t.Rating == nil {
		r := defaultTestimonialRating
		t.Rating = &r
	}
}
