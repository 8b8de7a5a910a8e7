package models

// Gift is a catalog entry in the "gift" collection: mini-games, reminder
// bots, digital albums and similar one-off presents. Entries are created by
// the seed routine and are read-only through the API.
type Gift struct {
	Title       string   `json:"title" bson:"title" validate:"required,max=120"`
	Slug        string   `json:"slug" bson:"slug" validate:"required,max=140"`
	Tagline     string   `json:"tagline,omitempty" bson:"tagline,omitempty" validate:"omitempty,max=200"`
	Description string   `json:"description" bson:"description" validate:"required,max=2000"`
	Price       float64  `json:"price" bson:"price" validate:"gte=0"`
	Badge       string   `json:"badge,omitempty" bson:"badge,omitempty"`
	Category    string   `json:"category" bson:"category" validate:"required"`
	Cover       string   `json:"cover,omitempty" bson:"cover,omitempty"`
	Gallery     []string `json:"gallery" bson:"gallery"`
	Features    []string `json:"features" bson:"features"`
	Rating      *float64 `json:"rating,omitempty" bson:"rating,omitempty" validate:"omitempty,gte=0,lte=5"`
}

const defaultGiftRating = 4.8

// Normalize fills schema defaults on a freshly constructed gift.
func (g *Gift) Normalize() {
	if g.Gallery == nil {
		g.Gallery = []string{}
	}
	if g.Features == nil {
		g.Features = []string{}
	}
	if g.Rating == nil {
		r := defaultGiftRating
		g.Rating = &r
	}
}
