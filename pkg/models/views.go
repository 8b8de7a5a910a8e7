package models

import "go.mongodb.org/mongo-driver/bson"

// GiftView is the catalog projection of a stored gift document. Gallery and
// features stay internal; optional fields render as null when the document
// does not carry them.
type GiftView struct {
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Tagline     *string  `json:"tagline"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Badge       *string  `json:"badge"`
	Category    string   `json:"category"`
	Cover       *string  `json:"cover"`
	Rating      *float64 `json:"rating"`
}

type TestimonialView struct {
	Author  string   `json:"author"`
	Role    *string  `json:"role"`
	Content string   `json:"content"`
	Rating  *float64 `json:"rating"`
}

// ProjectGift maps a raw stored document onto the response view. Stored
// shape is never trusted downstream: fields are looked up individually and
// numbers are coerced, so documents written by other tools still project.
func ProjectGift(doc bson.M) GiftView {
	return GiftView{
		Title:       docString(doc, "title"),
		Slug:        docString(doc, "slug"),
		Tagline:     docStringPtr(doc, "tagline"),
		Description: docString(doc, "description"),
		Price:       docFloat(doc, "price"),
		Badge:       docStringPtr(doc, "badge"),
		Category:    docString(doc, "category"),
		Cover:       docStringPtr(doc, "cover"),
		Rating:      docFloatPtr(doc, "rating"),
	}
}

func ProjectTestimonial(doc bson.M) TestimonialView {
	return TestimonialView{
		Author:  docString(doc, "author"),
		Role:    docStringPtr(doc, "role"),
		Content: docString(doc, "content"),
		Rating:  docFloatPtr(doc, "rating"),
	}
}

func docString(doc bson.M, key string) string {
	s, _ := doc[key].(string)
	return s
}

func docStringPtr(doc bson.M, key string) *string {
	s, ok := doc[key].(string)
	if !ok || s == "" {
		return nil
	}
	return &s
}

// docFloat coerces the BSON numeric types a schema-less store may hold.
func docFloat(doc bson.M, key string) float64 {
	f, _ := asFloat(doc[key])
	return f
}

func docFloatPtr(doc bson.M, key string) *float64 {
	f, ok := asFloat(doc[key])
	if !ok {
		return nil
	}
	return &f
}

func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
