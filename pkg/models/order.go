package models

// Order statuses. Only StatusPending is ever written by this service;
// the rest exist for documents managed out of band.
const (
	StatusPending   = "pending"
	StatusPaid      = "paid"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

// OrderItem is one line of an order. Title and price are denormalized copies
// of the gift at submission time; gift_slug is a soft reference.
type OrderItem struct {
	GiftSlug string  `json:"gift_slug" bson:"gift_slug" validate:"required"`
	Title    string  `json:"title" bson:"title" validate:"required"`
	Price    float64 `json:"price" bson:"price" validate:"gte=0"`
	Quantity int     `json:"quantity" bson:"quantity" validate:"gte=1,lte=10"`
}

type Customer struct {
	Name             string `json:"name" bson:"name" validate:"required"`
	Email            string `json:"email" bson:"email" validate:"required,email"`
	NoteForRecipient string `json:"note_for_recipient,omitempty" bson:"note_for_recipient,omitempty"`
	RecipientHandle  string `json:"recipient_handle,omitempty" bson:"recipient_handle,omitempty"`
}

// Order is a placed order in the "order" collection. Fulfillment is manual,
// so orders are write-once: no endpoint mutates them after submission.
type Order struct {
	Items    []OrderItem `json:"items" bson:"items" validate:"required,min=1,dive"`
	Customer Customer    `json:"customer" bson:"customer" validate:"required"`
	Total    float64     `json:"total" bson:"total" validate:"gte=0"`
	Status   string      `json:"status" bson:"status" validate:"required,oneof=pending paid delivered cancelled"`
}

// Normalize fills schema defaults before validation.
func (o *Order) Normalize() {
	if o.Status == "" {
		o.Status = StatusPending
	}
	for i := range o.Items {
		if o.Items[i].Quantity == 0 {
			o.Items[i].Quantity = 1
		}
	}
}
