package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Property is the root listing document ("inmueble"). Sub-collections are
// embedded in the document itself rather than kept in separate collections.
type Property struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	OwnerID        primitive.ObjectID   `bson:"owner_id,omitempty" json:"owner_id"`
	Location       string               `bson:"location" json:"location"`
	Price          float64              `bson:"price" json:"price"`
	Features       []string             `bson:"features" json:"features"`
	ImageIDs       []primitive.ObjectID `bson:"image_ids" json:"image_ids"`
	Available      bool                 `bson:"available" json:"available"`
	Contracts      []Contract           `bson:"contracts" json:"contracts"`
	RentalRequests []RentalRequest      `bson:"rental_requests" json:"rental_requests"`
	Reviews        []Review             `bson:"reviews" json:"reviews"`
}

type Contract struct {
	TenantID   primitive.ObjectID `bson:"tenant_id,omitempty" json:"tenant_id"`
	StartDate  time.Time          `bson:"start_date" json:"start_date"`
	EndDate    time.Time          `bson:"end_date" json:"end_date"`
	RentAmount float64            `bson:"rent_amount" json:"rent_amount"`
	Status     string             `bson:"status" json:"status"`
	Payments   []Payment          `bson:"payments" json:"payments"`
}

type Payment struct {
	Amount float64   `bson:"amount" json:"amount"`
	Date   time.Time `bson:"date" json:"date"`
	Status string    `bson:"status" json:"status"`
}

// RequestDate is always set server-side on creation, never taken from the
// client. Status is free-form text ("pendiente", "aprobado", ...).
type RentalRequest struct {
	TenantID    primitive.ObjectID `bson:"tenant_id,omitempty" json:"tenant_id"`
	RequestDate time.Time          `bson:"request_date" json:"request_date"`
	Status      string             `bson:"status" json:"status"`
}

// Date is always set server-side on creation. Rating is not constrained to
// any range.
type Review struct {
	TenantID primitive.ObjectID `bson:"tenant_id,omitempty" json:"tenant_id"`
	Rating   float64            `bson:"rating" json:"rating"`
	Comment  string             `bson:"comment" json:"comment"`
	Date     time.Time          `bson:"date" json:"date"`
}
