package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ImageFile is a stored binary blob ("archivo"). Blobs are write-once:
// there is no update or delete path, and deleting a property leaves its
// blobs behind.
type ImageFile struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Content     []byte             `bson:"content" json:"-"`
	Name        string             `bson:"name" json:"name"`
	ContentType string             `bson:"content_type" json:"content_type"`
	UploadDate  time.Time          `bson:"upload_date" json:"upload_date"`
}
