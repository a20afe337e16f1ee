package models

import "time"

type GalleryImage struct {
	ImageID   string    `json:"imageid" bson:"imageid"`
	Caption   string    `json:"caption,omitempty" bson:"caption,omitempty"`
	FileName  string    `json:"file_name" bson:"file_name"`
	ThumbName string    `json:"thumb_name" bson:"thumb_name"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
