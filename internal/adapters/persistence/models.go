package persistence

import "time"

// ImageURLModel represents the image_urls table
type ImageURLModel struct {
	FileName  string    `gorm:"column:file_name;primaryKey"`
	URL       string    `gorm:"column:url;not null"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
}

func (ImageURLModel) TableName() string {
	return "image_urls"
}
