package models

import "time"

type Innovation struct {
	InnovationID         int        `gorm:"primaryKey;column:innovation_id" json:"innovation_id"`
	UserID               int        `gorm:"column:user_id;not null;index" json:"user_id"`
	Title                string     `gorm:"column:title;type:varchar(500);not null" json:"title"`
	Overview             string     `gorm:"column:overview;type:text" json:"overview"`
	Features             string     `gorm:"column:features;type:text" json:"features"`
	PotentialApplication string     `gorm:"column:potential_application;type:text" json:"potential_application"`
	UniqueValue          string     `gorm:"column:unique_value;type:text" json:"unique_value"`
	Origin               *string    `gorm:"column:origin;type:varchar(255)" json:"origin,omitempty"`
	TiktokURL            *string    `gorm:"column:tiktok_url" json:"tiktok_url,omitempty"`
	InstagramURL         *string    `gorm:"column:instagram_url" json:"instagram_url,omitempty"`
	YoutubeURL           *string    `gorm:"column:youtube_url" json:"youtube_url,omitempty"`
	FacebookURL          *string    `gorm:"column:facebook_url" json:"facebook_url,omitempty"`
	WebURL               *string    `gorm:"column:web_url" json:"web_url,omitempty"`
	CreateAt             time.Time  `gorm:"column:create_at;autoCreateTime" json:"create_at"`
	UpdateAt             time.Time  `gorm:"column:update_at;autoUpdateTime" json:"update_at"`
	DeleteAt             *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Owner      *User             `gorm:"foreignKey:UserID" json:"owner,omitempty"`
	Images     []InnovationImage `gorm:"foreignKey:InnovationID" json:"images,omitempty"`
	Categories []Category        `gorm:"many2many:innovation_categories;foreignKey:InnovationID;joinForeignKey:InnovationID;References:CategoryID;joinReferences:CategoryID" json:"categories,omitempty"`
}

// InnovationImage holds one stored object key per row. Display order is not
// guaranteed beyond insertion order.
type InnovationImage struct {
	ImageID      int       `gorm:"primaryKey;column:image_id" json:"image_id"`
	InnovationID int       `gorm:"column:innovation_id;not null;index" json:"innovation_id"`
	StorageKey   string    `gorm:"column:storage_key;type:varchar(500);not null" json:"storage_key"`
	CreateAt     time.Time `gorm:"column:create_at;autoCreateTime" json:"create_at"`
}

type Category struct {
	CategoryID   int        `gorm:"primaryKey;column:category_id" json:"category_id"`
	CategoryName string     `gorm:"column:category_name;type:varchar(255);not null" json:"category_name"`
	CreateAt     *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt     *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt     *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

// InnovationCategory is the join row between innovations and categories.
type InnovationCategory struct {
	InnovationID int `gorm:"primaryKey;column:innovation_id" json:"innovation_id"`
	CategoryID   int `gorm:"primaryKey;column:category_id" json:"category_id"`
}

// TableName overrides
func (Innovation) TableName() string {
	return "innovations"
}

func (InnovationImage) TableName() string {
	return "innovation_images"
}

func (Category) TableName() string {
	return "categories"
}

func (InnovationCategory) TableName() string {
	return "innovation_categories"
}
