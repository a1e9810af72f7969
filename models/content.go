package models

import "time"

// News is an editorial article shown on the public news page.
type News struct {
	NewsID      int        `gorm:"primaryKey;column:news_id" json:"news_id"`
	Title       string     `gorm:"column:title;type:varchar(500);not null" json:"title"`
	Slug        string     `gorm:"column:slug;type:varchar(500);unique;not null" json:"slug"`
	Body        string     `gorm:"column:body;type:text" json:"body"`
	CoverKey    *string    `gorm:"column:cover_key;type:varchar(500)" json:"cover_key,omitempty"`
	PublishedAt *time.Time `gorm:"column:published_at" json:"published_at,omitempty"`
	AuthorID    int        `gorm:"column:author_id" json:"author_id"`
	CreateAt    time.Time  `gorm:"column:create_at;autoCreateTime" json:"create_at"`
	UpdateAt    time.Time  `gorm:"column:update_at;autoUpdateTime" json:"update_at"`
	DeleteAt    *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	Author *User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

// Event is an agenda entry (workshop, expo, matchmaking session).
type Event struct {
	EventID   int        `gorm:"primaryKey;column:event_id" json:"event_id"`
	Title     string     `gorm:"column:title;type:varchar(500);not null" json:"title"`
	Summary   string     `gorm:"column:summary;type:text" json:"summary"`
	Location  *string    `gorm:"column:location;type:varchar(500)" json:"location,omitempty"`
	StartsAt  time.Time  `gorm:"column:starts_at" json:"starts_at"`
	EndsAt    *time.Time `gorm:"column:ends_at" json:"ends_at,omitempty"`
	PosterKey *string    `gorm:"column:poster_key;type:varchar(500)" json:"poster_key,omitempty"`
	LinkURL   *string    `gorm:"column:link_url" json:"link_url,omitempty"`
	CreateAt  time.Time  `gorm:"column:create_at;autoCreateTime" json:"create_at"`
	UpdateAt  time.Time  `gorm:"column:update_at;autoUpdateTime" json:"update_at"`
	DeleteAt  *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

// CarouselItem is a homepage banner. DisplayOrder drives the slide order.
type CarouselItem struct {
	CarouselID   int        `gorm:"primaryKey;column:carousel_id" json:"carousel_id"`
	Title        *string    `gorm:"column:title;type:varchar(500)" json:"title,omitempty"`
	ImageKey     string     `gorm:"column:image_key;type:varchar(500);not null" json:"image_key"`
	LinkURL      *string    `gorm:"column:link_url" json:"link_url,omitempty"`
	DisplayOrder int        `gorm:"column:display_order;default:0" json:"display_order"`
	IsActive     bool       `gorm:"column:is_active;default:true" json:"is_active"`
	CreateAt     time.Time  `gorm:"column:create_at;autoCreateTime" json:"create_at"`
	UpdateAt     time.Time  `gorm:"column:update_at;autoUpdateTime" json:"update_at"`
	DeleteAt     *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

// TableName overrides
func (News) TableName() string {
	return "news"
}

func (Event) TableName() string {
	return "events"
}

func (CarouselItem) TableName() string {
	return "carousel_items"
}
