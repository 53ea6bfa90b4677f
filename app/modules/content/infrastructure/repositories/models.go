package contentdb

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// News is a ticker item.
type News struct {
	bun.BaseModel `bun:"table:news,alias:n"`

	ID        uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	Text      string    `bun:"text,notnull" json:"text"`
	Link      *string   `bun:"link" json:"link"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
}

// Review is a slot or casino review.
type Review struct {
	bun.BaseModel `bun:"table:reviews,alias:rv"`

	ID            uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	Type          string    `bun:"type,notnull" json:"type"`
	Title         string    `bun:"title,notnull" json:"title"`
	Description   string    `bun:"description,notnull" json:"description"`
	Image         string    `bun:"image,notnull" json:"image"`
	ImagePublicID string    `bun:"image_public_id,notnull" json:"imagePublicId,omitempty"`
	Rating        float64   `bun:"rating,notnull" json:"rating"`
	CreatedAt     time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt     time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updatedAt"`
}

// ScheduleEvent is an upcoming stream.
type ScheduleEvent struct {
	bun.BaseModel `bun:"table:schedule_events,alias:se"`

	ID          uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	Title       string    `bun:"title,notnull" json:"title"`
	Date        time.Time `bun:"date,notnull" json:"date"`
	Description string    `bun:"description,notnull" json:"description"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
}

// Clip is a short or a video. Kind separates the two listings.
type Clip struct {
	bun.BaseModel `bun:"table:clips,alias:c"`

	ID            uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	Kind          string    `bun:"kind,notnull" json:"-"`
	Title         string    `bun:"title,notnull" json:"title"`
	Description   string    `bun:"description,notnull" json:"description"`
	Image         string    `bun:"image,notnull" json:"image"`
	ImagePublicID string    `bun:"image_public_id,notnull" json:"imagePublicId"`
	VideoURL      string    `bun:"video_url,notnull" json:"videoUrl"`
	CreatedAt     time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
}
