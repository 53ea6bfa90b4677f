package trackingdb

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Visitor is one recorded page session.
type Visitor struct {
	bun.BaseModel `bun:"table:visitors,alias:v"`

	ID        uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	SessionID string    `bun:"session_id,notnull" json:"sessionId"`
	Timestamp time.Time `bun:"timestamp,notnull,default:current_timestamp" json:"timestamp"`
}

// LinkClick is one outbound affiliate link click.
type LinkClick struct {
	bun.BaseModel `bun:"table:link_clicks,alias:lc"`

	ID        uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	URL       string    `bun:"url,notnull" json:"url"`
	Timestamp time.Time `bun:"timestamp,notnull,default:current_timestamp" json:"timestamp"`
}
