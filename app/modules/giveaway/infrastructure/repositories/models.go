package giveawaydb

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// Entry is one giveaway registration.
type Entry struct {
	bun.BaseModel `bun:"table:giveaway_entries,alias:ge"`

	ID            uuid.UUID       `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	Email         string          `bun:"email,notnull,unique" json:"email"`
	BCUsername    string          `bun:"bc_username,notnull" json:"bcUsername"`
	BCUserID      string          `bun:"bc_user_id,notnull,unique" json:"bcUserId"`
	DepositAmount decimal.Decimal `bun:"deposit_amount,type:numeric(12,2),notnull" json:"depositAmount"`
	Prize         *string         `bun:"prize" json:"prize"`
	EnteredAt     time.Time       `bun:"entered_at,nullzero,notnull,default:current_timestamp" json:"enteredAt"`
}

// Content is a block shown on the giveaway page.
type Content struct {
	bun.BaseModel `bun:"table:giveaway_content,alias:gc"`

	ID          uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	Type        string    `bun:"type,notnull" json:"type"`
	Title       string    `bun:"title,notnull" json:"title"`
	Description string    `bun:"description,notnull" json:"description"`
	ImageURL    string    `bun:"image_url,notnull,default:''" json:"imageUrl"`
	CreatedAt   time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt   time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updatedAt"`
}
