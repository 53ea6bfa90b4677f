package contactdb

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Contact is a stored contact form submission.
type Contact struct {
	bun.BaseModel `bun:"table:contacts,alias:ct"`

	ID        uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	FirstName string    `bun:"first_name,notnull" json:"firstName"`
	LastName  string    `bun:"last_name,notnull" json:"lastName"`
	Email     string    `bun:"email,notnull" json:"email"`
	Phone     string    `bun:"phone,notnull" json:"phone,omitempty"`
	Message   string    `bun:"message,notnull" json:"message"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
}
