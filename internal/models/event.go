package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Event verbs read or written by the loader. User-facing verbs such as
// mark_causative are written by the interactive application; the loader
// reads them to build the cross-case causative index.
const (
	VerbMarkCausative        = "mark_causative"
	VerbMarkPartialCausative = "mark_partial_causative"
	VerbLoadVariants         = "load_variants"
	VerbDeleteVariants       = "delete_variants"
)

// Event is one entry of the audit log.
type Event struct {
	bun.BaseModel `bun:"table:events,alias:e"`

	ID        int64     `bun:"id,pk,autoincrement" json:"-"`
	Verb      string    `bun:"verb,notnull" json:"verb"`
	Institute string    `bun:"institute,notnull" json:"institute"`
	CaseID    string    `bun:"case_id,notnull" json:"case_id"`
	VariantID string    `bun:"variant_id" json:"variant_id,omitempty"`
	Category  string    `bun:"category" json:"category,omitempty"`
	Subject   string    `bun:"subject" json:"subject,omitempty"`
	UserID    string    `bun:"user_id" json:"user_id,omitempty"`
	Content   string    `bun:"content" json:"content,omitempty"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
}
