package audit

import "time"

// StoredEvent is one row of the append-only audit log.
type StoredEvent struct {
	ID            string           `json:"id" db:"id"`
	Type          EventType        `json:"type" db:"event_type"`
	Heading       string           `json:"heading" db:"heading"`
	HappenedAt    time.Time        `json:"happened_at" db:"happened_at"`
	Author        AuthorTuple      `json:"author"`
	Refs          map[string]int64 `json:"refs,omitempty"`
	Body          *string          `json:"body,omitempty" db:"body"`
	Metadata      map[string]any   `json:"metadata,omitempty"`
	Modifications []string         `json:"modifications,omitempty"`
	CreatedAt     time.Time        `json:"created_at" db:"created_at"`
}

// TimelineFilters narrows the audit listing.
type TimelineFilters struct {
	From       time.Time
	To         time.Time
	Type       string
	AuthorType string
	RefName    string
	RefID      int64
	Page       int
	PageSize   int
}

// PagingInfo carries pagination metadata for the listing response.
type PagingInfo struct {
	Page     int  `json:"page"`
	PageSize int  `json:"page_size"`
	HasNext  bool `json:"has_next"`
	PrevPage int  `json:"prev_page,omitempty"`
	NextPage int  `json:"next_page,omitempty"`
}

// Result bundles timeline rows with paging information.
type Result struct {
	Rows   []StoredEvent `json:"rows"`
	Paging PagingInfo    `json:"paging"`
}
