package itemservice

import (
	"encoding/json"
	"strings"

	"github.com/dmitrymomot/itemdesk/integration/rpc"
)

// Status is the lifecycle state of an item, encoded by its enum name.
type Status string

const (
	StatusUnspecified Status = "ITEM_STATUS_UNSPECIFIED"
	StatusDraft       Status = "ITEM_STATUS_DRAFT"
	StatusActive      Status = "ITEM_STATUS_ACTIVE"
	StatusArchived    Status = "ITEM_STATUS_ARCHIVED"
)

var statusByNumber = []Status{StatusUnspecified, StatusDraft, StatusActive, StatusArchived}

// Statuses lists the statuses a user can choose, in lifecycle order.
var Statuses = []Status{StatusDraft, StatusActive, StatusArchived}

// ParseStatus maps a slug such as "active" back to its status.
func ParseStatus(slug string) (Status, bool) {
	for _, s := range Statuses {
		if s.Slug() == slug {
			return s, true
		}
	}
	return StatusUnspecified, false
}

// UnmarshalJSON accepts enum names and enum numbers.
func (s *Status) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		if n < 0 || n >= len(statusByNumber) {
			*s = StatusUnspecified
			return nil
		}
		*s = statusByNumber[n]
		return nil
	}
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	*s = Status(name)
	return nil
}

// Label is the short human name of the status.
func (s Status) Label() string {
	switch s {
	case StatusDraft:
		return "Draft"
	case StatusActive:
		return "Active"
	case StatusArchived:
		return "Archived"
	default:
		return "Unspecified"
	}
}

// Slug is the lower-case label used in forms and query strings.
func (s Status) Slug() string {
	return strings.ToLower(s.Label())
}

// Item is a record owned by a user on the item service.
type Item struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Status      Status        `json:"status"`
	UserID      string        `json:"userId"`
	CreatedAt   rpc.Timestamp `json:"createdAt"`
	UpdatedAt   rpc.Timestamp `json:"updatedAt"`
}
