// Package domain defines the persistence models for bug records and the
// idempotency ledger. These types are mapped with GORM and form the core data
// layer of the bug tracker.
package domain

import "time"

// Status is the lifecycle state of a bug. Any status may follow any other.
type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in-progress"
	StatusResolved   Status = "resolved"
)

// Statuses lists every valid Status in display order.
var Statuses = []Status{StatusOpen, StatusInProgress, StatusResolved}

// Priority ranks how urgently a bug should be handled.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Priorities lists every valid Priority in ascending urgency.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}

const (
	// DefaultStatus is applied when a new bug does not specify one.
	DefaultStatus = StatusOpen
	// DefaultPriority is applied when a new bug does not specify one.
	DefaultPriority = PriorityMedium
	// DefaultReporter is stored when reportedBy is omitted.
	DefaultReporter = "Anonymous"

	// TitleMaxLen and DescriptionMaxLen bound the trimmed text in runes.
	TitleMaxLen       = 100
	DescriptionMaxLen = 500
)

// Bug is a tracked defect record.
//
// Fields:
//   - ID: UUID primary key (char(36)), assigned on create and never reused.
//   - Title / Description: trimmed, sanitized free text (1–100 / 1–500 runes).
//   - Status / Priority: enum members, enforced by CHECK constraints as well.
//   - ReportedBy: free-text reporter name, "Anonymous" when omitted.
//   - CreatedAt: set once on create; UpdatedAt: refreshed on each mutation.
//
// Deletes are hard deletes; there is no DeletedAt column.
type Bug struct {
	ID          string    `json:"id"          gorm:"type:char(36);primaryKey"`
	Title       string    `json:"title"       gorm:"type:varchar(100);not null"`
	Description string    `json:"description" gorm:"type:varchar(500);not null"`
	Status      Status    `json:"status"      gorm:"type:varchar(16);not null;default:'open';check:status IN ('open','in-progress','resolved')"`
	Priority    Priority  `json:"priority"    gorm:"type:varchar(16);not null;default:'medium';check:priority IN ('low','medium','high','critical')"`
	ReportedBy  string    `json:"reportedBy"  gorm:"type:varchar(255);not null;default:'Anonymous'"`
	CreatedAt   time.Time `json:"createdAt"   gorm:"index:idx_bugs_created"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TableName returns the database table name for Bug.
func (Bug) TableName() string { return "bugs" }

// Valid reports whether s is one of Statuses.
func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// Valid reports whether p is one of Priorities.
func (p Priority) Valid() bool {
	for _, v := range Priorities {
		if p == v {
			return true
		}
	}
	return false
}
