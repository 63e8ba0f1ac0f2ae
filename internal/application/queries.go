package application

import (
	"time"

	"github.com/bnema/reviewbot/internal/domain"
)

// CheckReport is the result of a one-shot status check.
type CheckReport struct {
	CheckedAt time.Time         `json:"checked_at"`
	From      domain.Checkpoint `json:"from_date"`
	Next      domain.Checkpoint `json:"current_date"`
	Records   int               `json:"records"`
	Homework  string            `json:"homework_name,omitempty"`
	Status    domain.Verdict    `json:"status,omitempty"`
	Message   string            `json:"message,omitempty"`
	Notified  bool              `json:"notified"`
}

// HasUpdate reports whether the checked window held at least one record.
func (r CheckReport) HasUpdate() bool {
	return r.Records > 0
}
