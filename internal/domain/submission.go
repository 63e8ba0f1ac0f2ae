package domain

const (
	FieldHomeworks   = "homeworks"
	FieldCurrentDate = "current_date"
	FieldName        = "homework_name"
	FieldStatus      = "status"
)

// Checkpoint is the unix-seconds cursor passed to the review API as from_date.
type Checkpoint int64

// Submission is a validated review record.
type Submission struct {
	Name    string
	Verdict Verdict
}

func (s Submission) Message() string {
	return StatusChangedMessage(s.Name, s.Verdict)
}
