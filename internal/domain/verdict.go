package domain

import "fmt"

type Verdict string

const (
	VerdictApproved  Verdict = "approved"
	VerdictReviewing Verdict = "reviewing"
	VerdictRejected  Verdict = "rejected"
)

var verdictMessages = map[Verdict]string{
	VerdictApproved:  "Review complete: the reviewer liked everything. Hooray!",
	VerdictReviewing: "The submission has been taken for review.",
	VerdictRejected:  "Review complete: the reviewer left some remarks.",
}

// ParseVerdict reports whether raw is one of the known review statuses.
func ParseVerdict(raw string) (Verdict, bool) {
	v := Verdict(raw)
	if _, ok := verdictMessages[v]; !ok {
		return "", false
	}

	return v, true
}

func (v Verdict) Valid() bool {
	_, ok := verdictMessages[v]
	return ok
}

// Message returns the display text for v, or an empty string when v is unknown.
func (v Verdict) Message() string {
	return verdictMessages[v]
}

// StatusChangedMessage renders the notification text for a submission.
func StatusChangedMessage(name string, v Verdict) string {
	return fmt.Sprintf("status changed for submission '%s'. %s", name, v.Message())
}
