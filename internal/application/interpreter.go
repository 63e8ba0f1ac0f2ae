package application

import (
	"fmt"

	"github.com/bnema/reviewbot/internal/domain"
)

// ParseStatus turns one homework record into a submission. The status is
// checked before the name, so a record missing both reports the status.
func ParseStatus(record any) (domain.Submission, error) {
	fields, ok := record.(map[string]any)
	if !ok {
		return domain.Submission{}, domain.MalformedResponse(domain.ErrRecordNotObject)
	}

	rawStatus, hasStatus := fields[domain.FieldStatus]
	status, isString := rawStatus.(string)
	if !hasStatus || !isString {
		return domain.Submission{}, domain.UnknownStatus(rawStatus)
	}

	verdict, ok := domain.ParseVerdict(status)
	if !ok {
		return domain.Submission{}, domain.UnknownStatus(status)
	}

	// Only an absent key is an error; a null name renders empty.
	rawName, ok := fields[domain.FieldName]
	if !ok {
		return domain.Submission{}, domain.MissingName()
	}

	var name string
	switch v := rawName.(type) {
	case nil:
	case string:
		name = v
	default:
		name = fmt.Sprint(v)
	}

	return domain.Submission{Name: name, Verdict: verdict}, nil
}
