package application

import "github.com/bnema/reviewbot/internal/domain"

// CheckResponse validates the shape of a decoded review API payload and
// returns its homework records. The first violated expectation is reported.
func CheckResponse(payload any) ([]any, error) {
	response, ok := payload.(map[string]any)
	if !ok {
		return nil, domain.MalformedResponse(domain.ErrResponseNotObject)
	}

	raw, ok := response[domain.FieldHomeworks]
	if !ok {
		return nil, domain.MalformedResponse(domain.ErrMissingHomeworks)
	}

	records, ok := raw.([]any)
	if !ok {
		return nil, domain.MalformedResponse(domain.ErrHomeworksNotList)
	}

	return records, nil
}

// NextCheckpoint returns the server-supplied current_date, or current when the
// payload omits it or carries a non-integer value.
func NextCheckpoint(payload any, current domain.Checkpoint) domain.Checkpoint {
	response, ok := payload.(map[string]any)
	if !ok {
		return current
	}

	switch value := response[domain.FieldCurrentDate].(type) {
	case float64:
		if value != float64(int64(value)) {
			return current
		}
		return domain.Checkpoint(value)
	case int64:
		return domain.Checkpoint(value)
	case int:
		return domain.Checkpoint(value)
	default:
		return current
	}
}
