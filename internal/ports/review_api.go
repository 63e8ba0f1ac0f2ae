package ports

import (
	"context"

	"github.com/bnema/reviewbot/internal/domain"
)

// ReviewAPI fetches review statuses changed since a checkpoint. The payload is
// the decoded JSON body and has not been validated.
type ReviewAPI interface {
	FetchStatuses(ctx context.Context, from domain.Checkpoint) (any, error)
}
