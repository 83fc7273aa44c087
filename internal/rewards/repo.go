package rewards

import "context"

// StateRepository persists the reward tracker. Get returns a copy;
// callers mutate it and Set the whole thing back.
type StateRepository interface {
	Get(ctx context.Context) (TrackerState, error)
	Set(ctx context.Context, s TrackerState) error
}
