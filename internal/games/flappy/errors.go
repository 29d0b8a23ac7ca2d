package flappy

import "errors"

// Usage errors returned by Env.Step.
var (
	ErrNotReset      = errors.New("flappy: step called before reset")
	ErrEpisodeOver   = errors.New("flappy: step called after episode ended")
	ErrInvalidAction = errors.New("flappy: invalid action")
)
