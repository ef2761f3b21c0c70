package sync

import "errors"

// ErrPushRejected indicates the server answered a push without
// reporting success; the queue is kept for retry.
var ErrPushRejected = errors.New("server rejected push")
