package patterns

import "time"

// DefaultTimeout is the per-request timeout for outbound webhook calls
const DefaultTimeout = 3 * time.Second

// AcquireTimeout is how long a caller waits for a bulkhead slot before
// giving up
const AcquireTimeout = 1 * time.Second
