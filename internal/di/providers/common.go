package providers

import "time"

// shutdownTimeout bounds graceful shutdown of the HTTP server and the SSE
// manager drain.
const shutdownTimeout = 30 * time.Second
