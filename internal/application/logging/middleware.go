package logging

import (
	"context"
	"fmt"
	"time"

	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/application/mediator"
)

// RequestLoggingMiddleware logs every dispatched request with its duration and outcome
func RequestLoggingMiddleware() mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		logger := LoggerFromContext(ctx)
		started := time.Now()

		resp, err := next(ctx, request)

		metadata := map[string]interface{}{
			"request":     fmt.Sprintf("%T", request),
			"duration_ms": time.Since(started).Milliseconds(),
		}
		if err != nil {
			metadata["error"] = err.Error()
			logger.Log("ERROR", "request failed", metadata)
			return resp, err
		}
		logger.Log("DEBUG", "request handled", metadata)
		return resp, nil
	}
}
