package llm

import (
	"context"
	"time"

	"github.com/firebase/genkit/go/ai"
	"github.com/sirupsen/logrus"
)

// getMiddlewares returns the middleware chain applied to every model call.
func getMiddlewares() []ai.ModelMiddleware {
	return []ai.ModelMiddleware{timingMiddleware()}
}

// timingMiddleware logs latency per model call.
func timingMiddleware() ai.ModelMiddleware {
	return func(next ai.ModelFunc) ai.ModelFunc {
		return func(ctx context.Context, req *ai.ModelRequest, cb ai.ModelStreamCallback) (*ai.ModelResponse, error) {
			start := time.Now()
			resp, err := next(ctx, req, cb)
			elapsed := time.Since(start)
			if err != nil {
				logrus.WithField("elapsed", elapsed).Warnf("model call failed: %v", err)
				return resp, err
			}
			logrus.WithField("elapsed", elapsed).Debug("model call complete")
			return resp, nil
		}
	}
}

// TruncateString caps a string for prompt embedding, marking the cut.
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
