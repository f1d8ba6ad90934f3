// Command boxwright renders HTML to PNG, extracts selections made with
// simulated pointer gestures and dumps box trees.
package main

import (
	"os"

	"go.uber.org/zap"

	"boxwright/internal/observability"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		observability.GetLogger().Error("command failed", zap.Error(err))
		observability.Sync()
		os.Exit(1)
	}
	observability.Sync()
}
