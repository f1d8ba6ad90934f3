package script

import (
	"strings"

	"github.com/dop251/goja"
	"go.uber.org/zap"
)

// registerConsole installs console.log/info/debug/warn/error. Each call
// becomes one log entry at the matching level.
func registerConsole(vm *goja.Runtime, logger *zap.Logger) {
	logger = logger.Named("console")
	console := vm.NewObject()
	bind := func(name string, write func(string, ...zap.Field)) {
		console.Set(name, func(call goja.FunctionCall) goja.Value {
			write(formatArgs(call.Arguments))
			return goja.Undefined()
		})
	}
	bind("log", logger.Info)
	bind("info", logger.Info)
	bind("debug", logger.Debug)
	bind("warn", logger.Warn)
	bind("error", logger.Error)
	vm.Set("console", console)
}

func formatArgs(args []goja.Value) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = arg.String()
	}
	return strings.Join(parts, " ")
}
