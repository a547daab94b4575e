package diagnostics

import "github.com/semmidev/mediasafe/internal/infrastructure/logger"

// LogReporter writes diagnostic reports to the application log.
type LogReporter struct {
	logger *logger.Logger
}

func NewLogReporter(log *logger.Logger) *LogReporter {
	return &LogReporter{logger: log}
}

func (r *LogReporter) Report(message string, context map[string]string) {
	args := make([]interface{}, 0, len(context)*2)
	for k, v := range context {
		args = append(args, k, v)
	}
	r.logger.Errorw(message, args...)
}
