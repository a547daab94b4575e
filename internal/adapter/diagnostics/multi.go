package diagnostics

import "github.com/semmidev/mediasafe/internal/domain"

// Multi fans a report out to several sinks.
type Multi struct {
	reporters []domain.Diagnostics
}

func NewMulti(reporters ...domain.Diagnostics) *Multi {
	return &Multi{reporters: reporters}
}

func (m *Multi) Report(message string, context map[string]string) {
	for _, r := range m.reporters {
		r.Report(message, context)
	}
}
