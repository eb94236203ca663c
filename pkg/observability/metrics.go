// Package observability exposes command lifecycle metrics. It implements
// the command.Observer interface, so metrics are injected into the
// manager rather than collected through ambient global state.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/espalier-dev/espalier/pkg/command"
)

// Metrics counts command executions, undos, redos and graph mutations.
type Metrics struct {
	commands  *prometheus.CounterVec
	mutations prometheus.Counter
}

var _ command.Observer = (*Metrics)(nil)

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		commands: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "espalier",
			Name:      "commands_total",
			Help:      "Number of command dispatches by command name and operation.",
		}, []string{"command", "op"}),
		mutations: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "espalier",
			Name:      "graph_mutations_total",
			Help:      "Number of graph mutations applied through the command manager.",
		}),
	}
}

// CommandExecuted counts a successful execute.
func (m *Metrics) CommandExecuted(name string) {
	m.commands.WithLabelValues(name, "execute").Inc()
}

// CommandUndone counts a successful undo.
func (m *Metrics) CommandUndone(name string) {
	m.commands.WithLabelValues(name, "undo").Inc()
}

// CommandRedone counts a successful redo.
func (m *Metrics) CommandRedone(name string) {
	m.commands.WithLabelValues(name, "redo").Inc()
}

// GraphMutated counts any mutation of the graph.
func (m *Metrics) GraphMutated() {
	m.mutations.Inc()
}
