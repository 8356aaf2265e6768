package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// CommandMetricsCollector records mediator command/query execution
type CommandMetricsCollector struct {
	commandsTotal   *prometheus.CounterVec
	commandDuration *prometheus.HistogramVec
}

// NewCommandMetricsCollector creates a new command metrics collector
func NewCommandMetricsCollector() *CommandMetricsCollector {
	return &CommandMetricsCollector{
		commandsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "mediator",
				Name:      "commands_total",
				Help:      "Dispatched commands and queries by name and result",
			},
			[]string{"command", "result"},
		),
		commandDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "mediator",
				Name:      "command_duration_seconds",
				Help:      "Command and query execution duration distribution",
				Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1.0, 5.0, 30.0, 120.0},
			},
			[]string{"command"},
		),
	}
}

// Register registers the command metrics with the Prometheus registry
func (c *CommandMetricsCollector) Register() error {
	return registerAll(c.commandsTotal, c.commandDuration)
}

// RecordCommandExecution records one handled request
func (c *CommandMetricsCollector) RecordCommandExecution(command string, duration float64, success bool) {
	c.commandsTotal.WithLabelValues(command, resultLabel(success)).Inc()
	c.commandDuration.WithLabelValues(command).Observe(duration)
}
