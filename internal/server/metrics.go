package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Command metrics, exposed on /metrics for Prometheus scraping.
var (
	commandsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "calplan_commands_total",
		Help: "Number of processed commands by interpreted intent.",
	}, []string{"intent"})

	commandFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "calplan_command_failures_total",
		Help: "Number of commands that ended in an error result.",
	})
)
