package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	choicesResolvedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fate_choices_resolved_total",
			Help: "Resolved choices by insight category.",
		},
		[]string{"category"},
	)
	invalidChoicesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fate_invalid_choices_total",
			Help: "Choices submitted with an id unknown to the current scenario.",
		},
	)
)
