package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// queriesTotal counts dataset queries served, labeled by query kind.
var queriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "dtx_queries_total",
	Help: "Number of dataset queries served, by kind.",
}, []string{"kind"})

// datasetReloads counts explicit dataset invalidations.
var datasetReloads = promauto.NewCounter(prometheus.CounterOpts{
	Name: "dtx_dataset_reloads_total",
	Help: "Number of explicit dataset reloads requested.",
})
