// Copyright 2025 l3montree UG (haftungsbeschraenkt).
// SPDX-License-Identifier: 	AGPL-3.0-or-later

package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var CopyObjectsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "dejacode_copy_objects_total",
	Help: "Total number of objects processed by the cross-dataspace copy, by outcome",
}, []string{"model", "status"})

var CopyBatchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "dejacode_copy_batch_duration_seconds",
	Help:    "Duration of a copy batch in seconds",
	Buckets: prometheus.DefBuckets,
})

var URNResolveTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "dejacode_urn_resolve_total",
	Help: "Total number of urn resolutions, by object kind and result",
}, []string{"kind", "result"})
