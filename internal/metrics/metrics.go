// Package metrics exposes Prometheus counters for the processing pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// VideosIndexed counts videos that reached the ready state
	VideosIndexed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clipper_videos_indexed_total",
		Help: "Number of videos successfully indexed.",
	})

	// VideosFailed counts videos whose indexing terminated in failure
	VideosFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clipper_videos_failed_total",
		Help: "Number of videos whose indexing failed.",
	})

	// JobsCompleted counts jobs that reached the completed state
	JobsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clipper_jobs_completed_total",
		Help: "Number of clip jobs completed.",
	})

	// JobsFailed counts jobs that terminated in failure
	JobsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clipper_jobs_failed_total",
		Help: "Number of clip jobs failed.",
	})

	// ClipsProduced counts successfully produced clip artifacts
	ClipsProduced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clipper_clips_produced_total",
		Help: "Number of clips produced and uploaded.",
	})

	// ClipsFailed counts segments that failed clip extraction
	ClipsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clipper_clips_failed_total",
		Help: "Number of segments skipped due to extraction failure.",
	})
)
