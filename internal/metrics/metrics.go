package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Store metrics
var (
	ItemLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemLookups,
			Help: HelpTextItemLookups,
		},
		[]string{LabelKind, LabelOutcome},
	)

	StoreWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameStoreWrites,
			Help: HelpTextStoreWrites,
		},
		[]string{LabelKind},
	)
)

// Remote collaborator metrics
var (
	RemoteCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRemoteCalls,
			Help: HelpTextRemoteCalls,
		},
		[]string{LabelEndpoint, LabelStatus},
	)

	MarketCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameMarketCacheHits,
			Help: HelpTextMarketCacheHits,
		},
	)

	MarketCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameMarketCacheMisses,
			Help: HelpTextMarketCacheMisses,
		},
	)
)

// Resolution metrics
var (
	Resolutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameResolutions,
			Help: HelpTextResolutions,
		},
		[]string{LabelMode},
	)

	ResolutionDepth = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameResolutionDepth,
			Help:    HelpTextResolutionDepth,
			Buckets: ResolutionDepthBuckets,
		},
	)
)

// Bot metrics
var (
	CommandsHandled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCommandsHandled,
			Help: HelpTextCommandsHandled,
		},
		[]string{LabelCommand, LabelOutcome},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)
)
