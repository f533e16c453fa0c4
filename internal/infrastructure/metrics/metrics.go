package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MarketMetrics gathers the counters for drafting and marketplace outcomes.
type MarketMetrics struct {
	DraftsCompletedTotal prometheus.Counter
	DraftsFailedTotal    *prometheus.CounterVec
	DraftDuration        prometheus.Histogram

	ListingsCreatedTotal   prometheus.Counter
	ListingsCancelledTotal prometheus.Counter

	TradesCompletedTotal prometheus.Counter
	TradeVolumeTotal     prometheus.Counter
	TradesFailedTotal    *prometheus.CounterVec
	TradeDuration        prometheus.Histogram
}

func NewMarketMetrics() *MarketMetrics {
	return &MarketMetrics{
		DraftsCompletedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "drafts_completed_total",
			Help: "Squads drafted successfully",
		}),
		DraftsFailedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "drafts_failed_total",
			Help: "Draft failures by reason",
		}, []string{"reason"}),
		DraftDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "draft_duration_seconds",
			Help:    "Time spent drafting one squad",
			Buckets: prometheus.DefBuckets,
		}),

		ListingsCreatedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "listings_created_total",
			Help: "Transfer listings created",
		}),
		ListingsCancelledTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "listings_cancelled_total",
			Help: "Transfer listings cancelled by the seller",
		}),

		TradesCompletedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "trades_completed_total",
			Help: "Trades committed",
		}),
		TradeVolumeTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "trade_volume_total",
			Help: "Total money moved by committed trades",
		}),
		TradesFailedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "trades_failed_total",
			Help: "Trade failures by reason",
		}, []string{"reason"}),
		TradeDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "trade_duration_seconds",
			Help:    "Time spent executing one trade",
			Buckets: prometheus.DefBuckets,
		}),
	}
}
