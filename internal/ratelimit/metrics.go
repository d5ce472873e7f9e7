package ratelimit

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var rejectionsTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "book_pages_ratelimit_rejections_total",
	Help: "Requests rejected because the session exhausted its window",
})
