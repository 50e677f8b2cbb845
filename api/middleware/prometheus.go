package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"animix/store"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status", "service"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "service"},
	)

	storeOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "document_store_operations_total",
			Help: "Total number of document store operations",
		},
		[]string{"operation", "table", "status"},
	)

	storeOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "document_store_operation_duration_seconds",
			Help:    "Duration of document store operations in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"operation", "table"},
	)
)

func PrometheusMiddleware(serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		httpRequestsTotal.WithLabelValues(
			c.Request.Method,
			path,
			status,
			serviceName,
		).Inc()

		httpRequestDuration.WithLabelValues(
			c.Request.Method,
			path,
			serviceName,
		).Observe(duration)
	}
}

func recordStoreOperation(operation, table string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	storeOperationsTotal.WithLabelValues(operation, table, status).Inc()
	storeOperationDuration.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
}

type instrumentedStore struct {
	next store.DocumentStore
}

// InstrumentStore оборачивает хранилище документов счетчиками операций
func InstrumentStore(next store.DocumentStore) store.DocumentStore {
	return &instrumentedStore{next: next}
}

func (s *instrumentedStore) ScanAll(ctx context.Context, table string) ([]json.RawMessage, error) {
	start := time.Now()
	docs, err := s.next.ScanAll(ctx, table)
	recordStoreOperation("scan_all", table, start, err)
	return docs, err
}

func (s *instrumentedStore) GetOne(ctx context.Context, table, id string) (json.RawMessage, error) {
	start := time.Now()
	doc, err := s.next.GetOne(ctx, table, id)
	if errors.Is(err, store.ErrNotFound) {
		// not found это штатный ответ, не ошибка хранилища
		recordStoreOperation("get_one", table, start, nil)
	} else {
		recordStoreOperation("get_one", table, start, err)
	}
	return doc, err
}

func (s *instrumentedStore) PutOne(ctx context.Context, table, id string, doc interface{}) error {
	start := time.Now()
	err := s.next.PutOne(ctx, table, id, doc)
	recordStoreOperation("put_one", table, start, err)
	return err
}

func (s *instrumentedStore) NextID(ctx context.Context, table string) (int64, error) {
	start := time.Now()
	id, err := s.next.NextID(ctx, table)
	recordStoreOperation("next_id", table, start, err)
	return id, err
}
