package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// =============================================================================
// HTTP Метрики (общие для всех сервисов)
// =============================================================================

// HttpRequestsTotal - счётчик всех HTTP запросов
// Labels: service, method, path, status
// Пример запроса PromQL: rate(http_requests_total{service="orders"}[5m])
var HttpRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	},
	[]string{"service", "method", "path", "status"},
)

// HttpRequestDuration - гистограмма времени ответа (latency_seconds из ТЗ)
// Labels: service, method, path
// Пример: histogram_quantile(0.95, rate(http_request_duration_seconds_bucket[5m]))
var HttpRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name: "http_request_duration_seconds",
		Help: "Duration of HTTP requests in seconds",
		// Бакеты для микросервисов: от 1ms до 10s
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	},
	[]string{"service", "method", "path"},
)

// HttpRequestsInFlight - текущее количество обрабатываемых запросов
var HttpRequestsInFlight = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "http_requests_in_flight",
		Help: "Current number of HTTP requests being processed",
	},
	[]string{"service"},
)

// =============================================================================
// Database Метрики
// =============================================================================

// DbQueryDuration - время выполнения запросов к MongoDB
var DbQueryDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "db_query_duration_seconds",
		Help:    "Duration of database queries in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	},
	[]string{"service", "operation", "table"},
)

// DbErrors - счётчик ошибок базы данных
var DbErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "db_errors_total",
		Help: "Total number of database errors",
	},
	[]string{"service", "operation"},
)

// =============================================================================
// Redis Метрики (redis_ops из ТЗ)
// =============================================================================

// RedisCacheHits - попадания в кеш
var RedisCacheHits = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_cache_hits_total",
		Help: "Total number of Redis cache hits",
	},
	[]string{"service", "key_prefix"},
)

// RedisCacheMisses - промахи кеша
var RedisCacheMisses = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_cache_misses_total",
		Help: "Total number of Redis cache misses",
	},
	[]string{"service", "key_prefix"},
)

// RedisOperationDuration - время операций Redis
var RedisOperationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "redis_operation_duration_seconds",
		Help:    "Duration of Redis operations in seconds",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
	},
	[]string{"service", "operation"}, // operation: get, set, del, etc.
)

// RedisErrors - ошибки Redis
var RedisErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_errors_total",
		Help: "Total number of Redis errors",
	},
	[]string{"service", "operation"},
)

// =============================================================================
// Kafka Метрики (kafka_lag из ТЗ)
// =============================================================================

// KafkaMessagesProduced - отправленные сообщения
var KafkaMessagesProduced = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_messages_produced_total",
		Help: "Total number of Kafka messages produced",
	},
	[]string{"service", "topic"},
)

// KafkaProduceDuration - время отправки сообщения
var KafkaProduceDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "kafka_produce_duration_seconds",
		Help:    "Duration of Kafka produce operations",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	},
	[]string{"service", "topic"},
)

// KafkaErrors - ошибки Kafka
var KafkaErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_errors_total",
		Help: "Total number of Kafka errors",
	},
	[]string{"service", "topic", "operation"}, // operation: produce, consume
)

// =============================================================================
// gRPC Метрики
// =============================================================================

// GrpcServerHandled - количество обработанных unary вызовов по коду ответа
var GrpcServerHandled = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "grpc_server_handled_total",
		Help: "Total number of unary RPCs completed on the server",
	},
	[]string{"service", "method", "code"},
)

// GrpcServerDuration - время обработки unary вызова
var GrpcServerDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "grpc_server_handling_seconds",
		Help:    "Duration of unary RPCs handled by the server",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	},
	[]string{"service", "method"},
)

// =============================================================================
// SOAP Метрики
// =============================================================================

// SoapOperationsTotal - вызовы SOAP операций
// Labels: operation, outcome (ok, client_fault, server_fault)
var SoapOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "soap_operations_total",
		Help: "Total number of SOAP operations handled",
	},
	[]string{"operation", "outcome"},
)

// =============================================================================
// Protocol Client Метрики (вызовы gRPC/SOAP со стороны REST)
// =============================================================================

// ProtocolClientCalls - исходящие вызовы адаптеров
// Labels: protocol (grpc, soap), operation, outcome (ok, transport, timeout, fault)
var ProtocolClientCalls = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "protocol_client_calls_total",
		Help: "Total number of outgoing protocol adapter calls",
	},
	[]string{"protocol", "operation", "outcome"},
)

// ProtocolClientDuration - длительность исходящего вызова вместе с повторами
var ProtocolClientDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "protocol_client_call_duration_seconds",
		Help:    "Duration of outgoing protocol adapter calls including retries",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	},
	[]string{"protocol", "operation"},
)

// ProtocolClientRetries - повторные попытки после транспортных ошибок
var ProtocolClientRetries = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "protocol_client_retries_total",
		Help: "Total number of retried protocol adapter calls",
	},
	[]string{"protocol", "operation"},
)

// =============================================================================
// Business Метрики (рейтинги и комментарии)
// =============================================================================

// RatingAggregations - выполненные расчеты средних оценок
var RatingAggregations = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "rating_aggregations_total",
		Help: "Total number of average rating computations",
	},
	[]string{"category"}, // cafe, library
)

// RatingsPerAggregation - сколько оценок попало в один расчет
var RatingsPerAggregation = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "rating_aggregation_input_size",
		Help:    "Number of ratings read for a single aggregation",
		Buckets: []float64{0, 1, 5, 10, 50, 100, 500, 1000, 5000},
	},
)

// RatingValidationMismatches - оценки, не совпавшие с категорией, найденные при расчете
var RatingValidationMismatches = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "rating_validation_mismatches_total",
		Help: "Total number of ratings whose dimensions contradict the workspace category",
	},
	[]string{"category"},
)

// RatingCategoryMismatches - результат последнего аудита по расписанию
var RatingCategoryMismatches = promauto.NewGauge(
	prometheus.GaugeOpts{
		Name: "rating_category_mismatches",
		Help: "Number of mismatching ratings found by the last audit run",
	},
)

// CommentsAdded - добавленные комментарии
var CommentsAdded = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "comments_added_total",
		Help: "Total number of comments added",
	},
)
