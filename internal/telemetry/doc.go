// Package telemetry обеспечивает наблюдаемость движка.
//
// Включает:
//   - logging.go — structured logging через slog
//   - metrics.go — Prometheus метрики проходов и executor'а
//
// Логи пишутся в stderr, чтобы stdout оставался каналом данных CLI;
// метрики экспортируются на /metrics endpoint при включённом
// --metrics-addr.
package telemetry
