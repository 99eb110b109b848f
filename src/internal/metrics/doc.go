// Package metrics exposes Prometheus counters for source registry activity.
package metrics
