/*
Package observability turns executor lifecycle events into logs and
Prometheus metrics.

Both are plain domain.LifecycleHooks values, so they compose with Merge:

	metrics, _ := observability.NewMetrics(prometheus.DefaultRegisterer)
	console := devconsole.New(
		devconsole.WithLifecycleHooks(observability.LoggingHooks(logger)),
		devconsole.WithLifecycleHooks(metrics.Hooks()),
	)
*/
package observability
