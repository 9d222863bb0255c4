// Package health serves liveness, readiness and version endpoints.
//
// Liveness answers 200 as long as the process can serve HTTP. Readiness
// runs every registered check concurrently, each bounded by
// telemetry.health.check_timeout, and answers 503 when any fails:
//
//	checker := health.New(&cfg.Telemetry.Health)
//	checker.Register("journal", store.Ping)
//	r.Get(cfg.Telemetry.Health.ReadinessPath, checker.ReadinessHandler())
//
// Commands are stateless and call upstreams only on demand, so no upstream
// is probed here; an unreachable upstream surfaces as a toast on the
// command itself.
package health
