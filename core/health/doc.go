// Package health provides liveness and readiness handlers.
//
//	r.Get("/health/live", health.Liveness[*web.Context])
//	r.Get("/health/ready", health.Readiness[*web.Context](log,
//		health.Check{Name: "session_store", Fn: store.Healthcheck},
//		health.Check{Name: "redis", Fn: redis.Healthcheck(client)},
//	))
package health
