// Package health provides liveness and readiness probes.
//
// The app mounts them through mvc.WithHealthChecks:
//
//	app := mvc.New(
//		mvc.WithHealthChecks(
//			mvc.WithReadinessCheck("db", dbs.Healthcheck("")),
//			mvc.WithReadinessCheck("redis", redis.Healthcheck(client)),
//		),
//	)
//
// Probes answer plain text ("OK", "Service Unavailable") unless the client
// asks for JSON with ?format=json or an Accept header:
//
//	{"checks":{"db":{"status":"healthy","duration":"1.2ms"}},"status":"healthy"}
//
// Checks run concurrently under one timeout (default 5s). [Checker.Check]
// runs the same checks outside HTTP, e.g. as a startup hook.
package health
