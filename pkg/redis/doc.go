// Package redis opens go-redis clients with retry and exposes readiness and
// shutdown hooks for the application runtime.
//
//	client, err := redis.OpenConfig(ctx, cfg.Redis)
//	if err != nil {
//	    return err
//	}
//	app := mvc.New(mvc.WithHealthChecks(mvc.WithReadinessCheck("redis", redis.Healthcheck(client))))
//	err = app.Run(":8080", mvc.ShutdownHook(redis.Shutdown(client)))
package redis
