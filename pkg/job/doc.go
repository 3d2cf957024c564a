// Package job runs background work for an mvc application.
//
// Two runners are provided. Manager is a durable queue backed by River on
// Postgres: tasks are enqueued as JSON payloads, retried on failure and can
// run on a cron schedule. Scheduler runs the same schedules in-process with
// robfig/cron and needs no database.
//
// The most common job is a URL: it is dispatched through the application as
// a GET request, the way a cron entry would curl an endpoint.
//
//	sched, err := job.NewScheduler(
//	    job.WithDispatcher(job.HandlerDispatcher(app)),
//	    job.WithSchedule("@hourly", "/reports/rebuild"),
//	    job.WithLogger(log),
//	)
//	if err != nil {
//	    return err
//	}
//	app := mvc.New(mvc.WithWorkers(sched))
//
// Typed tasks implement Name and Handle:
//
//	type Welcome struct{ mailer *mailer.Mailer }
//
//	func (w *Welcome) Name() string { return "welcome" }
//	func (w *Welcome) Handle(ctx context.Context, p WelcomePayload) error {
//	    return w.mailer.Send(ctx, mailer.Message{To: p.Email, Template: "welcome"})
//	}
//
//	m, err := job.NewManager(pool, job.WithTask[WelcomePayload](&Welcome{mailer: ml}))
//	err = m.Enqueue(ctx, "welcome", WelcomePayload{Email: email}, job.MaxAttempts(3))
//
// River's schema must be migrated before the Manager starts, for example with
// the river CLI.
package job
