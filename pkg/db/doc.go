// Package db provides named database connections and map-based query helpers
// for controllers and models.
//
// Two drivers are supported: PostgreSQL through [github.com/jackc/pgx/v5]
// (pgxpool bridged to database/sql) and SQLite through [modernc.org/sqlite].
// Queries use "?" placeholders on both; they are rebound to "$n" for postgres.
//
// # Registry
//
// Connections are registered by name and opened lazily:
//
//	reg := db.NewRegistry(logger)
//	reg.Register("", db.Config{Driver: db.DriverSQLite, DSN: "app.db"})
//
//	conn, err := reg.Get(ctx, "") // "" is the default connection
//	if err != nil {
//		return err
//	}
//	defer reg.Shutdown(ctx)
//
// # Queries
//
// Result rows are grouped by table. Alias columns as "table.field" to keep
// joined tables apart; unqualified columns land under the empty table name:
//
//	rows, err := conn.FindAll(ctx,
//		`SELECT p.id AS "p.id", u.name AS "u.name", COUNT(*) AS total
//		 FROM posts p JOIN users u ON u.id = p.user_id WHERE p.status = ?`, "live")
//	// rows[0]["p"]["id"], rows[0]["u"]["name"], rows[0][""]["total"]
//
// [Conn.Exec] returns the new row id for INSERT and the affected row count
// otherwise. [Conn.FindFirst], [Conn.FindValues], [Conn.FindValue] and
// [Conn.FindAllIndexed] cover the common shapes; [Conn.Each] streams rows.
//
// # Transactions
//
//	err := conn.WithTx(ctx, func(tx *db.Tx) error {
//		_, err := tx.Exec(ctx, "UPDATE accounts SET balance = balance - ? WHERE id = ?", 10, 1)
//		return err
//	})
//
// # Migrations
//
//	//go:embed migrations/*.sql
//	var migrations embed.FS
//
//	err := db.Migrate(ctx, conn, migrations, "migrations", "schema_migrations", logger)
//
// Set Config.SQLLog to log every statement at debug level.
package db
