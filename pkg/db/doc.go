// Package db opens the PostgreSQL pool that backs the subscriber table and
// applies goose migrations from an embedded filesystem.
//
//	pool, err := db.Connect(ctx, cfg.DB)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := db.Migrate(ctx, pool, migrations.FS, cfg.DB.MigrationsTable, log); err != nil {
//		return err
//	}
//
// [Healthcheck] and [Shutdown] plug into the app's readiness checks and
// shutdown hooks.
package db
