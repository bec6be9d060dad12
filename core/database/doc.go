// Package database handles database connections.
//
// It provides a wrapper around GORM to configure MySQL or SQLite connections from the
// application's configuration. The database is optional: it only backs the rating
// failure ledger, which records beatmaps whose files could not be loaded during a
// rating backfill.
//
// # Usage
//
//	if cfg.Database.Enabled() {
//	    db, err := database.Connect(cfg.Database)
//	    if err != nil {
//	        return err
//	    }
//	}
package database
