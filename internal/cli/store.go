package cli

import (
	"context"
	"fmt"

	"notodo/internal/config"
	"notodo/internal/store"
	"notodo/internal/store/mongostore"
	"notodo/internal/store/sqlstore"
)

// openStore connects to the configured backend.
func openStore(ctx context.Context, db config.DatabaseConfig) (store.Store, error) {
	switch db.Driver {
	case "mongodb":
		s, err := mongostore.New(ctx, db.DSN, db.Name)
		if err != nil {
			return nil, err
		}
		return s, nil
	case string(sqlstore.SQLite), string(sqlstore.Postgres):
		s, err := sqlstore.New(db.Driver, db.DSN)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, fmt.Errorf("unsupported database driver %q", db.Driver)
}
