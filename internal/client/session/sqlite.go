package session

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/storeconsole/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/storeconsole/internal/dbx"
)

// MetadataKey is the metadata row that holds the session record.
const MetadataKey = "session"

// SQLitePersistence keeps the record in the metadata table of the local
// client database (see localdb.Open).
type SQLitePersistence struct {
	db *sql.DB
}

func NewSQLitePersistence(db *sql.DB) *SQLitePersistence {
	return &SQLitePersistence{db: db}
}

func (p *SQLitePersistence) Load(ctx context.Context) ([]byte, error) {
	return metadata.NewSQLiteRepository(p.db).Get(ctx, MetadataKey)
}

func (p *SQLitePersistence) Store(ctx context.Context, data []byte) error {
	return dbx.WithTx(ctx, p.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return metadata.NewSQLiteRepository(tx).Set(ctx, MetadataKey, data)
	})
}

func (p *SQLitePersistence) Remove(ctx context.Context) error {
	return metadata.NewSQLiteRepository(p.db).Delete(ctx, MetadataKey)
}
