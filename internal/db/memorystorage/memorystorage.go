// Package memorystorage is the non-persistent storage backend used when
// neither a database DSN nor a storage file is configured.
package memorystorage

import (
	"context"

	"github.com/patric-chuzhbe/usersvc/internal/db/jsondb"
	"github.com/patric-chuzhbe/usersvc/internal/user"
)

// MemoryStorage keeps all user records in the jsondb cache without ever
// touching the file system.
type MemoryStorage struct {
	*jsondb.JSONDB
}

func New() (*MemoryStorage, error) {
	return &MemoryStorage{
		JSONDB: &jsondb.JSONDB{
			Cache: jsondb.CacheStruct{
				Users:      map[int64]*user.User{},
				NextUserID: 1,
			},
		},
	}, nil
}

func (theStorage *MemoryStorage) Close() error {
	return nil
}

func (theStorage *MemoryStorage) Ping(ctx context.Context) error {
	return nil
}
