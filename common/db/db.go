package db

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
)

type BackendType string

const (
	GoLevelDBBackend BackendType = "goleveldb"
	MemDBBackend     BackendType = "memdb"
	BoltDBBackend    BackendType = "boltdb"
	BadgerDBBackend  BackendType = "badgerdb"
)

// Database is a key-value store whose keys are grouped in buckets.
type Database interface {
	GetBucket(id BucketID) (Bucket, error)
	GetIterator() (Iterator, error)
	GetBatch() (Batch, error)
	Close() error
}

type dbCreator func(name string, dir string) (Database, error)

var backends = map[BackendType]dbCreator{}

func registerDBCreator(backend BackendType, creator dbCreator, force bool) {
	_, ok := backends[backend]
	if !force && ok {
		return
	}
	backends[backend] = creator
}

func Backends() []string {
	keys := make([]string, 0, len(backends))
	for k := range backends {
		keys = append(keys, string(k))
	}
	return keys
}

func openDatabase(backend BackendType, name string, dir string) (Database, error) {
	creator, ok := backends[backend]
	if !ok {
		return nil, fmt.Errorf("unknown db_backend %s, expected one of %s",
			backend, strings.Join(Backends(), ","))
	}
	return creator(name, dir)
}

// Open creates dir if needed and opens the database name in it with the
// given backend.
func Open(dir string, dbType string, name string) (Database, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrapf(err, "create DB directory %s", dir)
	}
	database, err := openDatabase(BackendType(dbType), name, dir)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s DB %s", dbType, name)
	}
	return database, nil
}
