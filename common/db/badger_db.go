package db

import (
	"path/filepath"

	"github.com/dgraph-io/badger"
)

func init() {
	dbCreator := func(name string, dir string) (Database, error) {
		return NewBadgerDB(name, dir)
	}
	registerDBCreator(BadgerDBBackend, dbCreator, false)
}

func NewBadgerDB(name string, dir string) (*BadgerDB, error) {
	dbPath := filepath.Join(dir, name)
	opts := badger.DefaultOptions
	opts.Dir = dbPath
	opts.ValueDir = dbPath
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &BadgerDB{db: db}, nil
}

//----------------------------------------
// Database

var _ Database = (*BadgerDB)(nil)

type BadgerDB struct {
	db *badger.DB
}

func (db *BadgerDB) GetBucket(id BucketID) (Bucket, error) {
	return &badgerBucket{id: id, db: db.db}, nil
}

func (db *BadgerDB) GetIterator() (Iterator, error) {
	return &badgerIterator{db: db.db}, nil
}

func (db *BadgerDB) GetBatch() (Batch, error) {
	return &badgerBatch{db: db.db}, nil
}

func (db *BadgerDB) Close() error {
	return db.db.Close()
}

//----------------------------------------
// Bucket

var _ Bucket = (*badgerBucket)(nil)

type badgerBucket struct {
	id BucketID
	db *badger.DB
}

func (bucket *badgerBucket) Get(key []byte) ([]byte, error) {
	var value []byte
	err := bucket.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(internalKey(bucket.id, key))
		if err == badger.ErrKeyNotFound {
			return nil
		} else if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		if err == nil {
			value = nonNilBytes(value)
		}
		return err
	})
	return value, err
}

func (bucket *badgerBucket) Has(key []byte) bool {
	value, err := bucket.Get(key)
	return err == nil && value != nil
}

func (bucket *badgerBucket) Set(key []byte, value []byte) error {
	return bucket.db.Update(func(txn *badger.Txn) error {
		return txn.Set(internalKey(bucket.id, key), nonNilBytes(value))
	})
}

func (bucket *badgerBucket) Delete(key []byte) error {
	return bucket.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(internalKey(bucket.id, key))
	})
}

//----------------------------------------
// Iterator

var _ Iterator = (*badgerIterator)(nil)

type badgerIterator struct {
	sliceIterator
	db *badger.DB
}

func (i *badgerIterator) New(start []byte, limit []byte) {
	pairs := make([]kvPair, 0)
	err := i.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		if start == nil {
			it.Rewind()
		} else {
			it.Seek(start)
		}
		for ; it.Valid(); it.Next() {
			item := it.Item()
			key := copyBytes(item.Key())
			if !inRange(key, limit) {
				break
			}
			value, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			pairs = append(pairs, kvPair{key: key, value: nonNilBytes(value)})
		}
		return nil
	})
	i.reset(pairs, err)
}

//----------------------------------------
// Batch

var _ Batch = (*badgerBatch)(nil)

type badgerBatch struct {
	opBatch
	db *badger.DB
}

func (b *badgerBatch) Write() error {
	return b.db.Update(func(txn *badger.Txn) error {
		for _, op := range b.ops {
			var err error
			if op.delete {
				err = txn.Delete(op.key)
			} else {
				err = txn.Set(op.key, op.value)
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
}
