package db

import (
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

// boltBucketName holds every key; BucketID prefixes keep the same key
// layout as the other backends.
var boltBucketName = []byte("contactbook")

func init() {
	dbCreator := func(name string, dir string) (Database, error) {
		return NewBoltDB(name, dir)
	}
	registerDBCreator(BoltDBBackend, dbCreator, false)
}

func NewBoltDB(name string, dir string) (*BoltDB, error) {
	dbPath := filepath.Join(dir, name+".db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(boltBucketName)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &BoltDB{db: db}, nil
}

//----------------------------------------
// Database

var _ Database = (*BoltDB)(nil)

type BoltDB struct {
	db *bolt.DB
}

func (db *BoltDB) GetBucket(id BucketID) (Bucket, error) {
	return &boltBucket{id: id, db: db.db}, nil
}

func (db *BoltDB) GetIterator() (Iterator, error) {
	return &boltIterator{db: db.db}, nil
}

func (db *BoltDB) GetBatch() (Batch, error) {
	return &boltBatch{db: db.db}, nil
}

func (db *BoltDB) Close() error {
	return db.db.Close()
}

//----------------------------------------
// Bucket

var _ Bucket = (*boltBucket)(nil)

type boltBucket struct {
	id BucketID
	db *bolt.DB
}

func (bucket *boltBucket) Get(key []byte) ([]byte, error) {
	var value []byte
	err := bucket.db.View(func(tx *bolt.Tx) error {
		value = copyBytes(tx.Bucket(boltBucketName).Get(internalKey(bucket.id, key)))
		return nil
	})
	return value, err
}

func (bucket *boltBucket) Has(key []byte) bool {
	value, err := bucket.Get(key)
	return err == nil && value != nil
}

func (bucket *boltBucket) Set(key []byte, value []byte) error {
	return bucket.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(boltBucketName).Put(internalKey(bucket.id, key), nonNilBytes(value))
	})
}

func (bucket *boltBucket) Delete(key []byte) error {
	return bucket.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(boltBucketName).Delete(internalKey(bucket.id, key))
	})
}

//----------------------------------------
// Iterator

var _ Iterator = (*boltIterator)(nil)

type boltIterator struct {
	sliceIterator
	db *bolt.DB
}

func (i *boltIterator) New(start []byte, limit []byte) {
	pairs := make([]kvPair, 0)
	err := i.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(boltBucketName).Cursor()
		var k, v []byte
		if start == nil {
			k, v = c.First()
		} else {
			k, v = c.Seek(start)
		}
		for ; k != nil && inRange(k, limit); k, v = c.Next() {
			pairs = append(pairs, kvPair{key: copyBytes(k), value: copyBytes(v)})
		}
		return nil
	})
	i.reset(pairs, err)
}

//----------------------------------------
// Batch

var _ Batch = (*boltBatch)(nil)

type boltBatch struct {
	opBatch
	db *bolt.DB
}

func (b *boltBatch) Write() error {
	return b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(boltBucketName)
		for _, op := range b.ops {
			var err error
			if op.delete {
				err = bucket.Delete(op.key)
			} else {
				err = bucket.Put(op.key, op.value)
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
}
