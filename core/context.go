package core

import (
	"log"
	"sync"

	"github.com/benbjohnson/clock"
	"github.com/icon-project/contactbook/common"
	"github.com/icon-project/contactbook/common/db"
	"github.com/pkg/errors"
)

const ContactDBName = "contacts"

type ContactDB struct {
	infoLock sync.RWMutex
	info     *DBInfo

	// serializes read-modify-write of the statistics record
	statsLock sync.Mutex

	db db.Database
}

func OpenContactDB(dbPath string, dbType string, dbName string) (*ContactDB, error) {
	database, err := db.Open(dbPath, dbType, dbName)
	if err != nil {
		return nil, err
	}

	info, err := NewDBInfo(database, dbPath, dbType, dbName)
	if err != nil {
		database.Close()
		return nil, err
	}

	return &ContactDB{info: info, db: database}, nil
}

func CloseContactDB(cdb *ContactDB) {
	if err := cdb.db.Close(); err != nil {
		log.Printf("Failed to close contact DB. err=%+v", err)
	}
}

func (cdb *ContactDB) Database() db.Database {
	return cdb.db
}

func (cdb *ContactDB) getInfo() DBInfoData {
	cdb.infoLock.RLock()
	defer cdb.infoLock.RUnlock()
	return cdb.info.DBInfoData
}

// setMedium stores the transfer medium. It works only once.
func (cdb *ContactDB) setMedium(medium common.Address) error {
	cdb.infoLock.Lock()
	defer cdb.infoLock.Unlock()

	if cdb.info.Initialized {
		return errors.Wrapf(ErrAlreadyInitialized, "medium=%s", cdb.info.Medium)
	}

	info := *cdb.info
	info.Initialized = true
	info.Medium = medium
	bs, err := info.Bytes()
	if err != nil {
		return err
	}
	bucket, _ := cdb.db.GetBucket(db.PrefixManagement)
	if err = bucket.Set(info.ID(), bs); err != nil {
		return errors.Wrap(err, "write DB information")
	}
	cdb.info.DBInfoData = info.DBInfoData
	return nil
}

func (cdb *ContactDB) readBook(owner common.Address) (*Book, error) {
	bucket, _ := cdb.db.GetBucket(db.PrefixContactBook)
	bs, err := bucket.Get(owner.Bytes())
	if err != nil {
		return nil, errors.Wrapf(err, "read contact book of %s", owner)
	}
	if bs == nil {
		return newBook(owner), nil
	}
	book, err := NewBookFromBytes(bs)
	if err != nil {
		return nil, errors.Wrapf(err, "decode contact book of %s", owner)
	}
	book.Owner = owner
	return book, nil
}

func (cdb *ContactDB) readSponsored(owner common.Address) (*SponsoredSet, error) {
	bucket, _ := cdb.db.GetBucket(db.PrefixSponsored)
	bs, err := bucket.Get(owner.Bytes())
	if err != nil {
		return nil, errors.Wrapf(err, "read sponsored aliases of %s", owner)
	}
	if bs == nil {
		return newSponsoredSet(owner), nil
	}
	set, err := NewSponsoredSetFromBytes(bs)
	if err != nil {
		return nil, errors.Wrapf(err, "decode sponsored aliases of %s", owner)
	}
	set.Owner = owner
	return set, nil
}

// commit writes the given records and the statistics change in one batch.
// Empty contact books are deleted.
func (cdb *ContactDB) commit(book *Book, set *SponsoredSet, update func(stats *Statistics) error) error {
	batch, err := cdb.db.GetBatch()
	if err != nil {
		return err
	}
	batch.New()

	if book != nil {
		if len(book.Contacts) == 0 {
			batch.Delete(db.PrefixContactBook, book.ID())
		} else {
			bs, err := book.Bytes()
			if err != nil {
				return errors.Wrapf(err, "encode contact book of %s", book.Owner)
			}
			batch.Set(db.PrefixContactBook, book.ID(), bs)
		}
	}
	if set != nil {
		bs, err := set.Bytes()
		if err != nil {
			return errors.Wrapf(err, "encode sponsored aliases of %s", set.Owner)
		}
		batch.Set(db.PrefixSponsored, set.ID(), bs)
	}

	if update != nil {
		cdb.statsLock.Lock()
		defer cdb.statsLock.Unlock()

		stats, err := cdb.readStatistics()
		if err != nil {
			return err
		}
		if err = update(stats); err != nil {
			return errors.Wrap(err, "update statistics")
		}
		batch.Set(db.PrefixStatistics, stats.ID(), stats.Bytes())
	}

	if err = batch.Write(); err != nil {
		return errors.Wrap(err, "write batch")
	}
	return nil
}

func (cdb *ContactDB) readStatistics() (*Statistics, error) {
	stats := new(Statistics)
	bucket, _ := cdb.db.GetBucket(db.PrefixStatistics)
	bs, err := bucket.Get(stats.ID())
	if err != nil {
		return nil, errors.Wrap(err, "read statistics")
	}
	if bs != nil {
		if err = stats.SetBytes(bs); err != nil {
			return nil, errors.Wrap(err, "decode statistics")
		}
	}
	return stats, nil
}

func (cdb *ContactDB) Statistics() (*Statistics, error) {
	cdb.statsLock.Lock()
	defer cdb.statsLock.Unlock()
	return cdb.readStatistics()
}

type Context struct {
	DB       *ContactDB
	Clock    clock.Clock
	Transfer Transferer
}

// NewContext opens the contact DB. When transfer is nil the bundled
// ledger on the same DB moves the funds.
func NewContext(dbPath string, dbType string, dbName string, clk clock.Clock, transfer Transferer) (*Context, error) {
	cdb, err := OpenContactDB(dbPath, dbType, dbName)
	if err != nil {
		return nil, err
	}
	if clk == nil {
		clk = clock.New()
	}
	if transfer == nil {
		transfer = NewLedger(cdb.db)
	}
	return &Context{DB: cdb, Clock: clk, Transfer: transfer}, nil
}

func (ctx *Context) now() uint64 {
	return uint64(ctx.Clock.Now().Unix())
}

func (ctx *Context) Print() {
	log.Printf("============================================================================")
	log.Printf("Print Contact Book Context")
	log.Printf("DB info : %s", ctx.DB.info.String())
	if stats, err := ctx.DB.Statistics(); err == nil {
		log.Printf("%s", stats.String())
	}
	log.Printf("============================================================================")
}
