package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/icon-project/contactbook/common"
	"github.com/icon-project/contactbook/common/db"
	"github.com/icon-project/contactbook/core"
	"github.com/syndtr/goleveldb/leveldb/util"
)

type ContactDB struct {
	dbPath string
	dbType string
}

func (cdb ContactDB) open() db.Database {
	if cdb.dbPath == "" {
		fmt.Println("Enter dbPath")
		os.Exit(1)
	}
	dir, name := filepath.Split(filepath.Clean(cdb.dbPath))
	qdb, err := db.Open(dir, cdb.dbType, name)
	if err != nil {
		fmt.Printf("Failed to open %s. err=%+v\n", cdb.dbPath, err)
		os.Exit(1)
	}
	return qdb
}

func (cdb ContactDB) query(dbType string, address string) {
	var addr *common.Address
	if address != "" {
		if addr = common.NewAddressFromString(address); addr == nil {
			fmt.Printf("Invalid address %q\n", address)
			os.Exit(1)
		}
	}

	qdb := cdb.open()
	defer qdb.Close()

	iteratePrintDB(dbType, qdb, addr)
}

func iteratePrintDB(dbType string, qDB db.Database, addr *common.Address) {
	// iterate
	iter, err := qDB.GetIterator()
	if err != nil {
		log.Printf("Failed to get iterator")
		return
	}

	start, limit := prefixRange(dbType)
	iter.New(start, limit)
	i := 0
	printCount := 0
	for iter.Next() {
		ret := printEntry(iter.Key(), iter.Value(), addr)
		if ret {
			printCount++
		}
		i++
	}
	iter.Release()

	fmt.Printf("Print %d entries in %d entries\n", printCount, i)

	err = iter.Error()
	if err != nil {
		log.Printf("Error while iterate. %+v", err)
		return
	}
}

func prefixRange(dbType string) ([]byte, []byte) {
	var prefix db.BucketID
	switch dbType {
	case DBTypeManagement:
		prefix = db.PrefixManagement
	case DBTypeContact:
		prefix = db.PrefixContactBook
	case DBTypeSponsored:
		prefix = db.PrefixSponsored
	case DBTypeNonce:
		prefix = db.PrefixNonce
	case DBTypeBalance:
		prefix = db.PrefixBalance
	case DBTypeStatistics:
		prefix = db.PrefixStatistics
	default:
		return nil, nil
	}
	r := util.BytesPrefix([]byte(prefix))
	return r.Start, r.Limit
}

func ownerOf(key []byte) *common.Address {
	return common.NewAddress(key[db.PrefixLen:])
}

func printEntry(key []byte, value []byte, address *common.Address) bool {
	if len(key) < db.PrefixLen {
		fmt.Println("Invalid key")
		return false
	}

	var result string
	switch db.BucketID(key[:db.PrefixLen]) {
	case db.PrefixManagement:
		dbi := new(core.DBInfo)
		dbi.SetBytes(value)
		result = fmt.Sprint("DB info : ", dbi.String())
	case db.PrefixContactBook:
		owner := ownerOf(key)
		if owner == nil || (address != nil && !address.Equal(*owner)) {
			return false
		}
		book, err := core.NewBookFromBytes(value)
		if err != nil {
			fmt.Printf("Failed to decode contact book of %s. err=%+v\n", owner, err)
			return false
		}
		book.Owner = *owner
		result = fmt.Sprint("Contact book : ", book.String())
	case db.PrefixSponsored:
		owner := ownerOf(key)
		if owner == nil || (address != nil && !address.Equal(*owner)) {
			return false
		}
		set, err := core.NewSponsoredSetFromBytes(value)
		if err != nil {
			fmt.Printf("Failed to decode sponsored aliases of %s. err=%+v\n", owner, err)
			return false
		}
		set.Owner = *owner
		result = fmt.Sprint("Sponsored : ", set.String())
	case db.PrefixNonce:
		owner := ownerOf(key)
		if owner == nil || (address != nil && !address.Equal(*owner)) {
			return false
		}
		result = fmt.Sprintf("Nonce : %s %d", owner, common.BytesToUint64(value))
	case db.PrefixBalance:
		if len(key) != db.PrefixLen+common.AddressBytes*2 {
			fmt.Println("Invalid balance key")
			return false
		}
		medium := common.NewAddress(key[db.PrefixLen : db.PrefixLen+common.AddressBytes])
		owner := common.NewAddress(key[db.PrefixLen+common.AddressBytes:])
		if medium == nil || owner == nil || (address != nil && !address.Equal(*owner)) {
			return false
		}
		var balance common.HexInt
		balance.SetBytes(value)
		result = fmt.Sprintf("Balance : %s %s %s", medium, owner, balance.String())
	case db.PrefixStatistics:
		stats := new(core.Statistics)
		if err := stats.SetBytes(value); err != nil {
			fmt.Printf("Failed to decode statistics. err=%+v\n", err)
			return false
		}
		result = stats.String()
	default:
		fmt.Println("Invalid prefix")
		return false
	}
	fmt.Println(result)
	return true
}
