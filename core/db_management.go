package core

import (
	"encoding/json"
	"log"
	"path/filepath"

	"github.com/icon-project/contactbook/common"
	"github.com/icon-project/contactbook/common/codec"
	"github.com/icon-project/contactbook/common/db"
	"github.com/pkg/errors"
)

type DBInfoData struct {
	Initialized bool
	// asset moved by a sponsorship
	Medium common.Address
}

type DBInfo struct {
	DBRoot string
	DBType string
	DBInfoData
}

func (dbi *DBInfo) ID() []byte {
	return []byte("")
}

func (dbi *DBInfo) Bytes() ([]byte, error) {
	var bytes []byte
	if bs, err := codec.MarshalToBytes(&dbi.DBInfoData); err != nil {
		return nil, err
	} else {
		bytes = bs
	}
	return bytes, nil
}

func (dbi *DBInfo) String() string {
	b, err := json.Marshal(dbi)
	if err != nil {
		return "Can't covert Message to json"
	}
	return string(b)
}

func (dbi *DBInfo) SetBytes(bs []byte) error {
	_, err := codec.UnmarshalFromBytes(bs, &dbi.DBInfoData)
	return err
}

func NewDBInfo(mngDB db.Database, dbPath string, dbType string, dbName string) (*DBInfo, error) {
	bucket, err := mngDB.GetBucket(db.PrefixManagement)
	if err != nil {
		return nil, errors.Wrap(err, "get DB information bucket")
	}
	dbInfo := new(DBInfo)
	data, err := bucket.Get(dbInfo.ID())
	if err != nil {
		return nil, errors.Wrap(err, "read DB information")
	}
	if data != nil {
		if err = dbInfo.SetBytes(data); err != nil {
			log.Printf("Failed to set DB Information structure. err=%+v", err)
			return nil, err
		}
	}

	dbInfo.DBRoot = filepath.Join(dbPath, dbName)
	dbInfo.DBType = dbType

	return dbInfo, nil
}
