package core

import (
	"fmt"
	"log"
	"reflect"

	"github.com/icon-project/contactbook/common"
	"github.com/icon-project/contactbook/common/codec"
	"github.com/oleiade/reflections"
)

const (
	StatContacts        = "Contacts"
	StatSponsored       = "Sponsored"
	StatSponsoredAmount = "SponsoredAmount"
)

type Statistics struct {
	Contacts        uint64
	Sponsored       uint64
	SponsoredAmount common.HexInt
}

func (stats *Statistics) ID() []byte {
	return []byte("")
}

func (stats *Statistics) String() string {
	return fmt.Sprintf("==== Statistics - Contacts: %d, Sponsored: %d, SponsoredAmount: %s",
		stats.Contacts,
		stats.Sponsored,
		stats.SponsoredAmount.String())
}

func (stats *Statistics) Bytes() []byte {
	var bytes []byte
	if bs, err := codec.MarshalToBytes(stats); err != nil {
		log.Panicf("Failed to marshal Statistics %+v. err=%+v", stats, err)
		return nil
	} else {
		bytes = bs
	}
	return bytes
}

func (stats *Statistics) SetBytes(bs []byte) error {
	_, err := codec.UnmarshalFromBytes(bs, stats)
	if err != nil {
		return err
	}
	return nil
}

func (stats *Statistics) Set(field string, value interface{}) error {
	return reflections.SetField(stats, field, value)
}

func (stats *Statistics) Increase(field string, value interface{}) error {
	org, err := reflections.GetField(stats, field)
	if err != nil {
		return err
	}

	if reflect.TypeOf(org) != reflect.TypeOf(value) {
		return fmt.Errorf("provided value type didn't match field type")
	}

	switch v := value.(type) {
	case uint64:
		return stats.Set(field, org.(uint64)+v)
	case common.HexInt:
		var newValue common.HexInt
		o := org.(common.HexInt)
		newValue.Add(&o.Int, &v.Int)
		return stats.Set(field, newValue)
	}

	return nil
}

func (stats *Statistics) Decrease(field string, value interface{}) error {
	org, err := reflections.GetField(stats, field)
	if err != nil {
		return err
	}

	if reflect.TypeOf(org) != reflect.TypeOf(value) {
		return fmt.Errorf("provided value type didn't match field type")
	}

	switch v := value.(type) {
	case uint64:
		o := org.(uint64)
		if o < v {
			return fmt.Errorf("%s underflow: %d - %d", field, o, v)
		}
		return stats.Set(field, o-v)
	case common.HexInt:
		var newValue common.HexInt
		o := org.(common.HexInt)
		newValue.Sub(&o.Int, &v.Int)
		return stats.Set(field, newValue)
	}

	return nil
}
