package core

import (
	"log"

	"github.com/icon-project/contactbook/common"
	"github.com/icon-project/contactbook/common/codec"
	"github.com/icon-project/contactbook/common/ipc"
	"github.com/pkg/errors"
)

type OwnerQuery struct {
	Owner common.Address
}

type OwnerAliasQuery struct {
	Owner common.Address
	Alias string
}

type OwnerAddressQuery struct {
	Owner   common.Address
	Address common.Address
}

type ResponseContact struct {
	Found   bool
	Contact Contact
	ResponseStatus
}

type ResponseContacts struct {
	Contacts []Contact
	ResponseStatus
}

type ResponseCount struct {
	Count uint32
	ResponseStatus
}

type ResponseAliases struct {
	Aliases []string
	ResponseStatus
}

type ResponseAlias struct {
	Alias string
	ResponseStatus
}

type ResponseNonce struct {
	Nonce uint64
	ResponseStatus
}

type ResponseAmount struct {
	Amount common.HexInt
	ResponseStatus
}

type ResponseStatistics struct {
	Statistics
	ResponseStatus
}

func (mh *msgHandler) decode(msg uint, data []byte, v interface{}) error {
	if _, err := codec.MP.UnmarshalFromBytes(data, v); err != nil {
		log.Printf("Failed to deserialize %s message. err=%+v", MsgToString(msg), err)
		return errors.Wrap(ErrInternal, err.Error())
	}
	return nil
}

func (mh *msgHandler) reply(c ipc.Connection, msg uint, id uint32, status *ResponseStatus, err error, resp interface{}) error {
	if err != nil {
		log.Printf("Failed to %s. err=%+v", MsgToString(msg), err)
	}
	status.setError(err)
	mh.mgr.metrics.observe(msg, err == nil, err)
	return mh.send(c, msg, id, resp)
}

func (mh *msgHandler) get(c ipc.Connection, id uint32, data []byte) error {
	var req OwnerAliasQuery
	var resp ResponseContact
	err := mh.decode(MsgGet, data, &req)
	if err == nil {
		var contact *Contact
		if contact, err = mh.mgr.book.Get(req.Owner, req.Alias); contact != nil {
			resp.Found = true
			resp.Contact = *contact
		}
	}
	return mh.reply(c, MsgGet, id, &resp.ResponseStatus, err, &resp)
}

func (mh *msgHandler) list(c ipc.Connection, id uint32, data []byte) error {
	var req OwnerQuery
	var resp ResponseContacts
	err := mh.decode(MsgList, data, &req)
	if err == nil {
		resp.Contacts, err = mh.mgr.book.List(req.Owner)
	}
	return mh.reply(c, MsgList, id, &resp.ResponseStatus, err, &resp)
}

func (mh *msgHandler) count(c ipc.Connection, id uint32, data []byte) error {
	var req OwnerQuery
	var resp ResponseCount
	err := mh.decode(MsgCount, data, &req)
	if err == nil {
		resp.Count, err = mh.mgr.book.Count(req.Owner)
	}
	return mh.reply(c, MsgCount, id, &resp.ResponseStatus, err, &resp)
}

func (mh *msgHandler) sponsorAmount(c ipc.Connection, id uint32) error {
	var resp ResponseAmount
	resp.Amount = *mh.mgr.book.SponsorshipAmount()
	return mh.reply(c, MsgSponsorAmount, id, &resp.ResponseStatus, nil, &resp)
}

func (mh *msgHandler) isSponsored(c ipc.Connection, id uint32, data []byte) error {
	var req OwnerAliasQuery
	var resp ResponseResult
	err := mh.decode(MsgIsSponsored, data, &req)
	if err == nil {
		resp.Success, err = mh.mgr.book.IsSponsored(req.Owner, req.Alias)
	}
	return mh.reply(c, MsgIsSponsored, id, &resp.ResponseStatus, err, &resp)
}

func (mh *msgHandler) listSponsored(c ipc.Connection, id uint32, data []byte) error {
	var req OwnerQuery
	var resp ResponseAliases
	err := mh.decode(MsgListSponsored, data, &req)
	if err == nil {
		resp.Aliases, err = mh.mgr.book.ListSponsored(req.Owner)
	}
	return mh.reply(c, MsgListSponsored, id, &resp.ResponseStatus, err, &resp)
}

func (mh *msgHandler) isAddressUsed(c ipc.Connection, id uint32, data []byte) error {
	var req OwnerAddressQuery
	var resp ResponseResult
	err := mh.decode(MsgIsAddressUsed, data, &req)
	if err == nil {
		resp.Success, err = mh.mgr.book.IsAddressUsed(req.Owner, req.Address)
	}
	return mh.reply(c, MsgIsAddressUsed, id, &resp.ResponseStatus, err, &resp)
}

func (mh *msgHandler) findAlias(c ipc.Connection, id uint32, data []byte) error {
	var req OwnerAddressQuery
	var resp ResponseAlias
	err := mh.decode(MsgFindAlias, data, &req)
	if err == nil {
		resp.Alias, err = mh.mgr.book.FindAliasByAddress(req.Owner, req.Address)
	}
	return mh.reply(c, MsgFindAlias, id, &resp.ResponseStatus, err, &resp)
}

func (mh *msgHandler) nonce(c ipc.Connection, id uint32, data []byte) error {
	var req OwnerQuery
	var resp ResponseNonce
	err := mh.decode(MsgNonce, data, &req)
	if err == nil {
		resp.Nonce, err = mh.mgr.book.Nonce(req.Owner)
	}
	return mh.reply(c, MsgNonce, id, &resp.ResponseStatus, err, &resp)
}

func (mh *msgHandler) balance(c ipc.Connection, id uint32, data []byte) error {
	var req OwnerQuery
	var resp ResponseAmount
	err := mh.decode(MsgBalance, data, &req)
	if err == nil {
		var balance *common.HexInt
		if balance, err = mh.mgr.book.Balance(req.Owner); balance != nil {
			resp.Amount = *balance
		}
	}
	return mh.reply(c, MsgBalance, id, &resp.ResponseStatus, err, &resp)
}

func (mh *msgHandler) statistics(c ipc.Connection, id uint32) error {
	var resp ResponseStatistics
	stats, err := mh.mgr.book.Statistics()
	if stats != nil {
		resp.Statistics = *stats
	}
	return mh.reply(c, MsgStatistics, id, &resp.ResponseStatus, err, &resp)
}
