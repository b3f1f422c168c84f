package core

import (
	"log"

	"github.com/icon-project/contactbook/common"
	"github.com/icon-project/contactbook/common/codec"
	"github.com/icon-project/contactbook/common/ipc"
	"github.com/pkg/errors"
)

type InitMessage struct {
	Medium common.Address
}

type ContactMessage struct {
	Alias   string
	Address common.Address
}

type AliasMessage struct {
	Alias string
}

type MintMessage struct {
	Address common.Address
	Amount  common.HexInt
}

func (mh *msgHandler) init(c ipc.Connection, id uint32, data []byte) error {
	var req InitMessage
	var err error
	if _, err = codec.MP.UnmarshalFromBytes(data, &req); err != nil {
		log.Printf("Failed to deserialize INIT message. err=%+v", err)
		err = errors.Wrap(ErrInternal, err.Error())
	} else {
		log.Printf("\t INIT request: medium: %s", req.Medium)
		err = mh.mgr.book.Initialize(req.Medium)
	}
	if err != nil {
		log.Printf("Failed to initialize. err=%+v", err)
	}

	resp := newResponseResult(err == nil, err)
	mh.mgr.metrics.observe(MsgInit, resp.Success, err)
	return mh.send(c, MsgInit, id, resp)
}

func (mh *msgHandler) mutate(c ipc.Connection, msg uint, id uint32, data []byte) error {
	var env Envelope
	if _, err := codec.MP.UnmarshalFromBytes(data, &env); err != nil {
		log.Printf("Failed to deserialize %s message. err=%+v", MsgToString(msg), err)
		resp := newResponseResult(false, errors.Wrap(ErrUnauthenticated, err.Error()))
		mh.mgr.metrics.observe(msg, false, ErrUnauthenticated)
		return mh.send(c, msg, id, resp)
	}

	success, err := DoMutate(mh.mgr.book, msg, &env)
	if err != nil {
		log.Printf("Failed to %s. from=%s err=%+v", MsgToString(msg), env.From, err)
	}
	if success && msg == MsgSponsor {
		mh.mgr.metrics.sponsored()
	}

	mh.mgr.metrics.observe(msg, success, err)
	return mh.send(c, msg, id, newResponseResult(success, err))
}

// DoMutate authenticates env and applies the mutation it carries. An
// envelope signed for another message is rejected.
func DoMutate(book *ContactBook, msg uint, env *Envelope) (bool, error) {
	if env.Msg != msg {
		return false, errors.Wrapf(ErrUnauthenticated, "envelope for %s", MsgToString(env.Msg))
	}
	caller, err := book.Authenticate(env)
	if err != nil {
		return false, err
	}

	switch msg {
	case MsgAdd, MsgEdit:
		var req ContactMessage
		if err = env.Decode(&req); err != nil {
			return false, errors.Wrapf(ErrInternal, "payload: %v", err)
		}
		log.Printf("\t %s request: owner: %s, alias: %s, address: %s",
			MsgToString(msg), caller.Address(), req.Alias, req.Address)
		if msg == MsgAdd {
			return book.Add(caller, req.Alias, req.Address)
		}
		return book.Edit(caller, req.Alias, req.Address)
	case MsgDelete, MsgSponsor:
		var req AliasMessage
		if err = env.Decode(&req); err != nil {
			return false, errors.Wrapf(ErrInternal, "payload: %v", err)
		}
		log.Printf("\t %s request: owner: %s, alias: %s", MsgToString(msg), caller.Address(), req.Alias)
		if msg == MsgDelete {
			return book.Delete(caller, req.Alias)
		}
		return book.Sponsor(caller, req.Alias)
	}
	return false, errors.Wrapf(ErrInternal, "%s is not a mutation", MsgToString(msg))
}

func (mh *msgHandler) mint(c ipc.Connection, id uint32, data []byte) error {
	var req MintMessage
	var err error
	if !mh.mgr.faucet {
		err = errors.Wrap(ErrUnauthenticated, "faucet is disabled")
	} else if _, err = codec.MP.UnmarshalFromBytes(data, &req); err != nil {
		log.Printf("Failed to deserialize MINT message. err=%+v", err)
		err = errors.Wrap(ErrInternal, err.Error())
	} else {
		log.Printf("\t MINT request: address: %s, amount: %s", req.Address, req.Amount.String())
		err = mh.mgr.book.Mint(req.Address, &req.Amount)
	}
	if err != nil {
		log.Printf("Failed to mint. err=%+v", err)
	}

	resp := newResponseResult(err == nil, err)
	mh.mgr.metrics.observe(MsgMint, resp.Success, err)
	return mh.send(c, MsgMint, id, resp)
}
