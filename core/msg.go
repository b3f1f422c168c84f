package core

import (
	"encoding/json"
	"log"

	"github.com/icon-project/contactbook/common/ipc"
	"github.com/pkg/errors"
)

const Version uint64 = 1

const (
	MsgVersion     uint = 0
	MsgInit             = 1
	MsgAdd              = 2
	MsgEdit             = 3
	MsgDelete           = 4
	MsgSponsor          = 5

	MsgGet              = 10
	MsgList             = 11
	MsgCount            = 12
	MsgSponsorAmount    = 13
	MsgIsSponsored      = 14
	MsgListSponsored    = 15
	MsgIsAddressUsed    = 16
	MsgFindAlias        = 17
	MsgNonce            = 18
	MsgBalance          = 19
	MsgStatistics       = 20

	MsgMint             = 30

	MsgNotify           = 100
	MsgReady            = MsgNotify + 0
)

func MsgToString(msg uint) string {
	switch msg {
	case MsgVersion:
		return "VERSION"
	case MsgInit:
		return "INIT"
	case MsgAdd:
		return "ADD"
	case MsgEdit:
		return "EDIT"
	case MsgDelete:
		return "DELETE"
	case MsgSponsor:
		return "SPONSOR"
	case MsgGet:
		return "GET"
	case MsgList:
		return "LIST"
	case MsgCount:
		return "COUNT"
	case MsgSponsorAmount:
		return "SPONSOR_AMOUNT"
	case MsgIsSponsored:
		return "IS_SPONSORED"
	case MsgListSponsored:
		return "LIST_SPONSORED"
	case MsgIsAddressUsed:
		return "IS_ADDRESS_USED"
	case MsgFindAlias:
		return "FIND_ALIAS"
	case MsgNonce:
		return "NONCE"
	case MsgBalance:
		return "BALANCE"
	case MsgStatistics:
		return "STATISTICS"
	case MsgMint:
		return "MINT"
	case MsgReady:
		return "READY"
	default:
		return "UNKNOWN"
	}
}

func MsgDataToString(data interface{}) string {
	b, err := json.Marshal(data)
	if err != nil {
		return "Can't covert Message to json"
	}
	return string(b)
}

// ResponseStatus tells an aborted call from a completed one. Code is
// CodeNone when the call completed.
type ResponseStatus struct {
	Code  ErrorCode
	Error string
}

func (s *ResponseStatus) setError(err error) {
	s.Code = ErrorToCode(err)
	if err != nil {
		s.Error = err.Error()
	}
}

// Err rebuilds the error of an aborted call. errors.Cause of the result is
// one of the sentinel errors.
func (s *ResponseStatus) Err() error {
	if s.Code == CodeNone {
		return nil
	}
	return CodeToError(s.Code, s.Error)
}

type ResponseResult struct {
	Success bool
	ResponseStatus
}

func newResponseResult(success bool, err error) *ResponseResult {
	resp := &ResponseResult{Success: success && err == nil}
	resp.setError(err)
	return resp
}

type ResponseVersion struct {
	Version     uint64
	Initialized bool
}

type msgHandler struct {
	mgr  *manager
	conn ipc.Connection
}

func newConnection(m *manager, c ipc.Connection) (*msgHandler, error) {
	handler := &msgHandler{
		mgr:  m,
		conn: c,
	}

	for _, msg := range []uint{
		MsgVersion, MsgInit, MsgAdd, MsgEdit, MsgDelete, MsgSponsor,
		MsgGet, MsgList, MsgCount, MsgSponsorAmount, MsgIsSponsored, MsgListSponsored,
		MsgIsAddressUsed, MsgFindAlias, MsgNonce, MsgBalance, MsgStatistics, MsgMint,
	} {
		c.SetHandler(msg, handler)
	}

	// send READY message to peer
	err := sendVersion(c, MsgReady, 0, m.book.Initialized())
	if err != nil {
		log.Printf("Failed to send READY message. err=%+v", err)
	}

	return handler, err
}

func (mh *msgHandler) HandleMessage(c ipc.Connection, msg uint, id uint32, data []byte) error {
	log.Printf("Get message. (msg:%s, id:%d)", MsgToString(msg), id)
	switch msg {
	case MsgVersion:
		go mh.version(c, id)
	case MsgInit:
		go mh.init(c, id, data)
	case MsgAdd, MsgEdit, MsgDelete, MsgSponsor:
		go mh.mutate(c, msg, id, data)
	case MsgGet:
		go mh.get(c, id, data)
	case MsgList:
		go mh.list(c, id, data)
	case MsgCount:
		go mh.count(c, id, data)
	case MsgSponsorAmount:
		go mh.sponsorAmount(c, id)
	case MsgIsSponsored:
		go mh.isSponsored(c, id, data)
	case MsgListSponsored:
		go mh.listSponsored(c, id, data)
	case MsgIsAddressUsed:
		go mh.isAddressUsed(c, id, data)
	case MsgFindAlias:
		go mh.findAlias(c, id, data)
	case MsgNonce:
		go mh.nonce(c, id, data)
	case MsgBalance:
		go mh.balance(c, id, data)
	case MsgStatistics:
		go mh.statistics(c, id)
	case MsgMint:
		go mh.mint(c, id, data)
	default:
		return errors.Errorf("UnknownMessage(%d)", msg)
	}
	return nil
}

func (mh *msgHandler) send(c ipc.Connection, msg uint, id uint32, resp interface{}) error {
	log.Printf("Send message. (msg:%s, id:%d, data:%s)", MsgToString(msg), id, MsgDataToString(resp))
	if err := c.Send(msg, id, resp); err != nil {
		log.Printf("Failed to send %s response. err=%+v", MsgToString(msg), err)
		return err
	}
	return nil
}

func (mh *msgHandler) version(c ipc.Connection, id uint32) error {
	return sendVersion(c, MsgVersion, id, mh.mgr.book.Initialized())
}

func sendVersion(c ipc.Connection, msg uint, id uint32, initialized bool) error {
	resp := ResponseVersion{
		Version:     Version,
		Initialized: initialized,
	}

	log.Printf("Send message. (msg:%s, id:%d, data:%s)", MsgToString(msg), id, MsgDataToString(resp))
	return c.Send(msg, id, resp)
}
