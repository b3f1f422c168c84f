package core

import (
	"fmt"
	"time"

	"github.com/icon-project/contactbook/common"
	"github.com/icon-project/contactbook/common/ipc"
	"github.com/pkg/errors"
)

// CBIPC is a client of the contact book service.
type CBIPC struct {
	conn ipc.Connection
	id   uint32
}

func InitCBIPC(net string, address string) (*CBIPC, error) {
	cb := new(CBIPC)

	// Connect to server
	retry := 0
RETRY:
	conn, err := ipc.Dial(net, address)
	if err != nil {
		if retry != 5 {
			time.Sleep(200 * time.Millisecond)
			retry++
			goto RETRY
		}
		fmt.Printf("Failed to dial %s:%s with %d tries. err=%+v\n", net, address, retry, err)
		return nil, err
	}
	cb.conn = conn

	// flush READY message
	for {
		var m ResponseVersion
		msg, _, err := conn.Receive(&m)
		if err != nil {
			conn.Close()
			return nil, err
		}
		if msg == MsgReady {
			break
		}
	}

	return cb, nil
}

func FiniCBIPC(cb *CBIPC) {
	cb.conn.Close()
}

func (cb *CBIPC) call(msg uint, req interface{}, resp interface{}) error {
	cb.id++
	m, err := cb.conn.SendAndReceive(msg, cb.id, req, resp)
	if err != nil {
		return err
	}
	if m != msg {
		return errors.Errorf("unexpected response %s for %s", MsgToString(m), MsgToString(msg))
	}
	return nil
}

func (cb *CBIPC) SendVersion() (*ResponseVersion, error) {
	resp := new(ResponseVersion)
	err := cb.call(MsgVersion, nil, resp)
	return resp, err
}

func (cb *CBIPC) SendInit(medium common.Address) error {
	var resp ResponseResult
	if err := cb.call(MsgInit, &InitMessage{Medium: medium}, &resp); err != nil {
		return err
	}
	return resp.Err()
}

// sendSigned wraps payload into an envelope with the next nonce of kp and
// signs it.
func (cb *CBIPC) sendSigned(kp *common.KeyPair, msg uint, payload interface{}) (bool, error) {
	nonce, err := cb.SendNonce(*kp.Address())
	if err != nil {
		return false, err
	}
	env, err := NewEnvelope(msg, nonce+1, payload)
	if err != nil {
		return false, err
	}
	if err = env.Sign(kp); err != nil {
		return false, err
	}

	var resp ResponseResult
	if err = cb.call(msg, env, &resp); err != nil {
		return false, err
	}
	return resp.Success, resp.Err()
}

func (cb *CBIPC) SendAdd(kp *common.KeyPair, alias string, address common.Address) (bool, error) {
	return cb.sendSigned(kp, MsgAdd, &ContactMessage{Alias: alias, Address: address})
}

func (cb *CBIPC) SendEdit(kp *common.KeyPair, alias string, address common.Address) (bool, error) {
	return cb.sendSigned(kp, MsgEdit, &ContactMessage{Alias: alias, Address: address})
}

func (cb *CBIPC) SendDelete(kp *common.KeyPair, alias string) (bool, error) {
	return cb.sendSigned(kp, MsgDelete, &AliasMessage{Alias: alias})
}

func (cb *CBIPC) SendSponsor(kp *common.KeyPair, alias string) (bool, error) {
	return cb.sendSigned(kp, MsgSponsor, &AliasMessage{Alias: alias})
}

// SendEnvelope sends a prepared envelope. The caller sets the nonce.
func (cb *CBIPC) SendEnvelope(msg uint, env *Envelope) (bool, error) {
	var resp ResponseResult
	if err := cb.call(msg, env, &resp); err != nil {
		return false, err
	}
	return resp.Success, resp.Err()
}

func (cb *CBIPC) SendGet(owner common.Address, alias string) (*Contact, error) {
	var resp ResponseContact
	if err := cb.call(MsgGet, &OwnerAliasQuery{Owner: owner, Alias: alias}, &resp); err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil || !resp.Found {
		return nil, err
	}
	return &resp.Contact, nil
}

func (cb *CBIPC) SendList(owner common.Address) ([]Contact, error) {
	var resp ResponseContacts
	if err := cb.call(MsgList, &OwnerQuery{Owner: owner}, &resp); err != nil {
		return nil, err
	}
	return resp.Contacts, resp.Err()
}

func (cb *CBIPC) SendCount(owner common.Address) (uint32, error) {
	var resp ResponseCount
	if err := cb.call(MsgCount, &OwnerQuery{Owner: owner}, &resp); err != nil {
		return 0, err
	}
	return resp.Count, resp.Err()
}

func (cb *CBIPC) SendSponsorshipAmount() (*common.HexInt, error) {
	var resp ResponseAmount
	if err := cb.call(MsgSponsorAmount, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Amount, resp.Err()
}

func (cb *CBIPC) SendIsSponsored(owner common.Address, alias string) (bool, error) {
	var resp ResponseResult
	if err := cb.call(MsgIsSponsored, &OwnerAliasQuery{Owner: owner, Alias: alias}, &resp); err != nil {
		return false, err
	}
	return resp.Success, resp.Err()
}

func (cb *CBIPC) SendListSponsored(owner common.Address) ([]string, error) {
	var resp ResponseAliases
	if err := cb.call(MsgListSponsored, &OwnerQuery{Owner: owner}, &resp); err != nil {
		return nil, err
	}
	return resp.Aliases, resp.Err()
}

func (cb *CBIPC) SendIsAddressUsed(owner, address common.Address) (bool, error) {
	var resp ResponseResult
	if err := cb.call(MsgIsAddressUsed, &OwnerAddressQuery{Owner: owner, Address: address}, &resp); err != nil {
		return false, err
	}
	return resp.Success, resp.Err()
}

func (cb *CBIPC) SendFindAlias(owner, address common.Address) (string, error) {
	var resp ResponseAlias
	if err := cb.call(MsgFindAlias, &OwnerAddressQuery{Owner: owner, Address: address}, &resp); err != nil {
		return "", err
	}
	return resp.Alias, resp.Err()
}

func (cb *CBIPC) SendNonce(owner common.Address) (uint64, error) {
	var resp ResponseNonce
	if err := cb.call(MsgNonce, &OwnerQuery{Owner: owner}, &resp); err != nil {
		return 0, err
	}
	return resp.Nonce, resp.Err()
}

func (cb *CBIPC) SendBalance(owner common.Address) (*common.HexInt, error) {
	var resp ResponseAmount
	if err := cb.call(MsgBalance, &OwnerQuery{Owner: owner}, &resp); err != nil {
		return nil, err
	}
	return &resp.Amount, resp.Err()
}

func (cb *CBIPC) SendStatistics() (*Statistics, error) {
	var resp ResponseStatistics
	if err := cb.call(MsgStatistics, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Statistics, resp.Err()
}

func (cb *CBIPC) SendMint(to common.Address, amount *common.HexInt) error {
	var resp ResponseResult
	req := MintMessage{Address: to, Amount: *amount}
	if err := cb.call(MsgMint, &req, &resp); err != nil {
		return err
	}
	return resp.Err()
}
