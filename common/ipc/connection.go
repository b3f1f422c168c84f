package ipc

import (
	"log"
	"net"
	"sync"

	"github.com/icon-project/contactbook/common/codec"
	ugorji "github.com/ugorji/go/codec"
)

type MessageHandler interface {
	HandleMessage(c Connection, msg uint, id uint32, data []byte) error
}

type Connection interface {
	Send(msg uint, id uint32, data interface{}) error
	SendAndReceive(msg uint, id uint32, data interface{}, buf interface{}) (uint, error)
	Receive(buf interface{}) (uint, uint32, error)
	SetHandler(msg uint, handler MessageHandler)
	HandleMessage() error
	Close() error
}

type ConnectionHandler interface {
	OnConnect(c Connection) error
	OnClose(c Connection) error
}

type connection struct {
	// sendLock keeps frames whole; recvLock keeps a request paired with its
	// response in SendAndReceive.
	sendLock sync.Mutex
	recvLock sync.Mutex

	lock    sync.Mutex
	conn    net.Conn
	handler map[uint]MessageHandler
}

type messageToSend struct {
	Msg  uint
	Id   uint32
	Data interface{}
}

type messageToReceive struct {
	Msg  uint
	Id   uint32
	Data ugorji.Raw
}

func connectionFromConn(conn net.Conn) *connection {
	return &connection{
		conn:    conn,
		handler: map[uint]MessageHandler{},
	}
}

func (c *connection) Send(msg uint, id uint32, data interface{}) error {
	m := messageToSend{
		Msg:  msg,
		Id:   id,
		Data: data,
	}
	c.sendLock.Lock()
	defer c.sendLock.Unlock()

	return codec.MP.Marshal(c.conn, m)
}

func (c *connection) receive() (*messageToReceive, error) {
	m := new(messageToReceive)
	if err := codec.MP.Unmarshal(c.conn, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (c *connection) Receive(buffer interface{}) (uint, uint32, error) {
	c.recvLock.Lock()
	defer c.recvLock.Unlock()

	m, err := c.receive()
	if err != nil {
		return 0, 0, err
	}
	if buffer != nil {
		if _, err := codec.MP.UnmarshalFromBytes(m.Data, buffer); err != nil {
			return m.Msg, m.Id, err
		}
	}
	return m.Msg, m.Id, nil
}

// SendAndReceive sends a request and decodes the next frame into buffer.
// It returns the message id of that frame so callers can tell a response
// from a notification.
func (c *connection) SendAndReceive(msg uint, id uint32, data interface{}, buffer interface{}) (uint, error) {
	c.recvLock.Lock()
	defer c.recvLock.Unlock()

	if err := c.Send(msg, id, data); err != nil {
		return 0, err
	}

	m, err := c.receive()
	if err != nil {
		return 0, err
	}
	if buffer != nil {
		if _, err := codec.MP.UnmarshalFromBytes(m.Data, buffer); err != nil {
			return m.Msg, err
		}
	}
	return m.Msg, nil
}

func (c *connection) HandleMessage() error {
	m, err := c.receive()
	if err != nil {
		return err
	}

	c.lock.Lock()
	handler := c.handler[m.Msg]
	c.lock.Unlock()

	if handler == nil {
		log.Printf("Unknown message msg=%d\n", m.Msg)
		return nil
	}

	return handler.HandleMessage(c, m.Msg, m.Id, m.Data)
}

func (c *connection) SetHandler(msg uint, handler MessageHandler) {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.handler[msg] = handler
}

func (c *connection) Close() error {
	return c.conn.Close()
}

func Dial(network, address string) (Connection, error) {
	conn, err := net.Dial(network, address)
	if err != nil {
		return nil, err
	}
	return connectionFromConn(conn), nil
}
