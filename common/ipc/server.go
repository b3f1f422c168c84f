package ipc

import (
	"log"
	"net"
	"os"
	"sync"

	"github.com/pkg/errors"
)

type Server interface {
	Listen(network, address string) error
	SetHandler(handler ConnectionHandler)
	Loop() error
	Close() error
}

type server struct {
	lock     sync.Mutex
	listener net.Listener
	handler  ConnectionHandler
	conns    map[*connection]struct{}
	closed   bool
}

func NewServer() Server {
	return &server{
		conns: make(map[*connection]struct{}),
	}
}

func (s *server) Listen(network, address string) error {
	if network == "unix" {
		// remove a socket file left by a previous run
		if _, err := os.Stat(address); err == nil {
			if err := os.Remove(address); err != nil {
				return errors.Wrapf(err, "remove stale socket %s", address)
			}
		}
	}
	l, err := net.Listen(network, address)
	if err != nil {
		return err
	}
	s.listener = l
	return nil
}

func (s *server) SetHandler(handler ConnectionHandler) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.handler = handler
}

func (s *server) Loop() error {
	if s.listener == nil {
		return errors.New("server is not listening")
	}
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.lock.Lock()
			closed := s.closed
			s.lock.Unlock()
			if closed {
				return nil
			}
			return err
		}

		c := connectionFromConn(conn)
		s.lock.Lock()
		s.conns[c] = struct{}{}
		handler := s.handler
		s.lock.Unlock()

		if handler != nil {
			if err := handler.OnConnect(c); err != nil {
				log.Printf("Failed to accept connection. err=%+v", err)
				s.release(c, handler)
				continue
			}
		}
		go s.serve(c, handler)
	}
}

func (s *server) serve(c *connection, handler ConnectionHandler) {
	for {
		if err := c.HandleMessage(); err != nil {
			s.release(c, handler)
			return
		}
	}
}

func (s *server) release(c *connection, handler ConnectionHandler) {
	s.lock.Lock()
	_, ok := s.conns[c]
	delete(s.conns, c)
	s.lock.Unlock()
	if !ok {
		return
	}

	if handler != nil {
		handler.OnClose(c)
	}
	c.Close()
}

func (s *server) Close() error {
	s.lock.Lock()
	s.closed = true
	conns := make([]*connection, 0, len(s.conns))
	for c := range s.conns {
		conns = append(conns, c)
	}
	handler := s.handler
	s.lock.Unlock()

	var err error
	if s.listener != nil {
		err = s.listener.Close()
	}
	for _, c := range conns {
		s.release(c, handler)
	}
	return err
}
