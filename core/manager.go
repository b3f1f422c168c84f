package core

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/icon-project/contactbook/common"
	"github.com/icon-project/contactbook/common/ipc"
	"github.com/pkg/errors"
)

type CBConfig struct {
	DBDir         string `json:"DBDir"`
	DBType        string `json:"DBType"`
	IpcNet        string `json:"IPCNet"`
	IpcAddr       string `json:"IPCAddress"`
	ClientMode    bool   `json:"ClientMode"`
	Medium        string `json:"Medium"`
	Faucet        bool   `json:"Faucet"`
	MetricsAddr   string `json:"MetricsAddress"`
	LogFile       string `json:"LogFile"`
	LogMaxSize    int    `json:"LogMaxSize"`
	LogMaxBackups int    `json:"LogMaxBackups"`
	FileName      string `json:"-"`
}

func (cfg *CBConfig) Print() {
	b, err := json.Marshal(cfg)
	if err != nil {
		log.Printf("Can't covert configuration to json")
		return
	}

	log.Printf("Running config %s\n", string(b))
}

type Manager interface {
	Loop() error
	Close() error
}

type manager struct {
	clientMode bool
	faucet     bool
	server     ipc.Server
	conn       ipc.Connection

	metrics       *metrics
	metricsServer *http.Server

	ctx  *Context
	book *ContactBook
}

func (m *manager) Loop() error {
	if m.clientMode {
		for {
			err := m.conn.HandleMessage()
			if err != nil {
				log.Printf("Failed to handle message err=%+v", err)
				m.Close()
				return err
			}
		}
	} else {
		return m.server.Loop()
	}
}

func (m *manager) Close() error {
	if m.clientMode {
		m.conn.Close()
	} else {
		if err := m.server.Close(); err != nil {
			log.Printf("Failed to close IPC server err=%+v", err)
		}
	}
	if m.metricsServer != nil {
		if err := m.metricsServer.Close(); err != nil {
			log.Printf("Failed to close metrics server err=%+v", err)
		}
	}

	CloseContactDB(m.ctx.DB)
	return nil
}

func (m *manager) Book() *ContactBook {
	return m.book
}

// ConnectionHandler.OnConnect
func (m *manager) OnConnect(c ipc.Connection) error {
	_, err := newConnection(m, c)
	return err
}

// ConnectionHandler.OnClose
func (m *manager) OnClose(c ipc.Connection) error {
	return nil
}

func InitManager(cfg *CBConfig) (*manager, error) {
	var err error
	m := new(manager)
	m.clientMode = cfg.ClientMode
	m.faucet = cfg.Faucet
	m.metrics = newMetrics()

	// Initialize DB and load context values
	m.ctx, err = NewContext(cfg.DBDir, cfg.DBType, ContactDBName, nil, nil)
	if err != nil {
		return nil, err
	}
	m.book = NewContactBook(m.ctx)

	if err = initMedium(m.book, cfg.Medium); err != nil {
		CloseContactDB(m.ctx.DB)
		return nil, err
	}

	m.ctx.Print()

	// Initialize ipc channel
	if m.clientMode {
		// connect to server
		conn, err := ipc.Dial(cfg.IpcNet, cfg.IpcAddr)
		if err != nil {
			CloseContactDB(m.ctx.DB)
			return nil, err
		}
		m.OnConnect(conn)
		m.conn = conn
	} else {
		// IPC Server
		srv := ipc.NewServer()
		err = srv.Listen(cfg.IpcNet, cfg.IpcAddr)
		if err != nil {
			CloseContactDB(m.ctx.DB)
			return nil, err
		}
		srv.SetHandler(m)
		m.server = srv
	}

	// Initialize metrics endpoint
	if len(cfg.MetricsAddr) != 0 {
		mux := http.NewServeMux()
		mux.Handle("/metrics", m.metrics.handler())
		m.metricsServer = &http.Server{Addr: cfg.MetricsAddr, Handler: mux}
		go func() {
			if err := m.metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("Failed to serve metrics on %s. err=%+v", cfg.MetricsAddr, err)
			}
		}()
	}

	return m, nil
}

// initMedium initializes the service with the configured medium. A DB
// initialized with another medium is kept as it is.
func initMedium(book *ContactBook, medium string) error {
	if len(medium) == 0 {
		return nil
	}
	addr := common.NewAddressFromString(medium)
	if addr == nil {
		return errors.Wrapf(common.ErrInvalidAddress, "medium %q", medium)
	}
	if book.Initialized() {
		if current := book.Medium(); !current.Equal(*addr) {
			log.Printf("Configured medium %s differs from %s in DB. Keep %s", addr, current, current)
		}
		return nil
	}
	return book.Initialize(*addr)
}
