package main

import (
	"encoding/json"
	"flag"
	"io/ioutil"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/icon-project/contactbook/common"
	"github.com/icon-project/contactbook/common/db"
	"github.com/icon-project/contactbook/core"
)

var (
	version = "unknown"
	build   = "unknown"
)

func loadConfig(cfg *core.CBConfig) {
	bs, err := ioutil.ReadFile(cfg.FileName)
	if err != nil {
		if os.IsNotExist(err) {
			return
		}
		log.Panicf("Fail to read file=%s err=%+v", cfg.FileName, err)
	}
	if err = json.Unmarshal(bs, cfg); err != nil {
		log.Panicf("Fail to parse file=%s err=%+v", cfg.FileName, err)
	}
}

func generateConfig(cfg *core.CBConfig) {
	if len(cfg.FileName) == 0 {
		cfg.FileName = "cb_config.json"
	}
	f, err := os.OpenFile(cfg.FileName,
		os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0755)
	if err != nil {
		log.Panicf("Fail to open file=%s err=%+v", cfg.FileName, err)
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(cfg); err != nil {
		log.Panicf("Fail to generate JSON for %+v", cfg)
	}
	f.Close()
}

func main() {
	var cfg core.CBConfig
	var generate bool

	flag.StringVar(&cfg.FileName, "config", "", "Contact book configuration file")
	flag.StringVar(&cfg.DBDir, "db", ".contactdb", "Contact database directory")
	flag.StringVar(&cfg.DBType, "db-type", string(db.GoLevelDBBackend),
		"Database backend ("+strings.Join(db.Backends(), ", ")+")")
	flag.StringVar(&cfg.IpcNet, "ipc-net", "unix", "IPC network (unix, tcp)")
	flag.StringVar(&cfg.IpcAddr, "ipc", "/tmp/contactbook.sock", "IPC channel")
	flag.BoolVar(&cfg.ClientMode, "client", false, "Connect to IPC channel instead of listening")
	flag.StringVar(&cfg.Medium, "medium", "", "Address of the asset paid by sponsorships")
	flag.BoolVar(&cfg.Faucet, "faucet", false, "Accept MINT messages")
	flag.StringVar(&cfg.MetricsAddr, "metrics", "", "Prometheus metrics address. ex) :9090")
	flag.StringVar(&cfg.LogFile, "log-file", "", "Log file. Log to stderr if empty")
	flag.IntVar(&cfg.LogMaxSize, "log-max-size", 100, "Maximum size in MB of a log file before rotation")
	flag.IntVar(&cfg.LogMaxBackups, "log-max-backups", 10, "Maximum number of rotated log files")
	flag.BoolVar(&generate, "gen", false, "Generate configuration file")
	flag.Parse()

	if generate {
		generateConfig(&cfg)
		os.Exit(0)
	}

	if len(cfg.FileName) != 0 {
		loadConfig(&cfg)
	}

	common.SetLog(cfg.LogFile, cfg.LogMaxSize, cfg.LogMaxBackups, false)

	log.Printf("Version : %s", version)
	log.Printf("Build   : %s", build)
	cfg.Print()

	cbm, err := core.InitManager(&cfg)
	if err != nil {
		log.Panicf("Failed to start contact book manager %+v", err)
	}

	go func() {
		if err := cbm.Loop(); err != nil {
			log.Printf("Manager loop stopped. err=%+v", err)
		}
	}()

	log.Println("[*] To exit press CTRL+C")
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs

	cbm.Close()
}
