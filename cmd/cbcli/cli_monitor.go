package main

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"log"
	"time"

	"github.com/icon-project/contactbook/common"
	"github.com/icon-project/contactbook/core"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

type monitorTarget struct {
	Name    string         `json:"name"`
	Address common.Address `json:"address"`
}

type monitorConfig struct {
	Interval time.Duration   `json:"interval,omitempty"`
	Targets  []monitorTarget `json:"targets"`
}

func (cli *CLI) monitor(cb *core.CBIPC, configFile string, url string) {
	var config monitorConfig

	// read configuration file
	bs, err := ioutil.ReadFile(configFile)
	if err != nil {
		fmt.Printf("Can't read config file. err=%+v\n", err)
		return
	}
	if err := json.Unmarshal(bs, &config); err != nil {
		fmt.Printf("Can't unmarshal config file. err=%+v\n", err)
		return
	}
	if config.Interval == 0 {
		config.Interval = 10
	}

	fmt.Printf("Monitoring config: %s\n", common.Display(config))

	log.Println("[*] To exit press CTRL+C")

	for {
		cli.readAndPush(cb, config.Targets, url)
		time.Sleep(config.Interval * time.Second)
	}
}

func (cli *CLI) readAndPush(cb *core.CBIPC, targets []monitorTarget, url string) {
	pusher := push.New(url, "contactbook")

	for _, target := range targets {
		balance, err := cb.SendBalance(target.Address)
		if err != nil {
			log.Printf("Can't read balance of %s. %+v", target.Address, err)
			continue
		}
		count, err := cb.SendCount(target.Address)
		if err != nil {
			log.Printf("Can't read contacts of %s. %+v", target.Address, err)
			continue
		}

		labels := prometheus.Labels{"target": target.Name}
		gauge := prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "contactbook_balance",
			ConstLabels: labels,
		})
		gauge.Set(float64(balance.Int.Uint64()))
		pusher.Collector(gauge)

		contacts := prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "contactbook_contacts",
			ConstLabels: labels,
		})
		contacts.Set(float64(count))
		pusher.Collector(contacts)
	}

	if stats, err := cb.SendStatistics(); err == nil {
		sponsored := prometheus.NewGauge(prometheus.GaugeOpts{Name: "contactbook_sponsored"})
		sponsored.Set(float64(stats.Sponsored))
		pusher.Collector(sponsored)
	}

	if err := pusher.Push(); err != nil {
		log.Printf("Can't push to %s, %+v", url, err)
	}
}
