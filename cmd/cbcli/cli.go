package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/icon-project/contactbook/common"
	"github.com/icon-project/contactbook/core"
)

type CLI struct {
	net string
}

func (cli *CLI) printUsage() {
	fmt.Printf("Usage: %s [ADDRESS] [COMMAND]\n", os.Args[0])
	fmt.Printf("ADDRESS         Unix domain socket path or host:port with -tcp\n")
	fmt.Printf("COMMAND\n")
	fmt.Printf("\t version                            Send a VERSION message\n")
	fmt.Printf("\t keygen -key FILE                   Generate a key pair and save the secret key\n")
	fmt.Printf("\t init -medium ADDRESS               Set the medium of sponsorships\n")
	fmt.Printf("\t add -key FILE -alias ALIAS -address ADDRESS\n")
	fmt.Printf("\t                                    Add a contact to the book of the key\n")
	fmt.Printf("\t edit -key FILE -alias ALIAS -address ADDRESS\n")
	fmt.Printf("\t                                    Change the address of a contact\n")
	fmt.Printf("\t delete -key FILE -alias ALIAS      Delete a contact\n")
	fmt.Printf("\t sponsor -key FILE -alias ALIAS     Pay the sponsorship amount to a contact\n")
	fmt.Printf("\t get -owner ADDRESS -alias ALIAS    Query a contact\n")
	fmt.Printf("\t list -owner ADDRESS                Query all contacts and sponsored aliases of an owner\n")
	fmt.Printf("\t find -owner ADDRESS -address ADDRESS\n")
	fmt.Printf("\t                                    Query the alias of an address\n")
	fmt.Printf("\t balance -address ADDRESS           Query the balance in the medium\n")
	fmt.Printf("\t mint -address ADDRESS -amount AMOUNT\n")
	fmt.Printf("\t                                    Credit the medium. Needs a faucet server\n")
	fmt.Printf("\t stats                              Query statistics\n")
	fmt.Printf("\t monitor -config FILE -url URL      Push balances in configuration file to prometheus\n")
}

func (cli *CLI) validateArgs() {
	if len(os.Args) < 3 {
		cli.printUsage()
		os.Exit(1)
	}
}

func parse(cmd *flag.FlagSet) {
	if err := cmd.Parse(os.Args[3:]); err != nil {
		cmd.PrintDefaults()
		os.Exit(1)
	}
}

func required(cmd *flag.FlagSet, values ...string) {
	for _, v := range values {
		if v == "" {
			cmd.PrintDefaults()
			os.Exit(1)
		}
	}
}

func parseAddress(s string) common.Address {
	addr := common.NewAddressFromString(s)
	if addr == nil {
		fmt.Printf("Invalid address %q\n", s)
		os.Exit(1)
	}
	return *addr
}

func loadKey(file string) *common.KeyPair {
	kp, err := common.LoadKeyPair(file)
	if err != nil {
		fmt.Printf("Failed to load key file %s. err=%+v\n", file, err)
		os.Exit(1)
	}
	return kp
}

func (cli *CLI) connect(address string) *core.CBIPC {
	cb, err := core.InitCBIPC(cli.net, address)
	if err != nil {
		fmt.Printf("Failed to connect %s:%s err=%+v\n", cli.net, address, err)
		os.Exit(1)
	}
	return cb
}

func (cli *CLI) Run() {
	cli.validateArgs()

	address := os.Args[1]
	cmd := os.Args[2]
	cli.net = "unix"
	if os.Getenv("CB_IPC_NET") != "" {
		cli.net = os.Getenv("CB_IPC_NET")
	}

	keygenCmd := flag.NewFlagSet("keygen", flag.ExitOnError)
	keygenKey := keygenCmd.String("key", "", "Key file to write(Required)")

	initCmd := flag.NewFlagSet("init", flag.ExitOnError)
	initMedium := initCmd.String("medium", "", "Medium address(Required)")

	contactCmd := flag.NewFlagSet(cmd, flag.ExitOnError)
	contactKey := contactCmd.String("key", "", "Key file of the owner(Required)")
	contactAlias := contactCmd.String("alias", "", "Alias(Required)")
	contactAddress := contactCmd.String("address", "", "Address of the contact. add and edit only")

	queryCmd := flag.NewFlagSet(cmd, flag.ExitOnError)
	queryOwner := queryCmd.String("owner", "", "Owner address")
	queryAlias := queryCmd.String("alias", "", "Alias")
	queryAddress := queryCmd.String("address", "", "Address")

	mintCmd := flag.NewFlagSet("mint", flag.ExitOnError)
	mintAddress := mintCmd.String("address", "", "Address to credit(Required)")
	mintAmount := mintCmd.String("amount", "", "Amount in decimal or 0x hex(Required)")

	monitorCmd := flag.NewFlagSet("monitor", flag.ExitOnError)
	monitorConfig := monitorCmd.String("config", "./monitor.json", "Monitoring configuration file path")
	monitorURL := monitorCmd.String("url", "http://localhost:9091", "Push URL")

	start := time.Now()

	switch cmd {
	case "keygen":
		parse(keygenCmd)
		required(keygenCmd, *keygenKey)
		cli.keygen(*keygenKey)
		return
	case "version":
		cb := cli.connect(address)
		defer core.FiniCBIPC(cb)
		cli.version(cb)
	case "init":
		parse(initCmd)
		required(initCmd, *initMedium)
		cb := cli.connect(address)
		defer core.FiniCBIPC(cb)
		cli.init(cb, parseAddress(*initMedium))
	case "add", "edit":
		parse(contactCmd)
		required(contactCmd, *contactKey, *contactAlias, *contactAddress)
		cb := cli.connect(address)
		defer core.FiniCBIPC(cb)
		cli.mutate(cb, cmd, loadKey(*contactKey), *contactAlias, parseAddress(*contactAddress))
	case "delete", "sponsor":
		parse(contactCmd)
		required(contactCmd, *contactKey, *contactAlias)
		cb := cli.connect(address)
		defer core.FiniCBIPC(cb)
		cli.mutate(cb, cmd, loadKey(*contactKey), *contactAlias, common.Address{})
	case "get":
		parse(queryCmd)
		required(queryCmd, *queryOwner, *queryAlias)
		cb := cli.connect(address)
		defer core.FiniCBIPC(cb)
		cli.get(cb, parseAddress(*queryOwner), *queryAlias)
	case "list":
		parse(queryCmd)
		required(queryCmd, *queryOwner)
		cb := cli.connect(address)
		defer core.FiniCBIPC(cb)
		cli.list(cb, parseAddress(*queryOwner))
	case "find":
		parse(queryCmd)
		required(queryCmd, *queryOwner, *queryAddress)
		cb := cli.connect(address)
		defer core.FiniCBIPC(cb)
		cli.find(cb, parseAddress(*queryOwner), parseAddress(*queryAddress))
	case "balance":
		parse(queryCmd)
		required(queryCmd, *queryAddress)
		cb := cli.connect(address)
		defer core.FiniCBIPC(cb)
		cli.balance(cb, parseAddress(*queryAddress))
	case "mint":
		parse(mintCmd)
		required(mintCmd, *mintAddress, *mintAmount)
		var amount common.HexInt
		if err := amount.SetString(*mintAmount); err != nil {
			fmt.Printf("Invalid amount %q\n", *mintAmount)
			os.Exit(1)
		}
		cb := cli.connect(address)
		defer core.FiniCBIPC(cb)
		cli.mint(cb, parseAddress(*mintAddress), &amount)
	case "stats":
		cb := cli.connect(address)
		defer core.FiniCBIPC(cb)
		cli.stats(cb)
	case "monitor":
		parse(monitorCmd)
		cb := cli.connect(address)
		defer core.FiniCBIPC(cb)
		cli.monitor(cb, *monitorConfig, *monitorURL)
	default:
		cli.printUsage()
		os.Exit(1)
	}

	fmt.Printf("Duration : %v\n", time.Since(start))
}
