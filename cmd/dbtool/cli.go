package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/icon-project/contactbook/common/db"
)

const (
	DBTypeManagement = "manage"
	DBTypeContact    = "contact"
	DBTypeSponsored  = "sponsored"
	DBTypeNonce      = "nonce"
	DBTypeBalance    = "balance"
	DBTypeStatistics = "stats"
	DBTypeAll        = "all"

	CmdMint = "mint"
)

type CLI struct {
}

func (cli *CLI) printUsage() {
	fmt.Printf("Usage: %s [db_name](DB to query) [OPTIONS]\n", os.Args[0])
	fmt.Printf("\t db_name     DB Name (%s, %s, %s, %s, %s, %s, %s)\n",
		DBTypeManagement,
		DBTypeContact,
		DBTypeSponsored,
		DBTypeNonce,
		DBTypeBalance,
		DBTypeStatistics,
		DBTypeAll,
	)
	fmt.Printf("Usage: %s %s -path PATH -address ADDRESS -amount AMOUNT\n", os.Args[0], CmdMint)
	fmt.Printf("\t                Credit the medium while the service is stopped\n")
}

func (cli *CLI) validateArgs() {
	if len(os.Args) < 3 {
		cli.printUsage()
		os.Exit(1)
	}
}

func (cli *CLI) Run() {
	cli.validateArgs()

	dbName := os.Args[1]

	queryCmd := flag.NewFlagSet(dbName, flag.ExitOnError)
	queryPath := queryCmd.String("path", "", "path of DB(Required)")
	queryType := queryCmd.String("type", string(db.GoLevelDBBackend),
		"DB backend ("+strings.Join(db.Backends(), ", ")+")")
	queryAddress := queryCmd.String("address", "", "owner address to query")
	queryHelp := queryCmd.Bool("h", false, "print help message")

	mintCmd := flag.NewFlagSet(CmdMint, flag.ExitOnError)
	mintPath := mintCmd.String("path", "", "path of DB(Required)")
	mintType := mintCmd.String("type", string(db.GoLevelDBBackend), "DB backend")
	mintAddress := mintCmd.String("address", "", "address to credit(Required)")
	mintAmount := mintCmd.String("amount", "", "amount in decimal or 0x hex(Required)")
	mintHelp := mintCmd.Bool("h", false, "print help message")

	switch dbName {
	case DBTypeManagement, DBTypeContact, DBTypeSponsored, DBTypeNonce, DBTypeBalance,
		DBTypeStatistics, DBTypeAll:
		err := queryCmd.Parse(os.Args[2:])
		validateInput(queryCmd, err, *queryHelp)
		ContactDB{dbPath: *queryPath, dbType: *queryType}.query(dbName, *queryAddress)
	case CmdMint:
		err := mintCmd.Parse(os.Args[2:])
		validateInput(mintCmd, err, *mintHelp)
		mint(*mintPath, *mintType, *mintAddress, *mintAmount)
	default:
		cli.printUsage()
		os.Exit(1)
	}
}

func validateInput(flagSet *flag.FlagSet, err error, flag bool) {
	if err != nil {
		flagSet.PrintDefaults()
		os.Exit(1)
	}
	if flag {
		flagSet.PrintDefaults()
		os.Exit(0)
	}
}
