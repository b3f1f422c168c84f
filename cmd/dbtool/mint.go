package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/icon-project/contactbook/common"
	"github.com/icon-project/contactbook/core"
)

func mint(dbPath string, dbType string, address string, amount string) {
	if dbPath == "" || address == "" || amount == "" {
		fmt.Println("Enter path, address and amount")
		os.Exit(1)
	}
	to := common.NewAddressFromString(address)
	if to == nil {
		fmt.Printf("Invalid address %q\n", address)
		os.Exit(1)
	}
	var value common.HexInt
	if err := value.SetString(amount); err != nil {
		fmt.Printf("Invalid amount %q\n", amount)
		os.Exit(1)
	}

	dir, name := filepath.Split(filepath.Clean(dbPath))
	ctx, err := core.NewContext(dir, dbType, name, nil, nil)
	if err != nil {
		fmt.Printf("Failed to open %s. err=%+v\n", dbPath, err)
		os.Exit(1)
	}
	defer core.CloseContactDB(ctx.DB)

	book := core.NewContactBook(ctx)
	if err = book.Mint(*to, &value); err != nil {
		fmt.Printf("Failed to mint. err=%+v\n", err)
		return
	}
	balance, _ := book.Balance(*to)
	fmt.Printf("Balance of %s : %s\n", to, balance.String())
}
