package main

import (
	"fmt"

	"github.com/icon-project/contactbook/common"
	"github.com/icon-project/contactbook/core"
)

func (cli *CLI) keygen(file string) {
	kp := common.GenerateKeyPair()
	if err := kp.Save(file); err != nil {
		fmt.Printf("Failed to save key to %s. err=%+v\n", file, err)
		return
	}
	fmt.Printf("Address : %s\n", kp.Address())
}

func (cli *CLI) version(cb *core.CBIPC) {
	resp, err := cb.SendVersion()
	if err != nil {
		fmt.Printf("Failed to get VERSION response. err=%+v\n", err)
		return
	}
	fmt.Printf("VERSION response : %s\n", common.Display(resp))
}

func (cli *CLI) init(cb *core.CBIPC, medium common.Address) {
	if err := cb.SendInit(medium); err != nil {
		fmt.Printf("Failed to initialize. err=%+v\n", err)
		return
	}
	fmt.Printf("Initialized with medium %s\n", medium)
}

func (cli *CLI) mutate(cb *core.CBIPC, cmd string, kp *common.KeyPair, alias string, address common.Address) {
	var ok bool
	var err error

	switch cmd {
	case "add":
		ok, err = cb.SendAdd(kp, alias, address)
	case "edit":
		ok, err = cb.SendEdit(kp, alias, address)
	case "delete":
		ok, err = cb.SendDelete(kp, alias)
	case "sponsor":
		ok, err = cb.SendSponsor(kp, alias)
	}
	if err != nil {
		fmt.Printf("Failed to %s %s. err=%+v\n", cmd, alias, err)
		return
	}
	fmt.Printf("%s %s of %s : %v\n", cmd, alias, kp.Address(), ok)
}

func (cli *CLI) mint(cb *core.CBIPC, to common.Address, amount *common.HexInt) {
	if err := cb.SendMint(to, amount); err != nil {
		fmt.Printf("Failed to mint. err=%+v\n", err)
		return
	}
	cli.balance(cb, to)
}
