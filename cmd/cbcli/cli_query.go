package main

import (
	"fmt"

	"github.com/icon-project/contactbook/common"
	"github.com/icon-project/contactbook/core"
)

func (cli *CLI) get(cb *core.CBIPC, owner common.Address, alias string) {
	contact, err := cb.SendGet(owner, alias)
	if err != nil {
		fmt.Printf("Failed to get %s. err=%+v\n", alias, err)
		return
	}
	if contact == nil {
		fmt.Printf("No contact %s in the book of %s\n", alias, owner)
		return
	}
	sponsored, err := cb.SendIsSponsored(owner, alias)
	if err != nil {
		fmt.Printf("Failed to query sponsorship of %s. err=%+v\n", alias, err)
		return
	}
	fmt.Printf("%s, Sponsored: %v\n", contact.String(), sponsored)
}

func (cli *CLI) list(cb *core.CBIPC, owner common.Address) {
	contacts, err := cb.SendList(owner)
	if err != nil {
		fmt.Printf("Failed to list contacts. err=%+v\n", err)
		return
	}
	for i := range contacts {
		fmt.Println(contacts[i].String())
	}
	fmt.Printf("%d contacts\n", len(contacts))

	aliases, err := cb.SendListSponsored(owner)
	if err != nil {
		fmt.Printf("Failed to list sponsored aliases. err=%+v\n", err)
		return
	}
	fmt.Printf("Sponsored : %s\n", common.Display(aliases))
}

func (cli *CLI) find(cb *core.CBIPC, owner common.Address, address common.Address) {
	alias, err := cb.SendFindAlias(owner, address)
	if err != nil {
		fmt.Printf("Failed to find alias. err=%+v\n", err)
		return
	}
	if alias == "" {
		fmt.Printf("%s is not in the book of %s\n", address, owner)
		return
	}
	fmt.Printf("%s : %s\n", address, alias)
}

func (cli *CLI) balance(cb *core.CBIPC, address common.Address) {
	balance, err := cb.SendBalance(address)
	if err != nil {
		fmt.Printf("Failed to query balance. err=%+v\n", err)
		return
	}
	fmt.Printf("Balance of %s : %s\n", address, balance.String())
}

func (cli *CLI) stats(cb *core.CBIPC) {
	stats, err := cb.SendStatistics()
	if err != nil {
		fmt.Printf("Failed to query statistics. err=%+v\n", err)
		return
	}
	amount, err := cb.SendSponsorshipAmount()
	if err != nil {
		fmt.Printf("Failed to query sponsorship amount. err=%+v\n", err)
		return
	}
	fmt.Println(stats.String())
	fmt.Printf("Sponsorship amount : %s\n", amount.String())
}
