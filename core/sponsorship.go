package core

import (
	"log"

	"github.com/icon-project/contactbook/common"
	"github.com/pkg/errors"
)

// SponsorshipAmount is paid once per sponsored alias, in the smallest unit
// of the medium.
const SponsorshipAmount int64 = 150_000_000

func SponsorshipAmountHexInt() *common.HexInt {
	return common.NewHexInt(SponsorshipAmount)
}

type sponsorship struct {
	ctx     *Context
	store   *contactStore
	tracker *sponsorTracker
}

// sponsor pays SponsorshipAmount from payer to the address of alias and
// then marks alias sponsored. Nothing is marked unless the transfer
// succeeded, and an alias is never paid twice.
func (sp *sponsorship) sponsor(payer common.Address, alias string) (bool, error) {
	if err := validateAlias(alias); err != nil {
		return false, err
	}
	info := sp.ctx.DB.getInfo()
	if !info.Initialized {
		return false, ErrNotInitialized
	}

	contact, err := sp.store.get(payer, alias)
	if err != nil {
		return false, err
	}
	if contact == nil {
		return false, nil
	}

	sponsored, err := sp.tracker.isSponsored(payer, alias)
	if err != nil {
		return false, err
	}
	if sponsored {
		return false, errors.Wrapf(ErrAlreadySponsored, "alias=%s", alias)
	}

	amount := SponsorshipAmountHexInt()
	if err = sp.ctx.Transfer.Transfer(info.Medium, payer, contact.Address, amount); err != nil {
		return false, errors.Wrapf(ErrTransferFailed, "alias=%s to=%s: %v", alias, contact.Address, err)
	}

	if _, err = sp.tracker.markSponsored(payer, alias, amount); err != nil {
		log.Printf("Transferred %s from %s to %s but failed to mark alias %s. err=%+v",
			amount.String(), payer, contact.Address, alias, err)
		return false, err
	}
	return true, nil
}
