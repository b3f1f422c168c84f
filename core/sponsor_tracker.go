package core

import (
	"github.com/icon-project/contactbook/common"
)

type sponsorTracker struct {
	ctx *Context
}

func (t *sponsorTracker) isSponsored(owner common.Address, alias string) (bool, error) {
	set, err := t.ctx.DB.readSponsored(owner)
	if err != nil {
		return false, err
	}
	return set.contains(alias), nil
}

// markSponsored adds alias to the owner's set and counts amount in the
// statistics. Marking a member again changes nothing and returns false.
func (t *sponsorTracker) markSponsored(owner common.Address, alias string, amount *common.HexInt) (bool, error) {
	set, err := t.ctx.DB.readSponsored(owner)
	if err != nil {
		return false, err
	}
	if !set.add(alias) {
		return false, nil
	}

	err = t.ctx.DB.commit(nil, set, func(stats *Statistics) error {
		if err := stats.Increase(StatSponsored, uint64(1)); err != nil {
			return err
		}
		return stats.Increase(StatSponsoredAmount, *amount)
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

func (t *sponsorTracker) list(owner common.Address) ([]string, error) {
	set, err := t.ctx.DB.readSponsored(owner)
	if err != nil {
		return nil, err
	}
	return set.list(), nil
}
