// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package balances

import (
	"math"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/statestore/fault"
	"github.com/bitmark-inc/statestore/storage"
	"github.com/bitmark-inc/statestore/types"
)

// GenesisAccount - an initial free balance
type GenesisAccount struct {
	Account AccountID
	Free    uint64
}

// Ledger - serialises state transitions over one engine
type Ledger struct {
	sync.Mutex
	log     *logger.L
	overlay *storage.Overlay
}

// New - a ledger writing through an overlay on base
//
// the logger package must already be initialised
func New(base storage.Engine) (*Ledger, error) {
	log := logger.New("balances")
	if nil == log {
		return nil, fault.ErrInvalidLoggerChannel
	}
	return &Ledger{
		log:     log,
		overlay: storage.NewOverlay(base),
	}, nil
}

// run f as one transition: commit on success, abort on any error
func (l *Ledger) transition(name string, f func(e storage.Engine) error) error {
	l.Lock()
	defer l.Unlock()

	if err := l.overlay.Begin(); nil != err {
		return err
	}
	if err := f(l.overlay); nil != err {
		l.overlay.Abort()
		l.log.Warnf("%s: aborted: %s", name, err)
		return err
	}
	if err := l.overlay.Commit(); nil != err {
		l.log.Errorf("%s: commit: %s", name, err)
		return err
	}
	l.log.Debugf("%s: committed", name)
	return nil
}

// add to a balance, refusing wrap around
func credit(e storage.Engine, to AccountID, amount uint64) error {
	return Account.TryMutate(e, to, func(a *AccountData) error {
		if a.Free > math.MaxUint64-amount {
			return fault.ErrBalanceOverflow
		}
		a.Free += amount
		return nil
	})
}

// subtract from a balance, refusing to go negative
func debit(e storage.Engine, from AccountID, amount uint64) error {
	return Account.TryMutate(e, from, func(a *AccountData) error {
		if a.Free < amount {
			return fault.ErrInsufficientFunds
		}
		a.Free -= amount
		return nil
	})
}

func bumpNonce(e storage.Engine, id AccountID) error {
	return Nonce.Mutate(e, id, func(n *uint32) {
		*n += 1
	})
}

// Genesis - set the initial balances of an empty ledger
func (l *Ledger) Genesis(accounts []GenesisAccount) error {
	return l.transition("genesis", func(e storage.Engine) error {
		exists, err := TotalIssuance.Exists(e)
		if nil != err {
			return err
		}
		if exists {
			return fault.ErrAlreadyInitialised
		}

		total := uint64(0)
		for _, a := range accounts {
			if total > math.MaxUint64-a.Free {
				return fault.ErrBalanceOverflow
			}
			total += a.Free
			if err := credit(e, a.Account, a.Free); nil != err {
				return err
			}
		}
		l.log.Infof("genesis: %d accounts  issuance: %d", len(accounts), total)
		return TotalIssuance.Put(e, total)
	})
}

// Mint - create new funds in an account
func (l *Ledger) Mint(to AccountID, amount uint64) error {
	if 0 == amount {
		return fault.ErrInvalidAmount
	}
	return l.transition("mint", func(e storage.Engine) error {
		err := TotalIssuance.TryMutate(e, func(total *uint64) error {
			if *total > math.MaxUint64-amount {
				return fault.ErrBalanceOverflow
			}
			*total += amount
			return nil
		})
		if nil != err {
			return err
		}
		return credit(e, to, amount)
	})
}

// Transfer - move free funds between accounts
func (l *Ledger) Transfer(from AccountID, to AccountID, amount uint64) error {
	if 0 == amount {
		return fault.ErrInvalidAmount
	}
	return l.transition("transfer", func(e storage.Engine) error {
		if err := debit(e, from, amount); nil != err {
			return err
		}
		if err := credit(e, to, amount); nil != err {
			return err
		}
		return bumpNonce(e, from)
	})
}

// Approve - allow spender to transfer up to amount from owner
//
// a zero amount revokes the allowance
func (l *Ledger) Approve(owner AccountID, spender AccountID, amount uint64) error {
	return l.transition("approve", func(e storage.Engine) error {
		allowance := types.None[uint64]()
		if 0 != amount {
			allowance = types.Some(amount)
		}
		if err := Allowance.Set(e, owner, spender, allowance); nil != err {
			return err
		}
		return bumpNonce(e, owner)
	})
}

// TransferFrom - spender moves funds out of owner within its allowance
func (l *Ledger) TransferFrom(spender AccountID, owner AccountID, to AccountID, amount uint64) error {
	if 0 == amount {
		return fault.ErrInvalidAmount
	}
	return l.transition("transfer from", func(e storage.Engine) error {
		err := Allowance.TryMutate(e, owner, spender, func(q *types.Option[uint64]) error {
			remaining, ok := q.Unwrap()
			if !ok || remaining < amount {
				return fault.ErrInsufficientAllowance
			}
			remaining -= amount
			if 0 == remaining {
				*q = types.None[uint64]()
			} else {
				*q = types.Some(remaining)
			}
			return nil
		})
		if nil != err {
			return err
		}
		if err := debit(e, owner, amount); nil != err {
			return err
		}
		if err := credit(e, to, amount); nil != err {
			return err
		}
		return bumpNonce(e, spender)
	})
}

// Balance - the current balances of an account, zero if unknown
func (l *Ledger) Balance(id AccountID) (AccountData, error) {
	l.Lock()
	defer l.Unlock()

	return Account.Get(l.overlay, id)
}

// Issuance - total funds in existence
func (l *Ledger) Issuance() (uint64, error) {
	l.Lock()
	defer l.Unlock()

	return TotalIssuance.Get(l.overlay)
}

// AllowanceOf - remaining allowance, None if never approved or used up
func (l *Ledger) AllowanceOf(owner AccountID, spender AccountID) (types.Option[uint64], error) {
	l.Lock()
	defer l.Unlock()

	return Allowance.Get(l.overlay, owner, spender)
}

// NonceOf - count of transitions signed by an account
func (l *Ledger) NonceOf(id AccountID) (uint32, error) {
	l.Lock()
	defer l.Unlock()

	return Nonce.Get(l.overlay, id)
}

// Accounts - call f for every stored account until f fails
//
// f must not call back into the ledger
func (l *Ledger) Accounts(f func(id AccountID, data AccountData) error) error {
	l.Lock()
	defer l.Unlock()

	iter := Account.Iter(l.overlay)
	defer iter.Release()

	for iter.Next() {
		if err := f(iter.Key(), iter.Value()); nil != err {
			return err
		}
	}
	return iter.Err()
}
