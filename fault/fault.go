// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"errors"
)

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type RecordError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyInitialised    = ExistsError("already initialised")
	ErrBalanceOverflow       = ProcessError("balance overflow")
	ErrCorruptValue          = RecordError("stored value cannot be decoded")
	ErrDatabaseVersion       = RecordError("incompatible database version")
	ErrDuplicateStorage      = ExistsError("duplicate storage declaration")
	ErrEmptyStorageName      = InvalidError("storage name is empty")
	ErrHasherNotReversible   = InvalidError("hasher does not embed the original key")
	ErrInsufficientAllowance = ProcessError("insufficient allowance")
	ErrInsufficientFunds     = ProcessError("insufficient funds")
	ErrInvalidAccount        = InvalidError("invalid account")
	ErrInvalidAmount         = InvalidError("invalid amount")
	ErrInvalidCount          = InvalidError("invalid count")
	ErrInvalidCursor         = InvalidError("invalid cursor")
	ErrInvalidDatabaseName   = InvalidError("invalid database name")
	ErrInvalidEntryType      = InvalidError("invalid entry type")
	ErrInvalidHasher         = InvalidError("invalid hasher")
	ErrInvalidKeyLength      = InvalidError("invalid key length")
	ErrInvalidLoggerChannel  = InvalidError("invalid logger channel")
	ErrInvalidModifier       = InvalidError("invalid modifier")
	ErrInvalidStructPointer  = InvalidError("invalid struct pointer")
	ErrModuleMismatch        = InvalidError("storage declared under another module")
	ErrNoTransaction         = ProcessError("no transaction in progress")
	ErrNotInitialised        = NotFoundError("not initialised")
	ErrReadOnly              = ProcessError("database is read only")
	ErrTrailingBytes         = RecordError("trailing bytes after value")
	ErrTransactionInUse      = ProcessError("transaction already in use")
	ErrTruncatedRecord       = RecordError("truncated record")
	ErrUnknownStorage        = NotFoundError("unknown storage")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }
func (e RecordError) Error() string   { return string(e) }

// determine the class of an error, looking through any wrapping
func IsErrExists(e error) bool   { var x ExistsError; return errors.As(e, &x) }
func IsErrInvalid(e error) bool  { var x InvalidError; return errors.As(e, &x) }
func IsErrNotFound(e error) bool { var x NotFoundError; return errors.As(e, &x) }
func IsErrProcess(e error) bool  { var x ProcessError; return errors.As(e, &x) }
func IsErrRecord(e error) bool   { var x RecordError; return errors.As(e, &x) }
