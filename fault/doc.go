// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - error instances
//
// Provides a single instance of errors to allow easy comparison
// without having to resort to partial string matches.  Errors that
// carry extra detail (e.g. the key of a corrupt record) wrap one of
// these instances with fmt.Errorf("%w") so errors.Is still matches.
package fault
