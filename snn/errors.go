// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snn

import "errors"

var (
	// ErrConfig is returned when a network description is malformed:
	// dimension mismatches between neurons and weights, wrong-signed
	// weights, or a network without layers.
	ErrConfig = errors.New("snn: invalid network configuration")

	// ErrInputFormat is returned by Process when the input spike matrix
	// has rows of different lengths, a value other than 0 or 1, or a row
	// count that differs from the network input width.
	// The network is unaffected and can be used for further calls.
	ErrInputFormat = errors.New("snn: invalid input spikes")

	// ErrInternal reports a violated engine invariant, such as a layer
	// receiving an event whose width disagrees with its weights.
	// It cannot happen with a network produced by Builder.
	ErrInternal = errors.New("snn: internal invariant violation")
)
