// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snn

import (
	"fmt"
	"strings"
)

// SpikeEvent records which neurons of one stage fired at one instant.
// Spikes has one 0 / 1 entry per neuron of the producing stage.
// Events are read-only once sent on a channel.
type SpikeEvent struct {
	T      int
	Spikes []uint8
}

// NewSpikeEvent returns a new event for instant t.
func NewSpikeEvent(t int, spikes []uint8) *SpikeEvent {
	return &SpikeEvent{T: t, Spikes: spikes}
}

// Any returns true if at least one neuron fired.
func (ev *SpikeEvent) Any() bool {
	for _, s := range ev.Spikes {
		if s != 0 {
			return true
		}
	}
	return false
}

// NFired returns the number of neurons that fired.
func (ev *SpikeEvent) NFired() int {
	n := 0
	for _, s := range ev.Spikes {
		if s != 0 {
			n++
		}
	}
	return n
}

func (ev *SpikeEvent) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "t=%d [", ev.T)
	for i, s := range ev.Spikes {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%d", s)
	}
	b.WriteByte(']')
	return b.String()
}
