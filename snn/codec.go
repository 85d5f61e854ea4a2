// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snn

import "fmt"

// Duration returns the number of instants in the spike matrix, which has
// one row per neuron. All rows must have the same length.
// A matrix without rows has duration 0.
func Duration(spikes [][]uint8) (int, error) {
	if len(spikes) == 0 {
		return 0, nil
	}
	dur := len(spikes[0])
	for ni, row := range spikes {
		if len(row) != dur {
			return 0, fmt.Errorf("%w: neuron %d has %d instants, neuron 0 has %d", ErrInputFormat, ni, len(row), dur)
		}
	}
	return dur, nil
}

// Encode converts the spike matrix [neuron][instant] into one SpikeEvent
// per instant, in instant order. Instants where no neuron fires are still
// encoded, so that the first layer observes the full duration.
// The matrix must have width rows of equal length, holding only 0 or 1.
func Encode(spikes [][]uint8, width int) ([]*SpikeEvent, error) {
	if len(spikes) != width {
		return nil, fmt.Errorf("%w: %d input neurons, network expects %d", ErrInputFormat, len(spikes), width)
	}
	dur, err := Duration(spikes)
	if err != nil {
		return nil, err
	}
	evs := make([]*SpikeEvent, dur)
	for t := 0; t < dur; t++ {
		ts := make([]uint8, width)
		for ni := range spikes {
			s := spikes[ni][t]
			if s > 1 {
				return nil, fmt.Errorf("%w: spike must be 0 or 1, got %d for neuron %d at t=%d", ErrInputFormat, s, ni, t)
			}
			ts[ni] = s
		}
		evs[t] = NewSpikeEvent(t, ts)
	}
	return evs, nil
}

// Decode converts events into a spike matrix [neuron][instant] of the given
// width and duration. Instants without an event are all zero.
func Decode(evs []*SpikeEvent, width, dur int) ([][]uint8, error) {
	spikes := make([][]uint8, width)
	for ni := range spikes {
		spikes[ni] = make([]uint8, dur)
	}
	for _, ev := range evs {
		if len(ev.Spikes) != width {
			return nil, fmt.Errorf("%w: output event at t=%d has %d spikes, expected %d", ErrInternal, ev.T, len(ev.Spikes), width)
		}
		if ev.T < 0 || ev.T >= dur {
			return nil, fmt.Errorf("%w: output event at t=%d outside duration %d", ErrInternal, ev.T, dur)
		}
		for ni, s := range ev.Spikes {
			spikes[ni][ev.T] = s
		}
	}
	return spikes, nil
}
