// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snn

import (
	"fmt"

	"github.com/emer/emergent/v2/timer"
)

// Layer is one stage of the network: an ordered set of neurons with
// feedforward weights from the previous stage and recurrent (intra-layer)
// weights among its own neurons.
type Layer struct {

	// name of the layer, unique within the network
	Name string

	// index of this layer in the network
	Index int

	// neurons of the layer, in order
	Neurons []Neuron

	// feedforward weights: one row per neuron, one column per neuron of the previous stage (all >= 0)
	Wts [][]float32

	// recurrent weights: Wts[i][j] is the weight from neuron j to neuron i (all <= 0, diagonal ignored)
	IntraWts [][]float32

	// spikes emitted at the last processed instant, read by the next instant's recurrent sums
	PrevSpikes []uint8 `view:"-"`

	// number of events received during the last run
	NEvents int `inactive:"+"`

	// number of events forwarded during the last run
	NSent int `inactive:"+"`

	// total number of neuron spikes during the last run
	NFired int `inactive:"+"`

	// time spent updating neurons, accumulated across runs until TimerReset
	Timer timer.Time `view:"-"`
}

// NNeurons returns the number of neurons in the layer (its output width).
func (ly *Layer) NNeurons() int { return len(ly.Neurons) }

// InputWidth returns the number of inputs each neuron receives from the previous stage.
func (ly *Layer) InputWidth() int {
	if len(ly.Wts) == 0 {
		return 0
	}
	return len(ly.Wts[0])
}

// Init resets the dynamic state so that the layer can be reused for
// an independent run: previous spikes, neuron state and run statistics.
func (ly *Layer) Init() {
	nn := len(ly.Neurons)
	if len(ly.PrevSpikes) != nn {
		ly.PrevSpikes = make([]uint8, nn)
	} else {
		for i := range ly.PrevSpikes {
			ly.PrevSpikes[i] = 0
		}
	}
	for _, nrn := range ly.Neurons {
		nrn.Reset()
	}
	ly.NEvents = 0
	ly.NSent = 0
	ly.NFired = 0
}

// ExtSum returns the weighted sum of the input spikes for neuron ni.
// Only non-zero spikes contribute.
func (ly *Layer) ExtSum(ni int, spikes []uint8) float32 {
	wts := ly.Wts[ni]
	sum := float32(0)
	for si, s := range spikes {
		if s != 0 {
			sum += wts[si]
		}
	}
	return sum
}

// IntraSum returns the weighted sum of the previous-instant spikes of the
// other neurons in the layer, for neuron ni. The neuron's own spike is
// always excluded, whatever the diagonal weight is.
func (ly *Layer) IntraSum(ni int) float32 {
	wts := ly.IntraWts[ni]
	sum := float32(0)
	for si, s := range ly.PrevSpikes {
		if si == ni || s == 0 {
			continue
		}
		sum += wts[si]
	}
	return sum
}

// Step processes one inbound event: every neuron is updated for instant
// ev.T and the resulting spikes become PrevSpikes.
// The returned slice is newly allocated and can be sent downstream.
func (ly *Layer) Step(ev *SpikeEvent) ([]uint8, error) {
	if len(ev.Spikes) != ly.InputWidth() {
		return nil, fmt.Errorf("%w: layer %q received %d spikes at t=%d, expected %d", ErrInternal, ly.Name, len(ev.Spikes), ev.T, ly.InputWidth())
	}
	out := make([]uint8, len(ly.Neurons))
	for ni, nrn := range ly.Neurons {
		ext := ly.ExtSum(ni, ev.Spikes)
		intra := ly.IntraSum(ni)
		out[ni] = nrn.ComputeVm(ev.T, ext, intra)
	}
	copy(ly.PrevSpikes, out)
	return out, nil
}

// Run is the layer worker: it initializes the layer, then processes every
// event received on in, forwarding an event on out only for instants at
// which at least one neuron fired. When in is closed, out is closed, which
// terminates the next stage in turn.
// If an event cannot be processed, the remaining input is drained without
// processing so that upstream stages are never blocked, and the first
// error is returned.
func (ly *Layer) Run(in <-chan *SpikeEvent, out chan<- *SpikeEvent) error {
	defer close(out)
	ly.Init()
	var err error
	for ev := range in {
		if err != nil {
			continue
		}
		ly.NEvents++
		ly.Timer.Start()
		spikes, serr := ly.Step(ev)
		ly.Timer.Stop()
		if serr != nil {
			err = serr
			continue
		}
		oev := NewSpikeEvent(ev.T, spikes)
		nf := oev.NFired()
		if nf == 0 {
			continue
		}
		ly.NFired += nf
		ly.NSent++
		out <- oev
	}
	return err
}

// Stats returns a one-line summary of the last run.
func (ly *Layer) Stats() string {
	return fmt.Sprintf("%14s:\t Neurons: %d\t Events: %d\t Sent: %d\t Spikes: %d", ly.Name, ly.NNeurons(), ly.NEvents, ly.NSent, ly.NFired)
}
