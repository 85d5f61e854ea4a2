// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snn

// Neuron is the interface for all spiking neuron models.
// A Neuron is exclusively owned by its Layer and only updated from the
// Layer's own goroutine.
type Neuron interface {
	// ComputeVm updates the membrane potential for instant t and returns 1
	// if the neuron fires, 0 otherwise. It is only called for instants at
	// which the owning layer receives input, so the elapsed time since the
	// previous call can span any number of instants and the decay must be
	// computed from that gap, not assumed to be one step.
	//   - extSum: weighted sum of the input spikes from the previous stage.
	//   - intraSum: weighted sum of the spikes emitted by the other neurons
	//     of the same layer at the previous processed instant (<= 0).
	ComputeVm(t int, extSum, intraSum float32) uint8

	// Reset restores the state the neuron had when it was constructed.
	Reset()
}
