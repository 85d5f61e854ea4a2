// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package snn simulates feed-forward networks of spiking neurons organized
into ordered layers, where every layer also has recurrent (within-layer)
inhibitory connections.

A Network is built once with a Builder and then driven with Process, which
takes a binary spike matrix (one row per input channel, one column per
time instant) and returns the binary spike matrix of the last layer over
the same duration.

Each call to Process runs one goroutine per Layer. Layers are connected by
channels of SpikeEvent values: the first layer receives every instant of
the input, and each layer forwards an event only when at least one of its
neurons fired, so downstream layers never see silent instants. Neurons
decay according to the number of instants elapsed since their own last
update, so skipped instants are handled exactly.

The neuron model is anything that satisfies the Neuron interface -- see the
lif package for the standard leaky integrate-and-fire model.
*/
package snn
