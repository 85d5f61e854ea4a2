// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package snn is the overall repository for spiking neural network code
implemented in the Go language (golang).

This top-level of the repository has no functional code -- everything is organized
into the following sub-repositories:

* snn: the core implementation: the Neuron interface, layers with feedforward
and recurrent inhibitory weights, and the Network that runs one goroutine per
layer over a spike matrix. Networks are configured with a Builder, and their
weights can be saved and loaded as JSON.

* lif: the leaky integrate-and-fire neuron model.

* snnio: spike train files, JSON network configs, and spike raster tables.

* examples: these actually compile into runnable programs. examples/demo runs
a small two-layer network over a fixed input pattern, or over any network
config and spike file given on the command line.
*/
package snn
