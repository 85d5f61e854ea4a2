// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package lif provides the leaky integrate-and-fire (LIF) neuron model
used as the standard neuron of the snn package.

The membrane potential Vm decays exponentially toward the resting
potential with time constant Tau, and integrates the weighted input sums
linearly. When Vm exceeds the threshold the neuron fires and Vm is set to
the reset potential.

Updates are event-driven: a neuron is only updated at the instants at which
its layer receives input, and the decay is computed over the number of
instants elapsed since the last update, so skipping silent instants gives
exactly the same potential as stepping through them with no input.
*/
package lif

import (
	"fmt"

	"github.com/emer/snn/snn"
	"github.com/goki/mat32"
)

// Params are the leaky integrate-and-fire parameters.
type Params struct {

	// threshold potential -- the neuron fires when Vm is strictly greater than this value
	Thr float32 `def:"0.3"`

	// resting potential that Vm decays toward, and the initial Vm
	Rest float32 `def:"0.05"`

	// reset potential: Vm is set to this value right after firing
	VmR float32 `def:"0.1"`

	// membrane time constant, in instants -- larger values decay more slowly
	Tau float32 `def:"1" min:"0"`

	// rate = 1 / tau
	Dt float32 `view:"-" json:"-" xml:"-"`
}

func (lp *Params) Update() {
	lp.Dt = 1 / lp.Tau
}

func (lp *Params) Defaults() {
	lp.Thr = 0.3
	lp.Rest = 0.05
	lp.VmR = 0.1
	lp.Tau = 1
	lp.Update()
}

// Validate returns an error if the parameters cannot produce a decaying potential.
func (lp *Params) Validate() error {
	if !(lp.Tau > 0) {
		return fmt.Errorf("%w: lif Tau must be > 0, got %g", snn.ErrConfig, lp.Tau)
	}
	if mat32.IsNaN(lp.Thr) || mat32.IsNaN(lp.Rest) || mat32.IsNaN(lp.VmR) {
		return fmt.Errorf("%w: lif parameters must not be NaN", snn.ErrConfig)
	}
	return nil
}

// Decay returns the potential vm after dt instants without input.
// With dt == 0 the potential is unchanged.
func (lp *Params) Decay(vm float32, dt int) float32 {
	if dt <= 0 {
		return vm
	}
	return lp.Rest + (vm-lp.Rest)*mat32.Exp(-float32(dt)*lp.Dt)
}

// Neuron is a leaky integrate-and-fire neuron.
type Neuron struct {
	Params

	// membrane potential after the last update
	Vm float32 `inactive:"+"`

	// instant of the last update
	LastT int `inactive:"+"`
}

var _ snn.Neuron = (*Neuron)(nil)

// New returns a neuron with the given threshold, resting and reset
// potentials and time constant, in its initial state.
func New(thr, rest, reset, tau float32) *Neuron {
	return NewFromParams(Params{Thr: thr, Rest: rest, VmR: reset, Tau: tau})
}

// NewFromParams returns a neuron with a copy of the given parameters,
// in its initial state.
func NewFromParams(pars Params) *Neuron {
	nrn := &Neuron{Params: pars}
	nrn.Update()
	nrn.Reset()
	return nrn
}

// Reset restores the initial state: Vm at rest, last update at instant 0.
func (nrn *Neuron) Reset() {
	nrn.Vm = nrn.Rest
	nrn.LastT = 0
}

// ComputeVm decays Vm over the instants elapsed since the last update,
// adds the input sums, and fires if the result exceeds the threshold.
func (nrn *Neuron) ComputeVm(t int, extSum, intraSum float32) uint8 {
	vm := nrn.Decay(nrn.Vm, t-nrn.LastT) + extSum + intraSum
	nrn.LastT = t
	if vm > nrn.Thr {
		nrn.Vm = nrn.VmR
		return 1
	}
	nrn.Vm = vm
	return 0
}

// Clone returns a copy of the neuron, including its current state.
func (nrn *Neuron) Clone() *Neuron {
	cp := *nrn
	return &cp
}

func (nrn *Neuron) String() string {
	return fmt.Sprintf("LIF{Thr: %g, Rest: %g, VmR: %g, Tau: %g, Vm: %g, LastT: %d}", nrn.Thr, nrn.Rest, nrn.VmR, nrn.Tau, nrn.Vm, nrn.LastT)
}

// Neurons returns n neurons with the same parameters, typed for
// snn.Builder.AddLayer.
func Neurons(pars Params, n int) []snn.Neuron {
	nrns := make([]snn.Neuron, n)
	for i := range nrns {
		nrns[i] = NewFromParams(pars)
	}
	return nrns
}
