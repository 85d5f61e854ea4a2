// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snn

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/goki/mat32"
)

// Builder configures a Network one layer at a time and validates every
// layer against the previous one. Methods can be chained; the first
// configuration error is kept and returned by Build, and later calls are
// ignored once an error has been recorded.
//
//	net, err := snn.NewBuilder(2).
//		AddLayer(neurons, wts, intraWts).
//		Build()
type Builder struct {
	name     string
	inputDim int
	layers   []*Layer
	owned    map[Neuron]int // layer index of every comparable neuron added so far
	err      error
}

// NewBuilder returns a builder for a network with inputDim input channels.
func NewBuilder(inputDim int) *Builder {
	bd := &Builder{name: "SNN", inputDim: inputDim, owned: make(map[Neuron]int)}
	if inputDim <= 0 {
		bd.err = fmt.Errorf("%w: input dimension must be > 0, got %d", ErrConfig, inputDim)
	}
	return bd
}

// SetName sets the name of the network to build.
func (bd *Builder) SetName(name string) *Builder {
	bd.name = name
	return bd
}

// Err returns the first configuration error recorded so far, if any.
func (bd *Builder) Err() error { return bd.err }

// NLayers returns the number of layers added so far.
func (bd *Builder) NLayers() int { return len(bd.layers) }

// OutputDim returns the width of the last layer added so far,
// or the input dimension if there are no layers yet.
func (bd *Builder) OutputDim() int {
	if len(bd.layers) == 0 {
		return bd.inputDim
	}
	return bd.layers[len(bd.layers)-1].NNeurons()
}

// AddLayer adds a layer with the given neurons.
//   - wts has one row per neuron, holding the (>= 0) weights of the links
//     from each neuron of the previous layer (or network input).
//   - intraWts has one row per neuron, holding the (<= 0) weights of the
//     links from each sibling: intraWts[x][y] is the weight from neuron y
//     to neuron x. The diagonal is ignored and is typically 0.
//
// Each neuron must be a distinct instance, not used anywhere else in this
// builder nor in another network, since neurons carry the state of the
// layer position they fill. Neurons with a Validate() error method are
// validated. The weights are copied.
func (bd *Builder) AddLayer(neurons []Neuron, wts, intraWts [][]float32) *Builder {
	if bd.err != nil {
		return bd
	}
	li := len(bd.layers)
	if err := bd.checkNeurons(li, neurons); err != nil {
		bd.err = err
		return bd
	}
	if err := CheckWts(li, len(neurons), bd.OutputDim(), wts); err != nil {
		bd.err = err
		return bd
	}
	if err := CheckIntraWts(li, len(neurons), intraWts); err != nil {
		bd.err = err
		return bd
	}
	ly := &Layer{
		Name:     fmt.Sprintf("Layer%d", li),
		Index:    li,
		Neurons:  append([]Neuron(nil), neurons...),
		Wts:      CopyWts(wts),
		IntraWts: CopyWts(intraWts),
	}
	ly.PrevSpikes = make([]uint8, len(neurons))
	for _, nrn := range neurons {
		if reflect.TypeOf(nrn).Comparable() {
			bd.owned[nrn] = li
		}
	}
	bd.layers = append(bd.layers, ly)
	return bd
}

// AddLayerSame adds a layer of n neurons that all start with the same
// parameters, each one created by calling newNeuron.
func (bd *Builder) AddLayerSame(newNeuron func() Neuron, n int, wts, intraWts [][]float32) *Builder {
	if bd.err != nil {
		return bd
	}
	if n <= 0 {
		bd.err = fmt.Errorf("%w: layer %d must have at least one neuron", ErrConfig, len(bd.layers))
		return bd
	}
	neurons := make([]Neuron, n)
	for i := range neurons {
		neurons[i] = newNeuron()
	}
	return bd.AddLayer(neurons, wts, intraWts)
}

// SetLayerName renames the last added layer.
func (bd *Builder) SetLayerName(name string) *Builder {
	if bd.err != nil || len(bd.layers) == 0 {
		return bd
	}
	for _, ly := range bd.layers[:len(bd.layers)-1] {
		if ly.Name == name {
			bd.err = fmt.Errorf("%w: duplicate layer name %q", ErrConfig, name)
			return bd
		}
	}
	bd.layers[len(bd.layers)-1].Name = name
	return bd
}

// Build returns the configured network, or the first configuration error.
func (bd *Builder) Build() (*Network, error) {
	if bd.err != nil {
		return nil, bd.err
	}
	if len(bd.layers) == 0 {
		return nil, fmt.Errorf("%w: network must have at least one layer", ErrConfig)
	}
	nt := &Network{Name: bd.name, Layers: bd.layers}
	nt.Params.Defaults()
	bd.layers = nil
	bd.err = fmt.Errorf("%w: builder already used", ErrConfig)
	return nt, nil
}

// validator is implemented by neurons whose parameters can be checked,
// such as lif.Neuron.
type validator interface {
	Validate() error
}

// checkNeurons rejects nil neurons, neurons with invalid parameters, and
// neurons already added at another position: each neuron holds its own
// state and must belong to exactly one layer position.
func (bd *Builder) checkNeurons(li int, neurons []Neuron) error {
	if len(neurons) == 0 {
		return fmt.Errorf("%w: layer %d must have at least one neuron", ErrConfig, li)
	}
	seen := make(map[Neuron]int, len(neurons))
	for ni, nrn := range neurons {
		if nrn == nil {
			return fmt.Errorf("%w: layer %d neuron %d is nil", ErrConfig, li, ni)
		}
		if vl, ok := nrn.(validator); ok {
			if err := vl.Validate(); err != nil {
				if !errors.Is(err, ErrConfig) {
					err = fmt.Errorf("%w: %w", ErrConfig, err)
				}
				return fmt.Errorf("layer %d neuron %d: %w", li, ni, err)
			}
		}
		if !reflect.TypeOf(nrn).Comparable() {
			continue
		}
		if pi, has := seen[nrn]; has {
			return fmt.Errorf("%w: layer %d neuron %d is the same neuron as neuron %d", ErrConfig, li, ni, pi)
		}
		if pl, has := bd.owned[nrn]; has {
			return fmt.Errorf("%w: layer %d neuron %d already belongs to layer %d", ErrConfig, li, ni, pl)
		}
		seen[nrn] = ni
	}
	return nil
}

// CheckWts validates the feedforward weights of layer li, which has nn
// neurons receiving from a previous stage of width nin: one row per neuron,
// nin columns per row, no negative or NaN values.
func CheckWts(li, nn, nin int, wts [][]float32) error {
	if len(wts) != nn {
		return fmt.Errorf("%w: layer %d has %d neurons but %d weight rows", ErrConfig, li, nn, len(wts))
	}
	for ri, row := range wts {
		if len(row) != nin {
			return fmt.Errorf("%w: layer %d weight row %d has %d columns, previous layer has %d neurons", ErrConfig, li, ri, len(row), nin)
		}
		for ci, w := range row {
			if w < 0 || mat32.IsNaN(w) {
				return fmt.Errorf("%w: layer %d weight [%d][%d] = %g, weights must be >= 0", ErrConfig, li, ri, ci, w)
			}
		}
	}
	return nil
}

// CheckIntraWts validates the recurrent weights of layer li with nn
// neurons: a square nn x nn matrix with no positive or NaN values.
func CheckIntraWts(li, nn int, wts [][]float32) error {
	if len(wts) != nn {
		return fmt.Errorf("%w: layer %d has %d neurons but %d intra weight rows", ErrConfig, li, nn, len(wts))
	}
	for ri, row := range wts {
		if len(row) != nn {
			return fmt.Errorf("%w: layer %d intra weight row %d has %d columns, layer has %d neurons", ErrConfig, li, ri, len(row), nn)
		}
		for ci, w := range row {
			if w > 0 || mat32.IsNaN(w) {
				return fmt.Errorf("%w: layer %d intra weight [%d][%d] = %g, intra weights must be <= 0", ErrConfig, li, ri, ci, w)
			}
		}
	}
	return nil
}

// CopyWts returns a deep copy of a weight matrix.
func CopyWts(wts [][]float32) [][]float32 {
	cp := make([][]float32, len(wts))
	for i, row := range wts {
		cp[i] = append([]float32(nil), row...)
	}
	return cp
}
