// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snnio

import (
	"bufio"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/emer/snn/lif"
	"github.com/emer/snn/snn"
)

// NetConfig is the JSON description of a network: its input width and
// each layer's neurons and weights, in order from input to output.
type NetConfig struct {

	// name of the network
	Name string

	// number of network inputs
	InputDim int

	// buffer size of the channels between layers -- 0 uses the default
	ChanBuf int `json:",omitempty"`

	// layers, from input to output
	Layers []LayerConfig
}

// LayerConfig describes one layer. The neurons are either listed one by one
// in Neurons, or all share the Same parameters with N neurons.
type LayerConfig struct {

	// name of the layer -- defaults to LayerN
	Name string `json:",omitempty"`

	// neuron model of every neuron in the layer
	Model NeuronModels

	// parameters of each neuron, in order
	Neurons []lif.Params `json:",omitempty"`

	// parameters shared by all N neurons, used when Neurons is empty
	Same *lif.Params `json:",omitempty"`

	// number of neurons when using Same
	N int `json:",omitempty"`

	// feedforward weights: one row per neuron, one column per input
	Wts [][]float32

	// recurrent weights: square, one row and one column per neuron
	IntraWts [][]float32
}

// NewNeurons returns the neurons of the layer, in their initial state.
func (lc *LayerConfig) NewNeurons() ([]snn.Neuron, error) {
	if lc.Model != LIF {
		return nil, fmt.Errorf("%w: unknown neuron model %v", snn.ErrConfig, lc.Model)
	}
	pars := lc.Neurons
	if len(pars) == 0 {
		if lc.Same == nil || lc.N <= 0 {
			return nil, fmt.Errorf("%w: layer %q needs Neurons, or Same with N > 0", snn.ErrConfig, lc.Name)
		}
		pars = make([]lif.Params, lc.N)
		for i := range pars {
			pars[i] = *lc.Same
		}
	}
	nrns := make([]snn.Neuron, len(pars))
	for i := range pars {
		if err := pars[i].Validate(); err != nil {
			return nil, fmt.Errorf("layer %q neuron %d: %w", lc.Name, i, err)
		}
		nrns[i] = lif.NewFromParams(pars[i])
	}
	return nrns, nil
}

// Build returns the network described by the config.
func (nc *NetConfig) Build() (*snn.Network, error) {
	bd := snn.NewBuilder(nc.InputDim)
	if nc.Name != "" {
		bd.SetName(nc.Name)
	}
	for i := range nc.Layers {
		lc := &nc.Layers[i]
		nrns, err := lc.NewNeurons()
		if err != nil {
			return nil, err
		}
		bd.AddLayer(nrns, lc.Wts, lc.IntraWts)
		if lc.Name != "" {
			bd.SetLayerName(lc.Name)
		}
	}
	net, err := bd.Build()
	if err != nil {
		return nil, err
	}
	if nc.ChanBuf > 0 {
		net.Params.ChanBuf = nc.ChanBuf
	}
	return net, nil
}

// ReadConfig reads a JSON network config.
func ReadConfig(r io.Reader) (*NetConfig, error) {
	nc := &NetConfig{}
	if err := json.NewDecoder(r).Decode(nc); err != nil {
		return nil, fmt.Errorf("%w: %v", snn.ErrConfig, err)
	}
	return nc, nil
}

// WriteConfig writes the config as indented JSON.
func (nc *NetConfig) WriteConfig(w io.Writer) error {
	b, err := json.MarshalIndent(nc, "", "\t")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}

// OpenConfig reads a JSON network config from the given file.
// If filename has .gz extension, then file is gzip uncompressed.
func OpenConfig(filename string) (*NetConfig, error) {
	fp, err := os.Open(filename)
	if err != nil {
		log.Println(err)
		return nil, err
	}
	defer fp.Close()
	var r io.Reader = bufio.NewReader(fp)
	if filepath.Ext(filename) == ".gz" {
		gzr, err := gzip.NewReader(fp)
		if err != nil {
			log.Println(err)
			return nil, err
		}
		defer gzr.Close()
		r = gzr
	}
	nc, err := ReadConfig(r)
	if err != nil {
		log.Println(err)
	}
	return nc, err
}

// SaveConfig writes the config to the given file.
// If filename has .gz extension, then file is gzip compressed.
func (nc *NetConfig) SaveConfig(filename string) error {
	return createWith(filename, nc.WriteConfig)
}
