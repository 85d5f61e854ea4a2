// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snnio

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/emer/snn/lif"
	"github.com/emer/snn/snn"
)

const threeNeuronConfig = `{
	"Name": "Three",
	"InputDim": 2,
	"ChanBuf": 4,
	"Layers": [
		{
			"Name": "Out",
			"Model": "LIF",
			"Same": {"Thr": 0.3, "Rest": 0.05, "VmR": 0.1, "Tau": 1},
			"N": 3,
			"Wts": [[0.1, 0.2], [0.3, 0.4], [0.5, 0.6]],
			"IntraWts": [[0, -0.1, -0.15], [-0.05, 0, -0.1], [-0.15, -0.1, 0]]
		}
	]
}`

func TestConfigBuild(t *testing.T) {
	nc, err := ReadConfig(strings.NewReader(threeNeuronConfig))
	if err != nil {
		t.Fatal(err)
	}
	if nc.Layers[0].Model != LIF {
		t.Errorf("model: %v", nc.Layers[0].Model)
	}
	net, err := nc.Build()
	if err != nil {
		t.Fatal(err)
	}
	if net.Name != "Three" || net.Params.ChanBuf != 4 || net.LayerByName("Out") == nil {
		t.Errorf("network: %v, %v, %v", net.Name, net.Params.ChanBuf, net.Layer(0).Name)
	}
	out, err := net.Process([][]uint8{{1, 0, 1}, {0, 0, 1}})
	if err != nil {
		t.Fatal(err)
	}
	cmprMat(out, [][]uint8{{0, 0, 0}, {1, 0, 1}, {1, 0, 1}}, "config network", t)
}

func TestConfigSaveOpen(t *testing.T) {
	nc := &NetConfig{
		Name:     "Pair",
		InputDim: 1,
		Layers: []LayerConfig{{
			Neurons:  []lif.Params{{Thr: 0.5, Rest: 0, VmR: 0, Tau: 1}, {Thr: 1.5, Rest: 0, VmR: 0, Tau: 2}},
			Wts:      [][]float32{{1}, {1}},
			IntraWts: [][]float32{{0, 0}, {0, 0}},
		}},
	}
	var b bytes.Buffer
	if err := nc.WriteConfig(&b); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(b.String(), `"Model": "LIF"`) {
		t.Errorf("model must be written by name:\n%s", b.String())
	}
	for _, fn := range []string{"net.json", "net.json.gz"} {
		fname := filepath.Join(t.TempDir(), fn)
		if err := nc.SaveConfig(fname); err != nil {
			t.Fatal(err)
		}
		got, err := OpenConfig(fname)
		if err != nil {
			t.Fatal(err)
		}
		if got.Name != "Pair" || len(got.Layers) != 1 || len(got.Layers[0].Neurons) != 2 {
			t.Fatalf("%s: got %+v", fn, got)
		}
		if got.Layers[0].Neurons[1].Tau != 2 {
			t.Errorf("%s: neuron params: %+v", fn, got.Layers[0].Neurons[1])
		}
		if _, err := got.Build(); err != nil {
			t.Error(err)
		}
	}
}

func TestConfigErrors(t *testing.T) {
	cases := []string{
		`{"InputDim": 2, "Layers": [`,
	}
	for _, cs := range cases {
		if _, err := ReadConfig(strings.NewReader(cs)); !errors.Is(err, snn.ErrConfig) {
			t.Errorf("%s: expected ErrConfig, got: %v", cs, err)
		}
	}

	builds := []*NetConfig{
		{InputDim: 1, Layers: []LayerConfig{{Wts: [][]float32{{1}}, IntraWts: [][]float32{{0}}}}},
		{InputDim: 1, Layers: []LayerConfig{{Same: &lif.Params{Thr: 1, Tau: 0}, N: 1, Wts: [][]float32{{1}}, IntraWts: [][]float32{{0}}}}},
		{InputDim: 1, Layers: []LayerConfig{{Same: &lif.Params{Thr: 1, Tau: 1}, N: 1, Wts: [][]float32{{-1}}, IntraWts: [][]float32{{0}}}}},
		{InputDim: 1, Layers: []LayerConfig{{Model: NeuronModelsN, Same: &lif.Params{Thr: 1, Tau: 1}, N: 1}}},
		{InputDim: 1},
	}
	for i, nc := range builds {
		if _, err := nc.Build(); !errors.Is(err, snn.ErrConfig) {
			t.Errorf("case %d: expected ErrConfig, got: %v", i, err)
		}
	}
}

func TestNeuronModelsString(t *testing.T) {
	if LIF.String() != "LIF" {
		t.Errorf("String: %v", LIF.String())
	}
	var nm NeuronModels
	if err := nm.FromString("LIF"); err != nil || nm != LIF {
		t.Errorf("FromString: %v, %v", nm, err)
	}
	if err := nm.FromString("HH"); err == nil {
		t.Errorf("expected error for unknown model")
	}
}
