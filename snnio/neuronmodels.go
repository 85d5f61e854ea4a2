// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snnio

import "github.com/goki/ki/kit"

// NeuronModels are the neuron models that can be named in a NetConfig
type NeuronModels int

//go:generate stringer -type=NeuronModels

var KiT_NeuronModels = kit.Enums.AddEnum(NeuronModelsN, false, nil)

func (ev NeuronModels) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *NeuronModels) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// LIF is the leaky integrate-and-fire model of package lif
	LIF NeuronModels = iota

	NeuronModelsN
)
