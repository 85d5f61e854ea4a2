// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snn

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"unsafe"

	"github.com/c2h5oh/datasize"
	"github.com/emer/emergent/v2/timer"
	"github.com/goki/ki/ints"
)

// Params are the network-level processing parameters.
type Params struct {

	// buffer size of the channel between two consecutive stages -- larger values
	// decouple the layer goroutines more, at the cost of memory for queued events.
	// Negative values are treated as 0 (unbuffered).
	ChanBuf int `def:"64" min:"0"`
}

func (np *Params) Defaults() {
	np.ChanBuf = 64
}

// Buf returns the channel buffer size to use, clamped to the min of 0.
func (np *Params) Buf() int {
	return ints.MaxInt(np.ChanBuf, 0)
}

// Network is a feed-forward sequence of layers, built by Builder.
// Its structure does not change after Build. Only one Process call can be
// in flight at a time: calls on the same Network are serialized.
type Network struct {

	// overall name of network -- helps discriminate if there are multiple
	Name string

	// processing parameters
	Params Params

	// list of layers, from input to output
	Layers []*Layer

	// filename of last weights file loaded or saved
	WtsFile string

	// optional metadata that is saved in network weights files
	MetaData map[string]string

	// timers for each major function (step of processing)
	FunTimes map[string]*timer.Time `view:"-"`

	// held for the duration of Process and SetWts
	mu sync.Mutex
}

// NLayers returns the number of layers.
func (nt *Network) NLayers() int { return len(nt.Layers) }

// Layer returns the layer at given index.
func (nt *Network) Layer(idx int) *Layer { return nt.Layers[idx] }

// LayerByName returns a layer by name, nil if not found.
func (nt *Network) LayerByName(name string) *Layer {
	for _, ly := range nt.Layers {
		if ly.Name == name {
			return ly
		}
	}
	return nil
}

// LayerByNameTry returns a layer by name -- emits a log error message
// if layer is not found
func (nt *Network) LayerByNameTry(name string) (*Layer, error) {
	ly := nt.LayerByName(name)
	if ly == nil {
		err := fmt.Errorf("Layer named: %v not found in Network: %v", name, nt.Name)
		log.Println(err)
		return nil, err
	}
	return ly, nil
}

// InputWidth returns the number of input channels of the network.
func (nt *Network) InputWidth() int {
	if len(nt.Layers) == 0 {
		return 0
	}
	return nt.Layers[0].InputWidth()
}

// OutputWidth returns the number of neurons in the last layer.
func (nt *Network) OutputWidth() int {
	if len(nt.Layers) == 0 {
		return 0
	}
	return nt.Layers[len(nt.Layers)-1].NNeurons()
}

// Process runs the input spikes through the network and returns the spikes
// of the last layer. spikes has one row per network input, each row holding
// one 0 / 1 value per instant; all rows must have the same length.
// The output has one row per output neuron with the same duration.
// All neuron state is reset at the start of the call, so repeated calls
// with the same input give the same output.
func (nt *Network) Process(spikes [][]uint8) ([][]uint8, error) {
	nt.mu.Lock()
	defer nt.mu.Unlock()
	if len(nt.Layers) == 0 {
		return nil, fmt.Errorf("%w: network %q has no layers", ErrConfig, nt.Name)
	}
	nt.FunTimerStart("Process")
	defer nt.FunTimerStop("Process")

	dur, err := Duration(spikes)
	if err != nil {
		return nil, err
	}
	evs, err := Encode(spikes, nt.InputWidth())
	if err != nil {
		return nil, err
	}
	oevs, err := nt.processEvents(evs)
	if err != nil {
		return nil, err
	}
	return Decode(oevs, nt.OutputWidth(), dur)
}

// ProcessEvents runs already encoded input events through the network and
// returns the events emitted by the last layer, in instant order.
// Events must be in non-decreasing instant order.
func (nt *Network) ProcessEvents(evs []*SpikeEvent) ([]*SpikeEvent, error) {
	nt.mu.Lock()
	defer nt.mu.Unlock()
	if len(nt.Layers) == 0 {
		return nil, fmt.Errorf("%w: network %q has no layers", ErrConfig, nt.Name)
	}
	return nt.processEvents(evs)
}

// processEvents wires one channel per hop, starts one goroutine per layer
// plus one feeding the input, and drains the output end until every layer
// has terminated. Must be called with mu held.
func (nt *Network) processEvents(evs []*SpikeEvent) ([]*SpikeEvent, error) {
	nl := len(nt.Layers)
	buf := nt.Params.Buf()
	chans := make([]chan *SpikeEvent, nl+1)
	for i := range chans {
		chans[i] = make(chan *SpikeEvent, buf)
	}
	errs := make([]error, nl)
	var wg sync.WaitGroup
	for li, ly := range nt.Layers {
		wg.Add(1)
		go func(li int, ly *Layer) {
			defer wg.Done()
			errs[li] = ly.Run(chans[li], chans[li+1])
		}(li, ly)
	}

	go func() {
		for _, ev := range evs {
			chans[0] <- ev
		}
		close(chans[0])
	}()

	var out []*SpikeEvent
	for ev := range chans[nl] {
		out = append(out, ev)
	}
	wg.Wait()
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return out, nil
}

// SizeReport returns a string reporting the size of
// each layer and its weights, and the total for the network.
func (nt *Network) SizeReport() string {
	nt.mu.Lock()
	defer nt.mu.Unlock()
	var b strings.Builder
	neur := 0
	neurMem := 0
	syn := 0
	synMem := 0
	wsz := int(unsafe.Sizeof(float32(0)))
	for _, ly := range nt.Layers {
		nn := ly.NNeurons()
		nmem := nn * int(unsafe.Sizeof(uint8(0)))
		neur += nn
		neurMem += nmem
		ns := nn*ly.InputWidth() + nn*nn
		pmem := ns * wsz
		syn += ns
		synMem += pmem
		fmt.Fprintf(&b, "%14s:\t Neurons: %d\t Inputs: %d\t Syns: %d\t SynMem: %v\n", ly.Name, nn, ly.InputWidth(), ns, (datasize.ByteSize)(pmem).HumanReadable())
	}
	fmt.Fprintf(&b, "\n\n%14s:\t Neurons: %d\t SpikeMem: %v \t Syns: %d \t SynMem: %v\n", nt.Name, neur, (datasize.ByteSize)(neurMem).HumanReadable(), syn, (datasize.ByteSize)(synMem).HumanReadable())
	return b.String()
}

// LayerStats returns the per-layer statistics of the last Process call.
// It waits for a Process call in flight to finish.
func (nt *Network) LayerStats() string {
	nt.mu.Lock()
	defer nt.mu.Unlock()
	var b strings.Builder
	for _, ly := range nt.Layers {
		b.WriteString(ly.Stats())
		b.WriteByte('\n')
	}
	return b.String()
}

//////////////////////////////////////////////////////////////////////////////////////
//  Timers

// TimerReport reports the amount of time spent in each function, and in each layer.
// It waits for a Process call in flight to finish.
func (nt *Network) TimerReport() {
	nt.mu.Lock()
	defer nt.mu.Unlock()
	fmt.Printf("TimerReport: %v, NLayers: %v\n", nt.Name, len(nt.Layers))
	fmt.Printf("\t%13s \t%7s\t%7s\n", "Function Name", "Secs", "Pct")
	nfn := len(nt.FunTimes)
	fnms := make([]string, 0, nfn)
	for k := range nt.FunTimes {
		fnms = append(fnms, k)
	}
	sort.Strings(fnms)
	pcts := make([]float64, nfn)
	tot := 0.0
	for i, fn := range fnms {
		pcts[i] = nt.FunTimes[fn].TotalSecs()
		tot += pcts[i]
	}
	for i, fn := range fnms {
		fmt.Printf("\t%13s \t%7.3f\t%7.1f\n", fn, pcts[i], 100*(pcts[i]/tot))
	}
	fmt.Printf("\t%13s \t%7.3f\n", "Total", tot)

	fmt.Printf("\n\t%13s\t%7s\t%7s\n", "Layer", "Secs", "Pct")
	pcts = make([]float64, len(nt.Layers))
	tot = 0.0
	for li, ly := range nt.Layers {
		pcts[li] = ly.Timer.TotalSecs()
		tot += pcts[li]
	}
	for li, ly := range nt.Layers {
		fmt.Printf("\t%13s\t%7.3f\t%7.1f\n", ly.Name, pcts[li], 100*(pcts[li]/tot))
	}
}

// TimerReset resets the function and layer timers
func (nt *Network) TimerReset() {
	nt.mu.Lock()
	defer nt.mu.Unlock()
	for _, ft := range nt.FunTimes {
		ft.Reset()
	}
	for _, ly := range nt.Layers {
		ly.Timer.Reset()
	}
}

// FunTimerStart starts function timer for given function name -- ensures creation of timer.
// Must be called with mu held.
func (nt *Network) FunTimerStart(fun string) {
	if nt.FunTimes == nil {
		nt.FunTimes = make(map[string]*timer.Time)
	}
	ft, ok := nt.FunTimes[fun]
	if !ok {
		ft = &timer.Time{}
		nt.FunTimes[fun] = ft
	}
	ft.Start()
}

// FunTimerStop stops function timer -- timer must already exist
func (nt *Network) FunTimerStop(fun string) {
	ft := nt.FunTimes[fun]
	ft.Stop()
}
