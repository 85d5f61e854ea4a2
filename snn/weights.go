// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snn

import (
	"bufio"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/goki/ki/indent"
)

// NetWts is the decoded form of a network weights file.
type NetWts struct {
	Network  string
	MetaData map[string]string
	Layers   []LayerWts
}

// LayerWts holds the weights of one layer in a weights file.
type LayerWts struct {
	Layer    string
	Wts      [][]float32
	IntraWts [][]float32
}

// SaveWtsJSON saves network weights to a JSON-formatted file.
// If filename has .gz extension, then file is gzip compressed.
func (nt *Network) SaveWtsJSON(filename string) error {
	fp, err := os.Create(filename)
	if err != nil {
		log.Println(err)
		return err
	}
	if err := nt.writeWtsClose(fp, filepath.Ext(filename) == ".gz"); err != nil {
		log.Println(err)
		return err
	}
	nt.WtsFile = filename
	return nil
}

// writeWtsClose writes the weights to wc, gzip compressed if gz, then
// closes wc. The first error, including one from Close, is returned.
func (nt *Network) writeWtsClose(wc io.WriteCloser, gz bool) error {
	var err error
	if gz {
		gzw := gzip.NewWriter(wc)
		err = nt.WriteWtsJSON(gzw)
		if cerr := gzw.Close(); err == nil {
			err = cerr
		}
	} else {
		bw := bufio.NewWriter(wc)
		err = nt.WriteWtsJSON(bw)
		if ferr := bw.Flush(); err == nil {
			err = ferr
		}
	}
	if cerr := wc.Close(); err == nil {
		err = cerr
	}
	return err
}

// OpenWtsJSON opens network weights from a JSON-formatted file.
// If filename has .gz extension, then file is gzip uncompressed.
func (nt *Network) OpenWtsJSON(filename string) error {
	fp, err := os.Open(filename)
	if err != nil {
		log.Println(err)
		return err
	}
	defer fp.Close()
	ext := filepath.Ext(filename)
	if ext == ".gz" {
		gzr, err := gzip.NewReader(fp)
		if err != nil {
			log.Println(err)
			return err
		}
		defer gzr.Close()
		err = nt.ReadWtsJSON(gzr)
		if err == nil {
			nt.WtsFile = filename
		}
		return err
	}
	err = nt.ReadWtsJSON(bufio.NewReader(fp))
	if err == nil {
		nt.WtsFile = filename
	}
	return err
}

// WriteWtsJSON writes the weights of all layers in a JSON text format.
// We build in the indentation logic to make it much faster and
// more efficient.
func (nt *Network) WriteWtsJSON(w io.Writer) error {
	depth := 0
	w.Write(indent.TabBytes(depth))
	w.Write([]byte("{\n"))
	depth++
	w.Write(indent.TabBytes(depth))
	w.Write([]byte(fmt.Sprintf("\"Network\": %q,\n", nt.Name)))
	if len(nt.MetaData) > 0 {
		w.Write(indent.TabBytes(depth))
		md, err := json.Marshal(nt.MetaData)
		if err != nil {
			return err
		}
		w.Write([]byte("\"MetaData\": "))
		w.Write(md)
		w.Write([]byte(",\n"))
	}
	w.Write(indent.TabBytes(depth))
	nl := len(nt.Layers)
	if nl == 0 {
		w.Write([]byte("\"Layers\": null\n"))
	} else {
		w.Write([]byte("\"Layers\": [\n"))
		depth++
		for li, ly := range nt.Layers {
			ly.WriteWtsJSON(w, depth)
			if li == nl-1 {
				w.Write([]byte("\n"))
			} else {
				w.Write([]byte(",\n"))
			}
		}
		depth--
		w.Write(indent.TabBytes(depth))
		w.Write([]byte("]\n"))
	}
	depth--
	w.Write(indent.TabBytes(depth))
	_, err := w.Write([]byte("}\n"))
	return err
}

// WriteWtsJSON writes the weights of this layer in a JSON text format,
// one weight row per line.
func (ly *Layer) WriteWtsJSON(w io.Writer, depth int) {
	w.Write(indent.TabBytes(depth))
	w.Write([]byte("{\n"))
	depth++
	w.Write(indent.TabBytes(depth))
	w.Write([]byte(fmt.Sprintf("\"Layer\": %q,\n", ly.Name)))
	w.Write(indent.TabBytes(depth))
	w.Write([]byte("\"Wts\": "))
	writeMatJSON(w, ly.Wts, depth)
	w.Write([]byte(",\n"))
	w.Write(indent.TabBytes(depth))
	w.Write([]byte("\"IntraWts\": "))
	writeMatJSON(w, ly.IntraWts, depth)
	w.Write([]byte("\n"))
	depth--
	w.Write(indent.TabBytes(depth))
	w.Write([]byte("}"))
}

func writeMatJSON(w io.Writer, mat [][]float32, depth int) {
	w.Write([]byte("[\n"))
	depth++
	for ri, row := range mat {
		w.Write(indent.TabBytes(depth))
		w.Write([]byte("[ "))
		for ci, v := range row {
			w.Write([]byte(strconv.FormatFloat(float64(v), 'g', -1, 32)))
			if ci < len(row)-1 {
				w.Write([]byte(", "))
			} else {
				w.Write([]byte(" "))
			}
		}
		if ri < len(mat)-1 {
			w.Write([]byte("],\n"))
		} else {
			w.Write([]byte("]\n"))
		}
	}
	depth--
	w.Write(indent.TabBytes(depth))
	w.Write([]byte("]"))
}

// ReadWtsJSON reads network weights in the JSON text format written by
// WriteWtsJSON and applies them with SetWts.
func (nt *Network) ReadWtsJSON(r io.Reader) error {
	var nw NetWts
	if err := json.NewDecoder(r).Decode(&nw); err != nil {
		log.Println(err)
		return err
	}
	err := nt.SetWts(&nw)
	if err != nil {
		log.Println(err)
	}
	return err
}

// SetWts sets the weights for this network from decoded values.
// Every layer in nw is validated against the network structure before
// any weight is changed, so a failed call leaves the network untouched.
// Layers are matched by name; layers not present in nw keep their weights.
func (nt *Network) SetWts(nw *NetWts) error {
	nt.mu.Lock()
	defer nt.mu.Unlock()
	lys := make([]*Layer, len(nw.Layers))
	for i := range nw.Layers {
		lw := &nw.Layers[i]
		ly := nt.LayerByName(lw.Layer)
		if ly == nil {
			return fmt.Errorf("%w: layer %q not found in network %q", ErrConfig, lw.Layer, nt.Name)
		}
		if err := CheckWts(ly.Index, ly.NNeurons(), ly.InputWidth(), lw.Wts); err != nil {
			return err
		}
		if err := CheckIntraWts(ly.Index, ly.NNeurons(), lw.IntraWts); err != nil {
			return err
		}
		lys[i] = ly
	}
	for i, ly := range lys {
		ly.Wts = CopyWts(nw.Layers[i].Wts)
		ly.IntraWts = CopyWts(nw.Layers[i].IntraWts)
	}
	if nw.MetaData != nil {
		if nt.MetaData == nil {
			nt.MetaData = make(map[string]string, len(nw.MetaData))
		}
		for mk, mv := range nw.MetaData {
			nt.MetaData[mk] = mv
		}
	}
	return nil
}
