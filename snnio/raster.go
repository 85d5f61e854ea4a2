// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snnio

import (
	"bufio"
	"fmt"
	"io"

	"github.com/emer/etable/v2/etable"
	"github.com/emer/etable/v2/etensor"
	"github.com/emer/snn/snn"
)

// RasterTable returns a table with one row per instant: column T holds the
// instant and column Ni the spike of neuron i.
func RasterTable(name string, spikes [][]uint8) (*etable.Table, error) {
	dur, err := snn.Duration(spikes)
	if err != nil {
		return nil, err
	}
	dt := &etable.Table{}
	dt.SetMetaData("name", name)
	dt.SetMetaData("read-only", "true")
	sch := etable.Schema{
		{Name: "T", Type: etensor.INT64},
	}
	for ni := range spikes {
		sch = append(sch, etable.Column{Name: fmt.Sprintf("N%d", ni), Type: etensor.INT64})
	}
	dt.SetFromSchema(sch, dur)
	for ti := 0; ti < dur; ti++ {
		dt.SetCellFloat("T", ti, float64(ti))
		for ni, row := range spikes {
			dt.SetCellFloat(fmt.Sprintf("N%d", ni), ti, float64(row[ti]))
		}
	}
	return dt, nil
}

// WriteRasterCSV writes the raster table as tab separated values with a
// header line.
func WriteRasterCSV(w io.Writer, dt *etable.Table) error {
	bw := bufio.NewWriter(w)
	dt.WriteCSVHeaders(bw, etable.Tab)
	for row := 0; row < dt.Rows; row++ {
		dt.WriteCSVRow(bw, row, etable.Tab)
	}
	return bw.Flush()
}

// SaveRaster writes the raster of spikes to the given file as tab
// separated values.
func SaveRaster(filename, name string, spikes [][]uint8) error {
	dt, err := RasterTable(name, spikes)
	if err != nil {
		return err
	}
	return createWith(filename, func(w io.Writer) error {
		return WriteRasterCSV(w, dt)
	})
}
