// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snnio

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/emer/snn/snn"
)

// ReadSpikes reads a spike text file: one line per instant, one 0 / 1
// digit per neuron. Blank lines are skipped. The result is indexed
// [neuron][instant], as used by snn.Network.Process.
func ReadSpikes(r io.Reader) ([][]uint8, error) {
	var rows [][]uint8 // [instant][neuron]
	scan := bufio.NewScanner(r)
	scan.Buffer(make([]byte, 64*1024), 16*1024*1024)
	ln := 0
	for scan.Scan() {
		ln++
		line := strings.TrimSpace(scan.Text())
		if line == "" {
			continue
		}
		if len(rows) > 0 && len(line) != len(rows[0]) {
			return nil, fmt.Errorf("%w: line %d has %d neurons, first line has %d", snn.ErrInputFormat, ln, len(line), len(rows[0]))
		}
		row := make([]uint8, len(line))
		for ni := 0; ni < len(line); ni++ {
			switch line[ni] {
			case '0':
			case '1':
				row[ni] = 1
			default:
				return nil, fmt.Errorf("%w: line %d col %d: invalid spike %q", snn.ErrInputFormat, ln, ni+1, line[ni])
			}
		}
		rows = append(rows, row)
	}
	if err := scan.Err(); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	nn := len(rows[0])
	spikes := make([][]uint8, nn)
	for ni := range spikes {
		spikes[ni] = make([]uint8, len(rows))
		for ti, row := range rows {
			spikes[ni][ti] = row[ni]
		}
	}
	return spikes, nil
}

// WriteSpikes writes spikes, indexed [neuron][instant], in the format
// read by ReadSpikes.
func WriteSpikes(w io.Writer, spikes [][]uint8) error {
	dur, err := snn.Duration(spikes)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	line := make([]byte, len(spikes)+1)
	line[len(spikes)] = '\n'
	for ti := 0; ti < dur; ti++ {
		for ni := range spikes {
			if spikes[ni][ti] != 0 {
				line[ni] = '1'
			} else {
				line[ni] = '0'
			}
		}
		bw.Write(line)
	}
	return bw.Flush()
}

// OpenSpikes reads spikes from the given file.
// If filename has .gz extension, then file is gzip uncompressed.
func OpenSpikes(filename string) ([][]uint8, error) {
	fp, err := os.Open(filename)
	if err != nil {
		log.Println(err)
		return nil, err
	}
	defer fp.Close()
	var r io.Reader = fp
	if filepath.Ext(filename) == ".gz" {
		gzr, err := gzip.NewReader(fp)
		if err != nil {
			log.Println(err)
			return nil, err
		}
		defer gzr.Close()
		r = gzr
	}
	spikes, err := ReadSpikes(r)
	if err != nil {
		log.Println(err)
	}
	return spikes, err
}

// SaveSpikes writes spikes to the given file.
// If filename has .gz extension, then file is gzip compressed.
func SaveSpikes(filename string, spikes [][]uint8) error {
	return createWith(filename, func(w io.Writer) error {
		return WriteSpikes(w, spikes)
	})
}

// SpikeCounts returns the number of spikes of each neuron.
func SpikeCounts(spikes [][]uint8) []int {
	counts := make([]int, len(spikes))
	for ni, row := range spikes {
		for _, s := range row {
			if s != 0 {
				counts[ni]++
			}
		}
	}
	return counts
}

// WriteCounts writes one count per line.
func WriteCounts(w io.Writer, counts []int) error {
	bw := bufio.NewWriter(w)
	for _, c := range counts {
		fmt.Fprintf(bw, "%d\n", c)
	}
	return bw.Flush()
}

// SaveCounts writes the spike counts of spikes to the given file.
func SaveCounts(filename string, spikes [][]uint8) error {
	return createWith(filename, func(w io.Writer) error {
		return WriteCounts(w, SpikeCounts(spikes))
	})
}

// createWith creates filename and calls write on it, through gzip
// compression when filename has .gz extension.
func createWith(filename string, write func(w io.Writer) error) error {
	fp, err := os.Create(filename)
	if err != nil {
		log.Println(err)
		return err
	}
	err = writeClose(fp, filepath.Ext(filename) == ".gz", write)
	if err != nil {
		log.Println(err)
	}
	return err
}

// writeClose calls write on wc, through gzip compression if gz, then closes
// wc. The first error, including one from Close, is returned.
func writeClose(wc io.WriteCloser, gz bool, write func(w io.Writer) error) error {
	var err error
	if gz {
		gzw := gzip.NewWriter(wc)
		err = write(gzw)
		if cerr := gzw.Close(); err == nil {
			err = cerr
		}
	} else {
		err = write(wc)
	}
	if cerr := wc.Close(); err == nil {
		err = cerr
	}
	return err
}
