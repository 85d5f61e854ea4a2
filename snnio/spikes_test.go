// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snnio

import (
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/emer/snn/snn"
)

func cmprMat(got, trg [][]uint8, msg string, t *testing.T) {
	t.Helper()
	if len(got) != len(trg) {
		t.Fatalf("%v: got %v, trg %v", msg, got, trg)
	}
	for i := range got {
		if len(got[i]) != len(trg[i]) {
			t.Fatalf("%v: row %d: got %v, trg %v", msg, i, got[i], trg[i])
		}
		for j := range got[i] {
			if got[i][j] != trg[i][j] {
				t.Errorf("%v: row %d: got %v, trg %v", msg, i, got[i], trg[i])
				break
			}
		}
	}
}

func TestReadSpikes(t *testing.T) {
	spikes, err := ReadSpikes(strings.NewReader("100\r\n011\n\n001\n"))
	if err != nil {
		t.Fatal(err)
	}
	cmprMat(spikes, [][]uint8{{1, 0, 0}, {0, 1, 0}, {0, 1, 1}}, "read", t)

	spikes, err = ReadSpikes(strings.NewReader(""))
	if err != nil || len(spikes) != 0 {
		t.Errorf("empty file: %v, %v", spikes, err)
	}

	_, err = ReadSpikes(strings.NewReader("101\n2\n"))
	if !errors.Is(err, snn.ErrInputFormat) {
		t.Errorf("expected ErrInputFormat for ragged lines, got: %v", err)
	}
	_, err = ReadSpikes(strings.NewReader("101\n121\n"))
	if !errors.Is(err, snn.ErrInputFormat) {
		t.Errorf("expected ErrInputFormat for spike value 2, got: %v", err)
	}
}

func TestWriteSpikes(t *testing.T) {
	var b bytes.Buffer
	if err := WriteSpikes(&b, [][]uint8{{1, 0, 0}, {0, 1, 1}}); err != nil {
		t.Fatal(err)
	}
	if b.String() != "10\n01\n01\n" {
		t.Errorf("WriteSpikes: %q", b.String())
	}
	if err := WriteSpikes(&b, [][]uint8{{1, 0}, {0}}); !errors.Is(err, snn.ErrInputFormat) {
		t.Errorf("expected ErrInputFormat for ragged spikes, got: %v", err)
	}
}

func TestSaveOpenSpikes(t *testing.T) {
	spikes := [][]uint8{{1, 0, 0, 1}, {0, 1, 1, 1}, {0, 0, 0, 0}}
	for _, fn := range []string{"spikes.txt", "spikes.txt.gz"} {
		fname := filepath.Join(t.TempDir(), fn)
		if err := SaveSpikes(fname, spikes); err != nil {
			t.Fatal(err)
		}
		got, err := OpenSpikes(fname)
		if err != nil {
			t.Fatal(err)
		}
		cmprMat(got, spikes, fn, t)
	}
	if _, err := OpenSpikes(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Errorf("expected error for missing file")
	}
}

func TestSpikeCounts(t *testing.T) {
	counts := SpikeCounts([][]uint8{{1, 0, 1}, {0, 0, 0}, {1, 1, 1}})
	trg := []int{2, 0, 3}
	for i := range trg {
		if counts[i] != trg[i] {
			t.Errorf("counts: got %v, trg %v", counts, trg)
			break
		}
	}
	var b bytes.Buffer
	if err := WriteCounts(&b, counts); err != nil {
		t.Fatal(err)
	}
	if b.String() != "2\n0\n3\n" {
		t.Errorf("WriteCounts: %q", b.String())
	}
}

var errClose = errors.New("close failed")

type closeBuffer struct {
	bytes.Buffer
	CloseErr error
	Closed   bool
}

func (cb *closeBuffer) Close() error {
	cb.Closed = true
	return cb.CloseErr
}

func TestWriteClose(t *testing.T) {
	spikes := [][]uint8{{1, 0}, {0, 1}}
	write := func(w io.Writer) error { return WriteSpikes(w, spikes) }
	for _, gz := range []bool{false, true} {
		cb := &closeBuffer{}
		if err := writeClose(cb, gz, write); err != nil {
			t.Fatal(err)
		}
		if !cb.Closed || cb.Len() == 0 {
			t.Errorf("gz %v: closed: %v, written: %d", gz, cb.Closed, cb.Len())
		}
		cb = &closeBuffer{CloseErr: errClose}
		if err := writeClose(cb, gz, write); !errors.Is(err, errClose) {
			t.Errorf("gz %v: expected close error, got: %v", gz, err)
		}
	}
	if err := writeClose(&closeBuffer{}, false, func(w io.Writer) error { return WriteSpikes(w, [][]uint8{{1}, {}}) }); !errors.Is(err, snn.ErrInputFormat) {
		t.Errorf("write error must win over close: %v", err)
	}
}
