// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snn

import (
	"bytes"
	"compress/gzip"
	"errors"
	"io"
	"strings"
	"testing"
)

var errClose = errors.New("close failed")

// closeBuffer records the written bytes and returns CloseErr from Close.
type closeBuffer struct {
	bytes.Buffer
	CloseErr error
	Closed   bool
}

func (cb *closeBuffer) Close() error {
	cb.Closed = true
	return cb.CloseErr
}

func testWtsNet(t *testing.T) *Network {
	t.Helper()
	net, err := NewBuilder(2).SetName("Wts").
		AddLayer(sumNeurons(2), [][]float32{{0.1, 0.2}, {0.3, 0.4}}, [][]float32{{0, -0.1}, {-0.05, 0}}).
		Build()
	if err != nil {
		t.Fatal(err)
	}
	return net
}

func TestWriteWtsClose(t *testing.T) {
	net := testWtsNet(t)
	for _, gz := range []bool{false, true} {
		cb := &closeBuffer{}
		if err := net.writeWtsClose(cb, gz); err != nil {
			t.Fatal(err)
		}
		if !cb.Closed {
			t.Errorf("gz %v: file not closed", gz)
		}
		var r io.Reader = &cb.Buffer
		if gz {
			gzr, err := gzip.NewReader(r)
			if err != nil {
				t.Fatal(err)
			}
			r = gzr
		}
		b, _ := io.ReadAll(r)
		if !strings.Contains(string(b), `"Network": "Wts"`) {
			t.Errorf("gz %v: weights:\n%s", gz, b)
		}

		// a failure on close must be reported
		cb = &closeBuffer{CloseErr: errClose}
		if err := net.writeWtsClose(cb, gz); !errors.Is(err, errClose) {
			t.Errorf("gz %v: expected close error, got: %v", gz, err)
		}
	}
}
