// Copyright (c) 2026, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package snnio reads and writes the data that flows in and out of an
snn.Network:

  - spike trains as text files, one line per instant and one 0 / 1 digit
    per neuron (gzip compressed when the file name ends in .gz)
  - per-neuron spike counts
  - JSON network configurations, built into a Network with snn.Builder
  - spike rasters as etable.Table, for saving as CSV or plotting
*/
package snnio
