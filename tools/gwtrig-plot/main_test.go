// Copyright 2025 The gwtrig Authors
// Use of this source code is governed by the BSD 3-clause
// license that can be found in the LICENSE file.

package main

import "testing"

func TestCheckColumns(t *testing.T) {
	if err := checkColumns("time", "frequency", "snr"); err != nil {
		t.Errorf("known columns rejected: %v", err)
	}
	if err := checkColumns("nonesuch"); err == nil {
		t.Error("want error for an unknown column")
	}
	if err := checkColumns("time", "nonesuch", "snr"); err == nil {
		t.Error("want error when any name is unknown")
	}
}
