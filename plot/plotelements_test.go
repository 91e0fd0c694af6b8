// Copyright 2025 The gwtrig Authors
// Use of this source code is governed by the BSD 3-clause
// license that can be found in the LICENSE file.

package plot

import (
	"math"
	"testing"
)

func TestFuncScaleNormalize(t *testing.T) {
	s := &FuncScale{Func: Log10Min1}
	if got := s.Normalize(1, 1000, 1); got != 0 {
		t.Errorf("normalize at min: got %v, want 0", got)
	}
	if got := s.Normalize(1, 1000, 1000); got != 1 {
		t.Errorf("normalize at max: got %v, want 1", got)
	}
	if got := s.Normalize(1, 1000, 10); math.Abs(got-1.0/3.0) > 1e-12 {
		t.Errorf("normalize at 10: got %v, want 1/3", got)
	}
}

func TestLog10Floors(t *testing.T) {
	if got := Log10Min1(0.5); got != 0 {
		t.Errorf("Log10Min1(0.5) = %v, want 0", got)
	}
	if got := Log10Min1(100); got != 2 {
		t.Errorf("Log10Min1(100) = %v, want 2", got)
	}
	if got := Log10Min3(0); got != -3 {
		t.Errorf("Log10Min3(0) = %v, want -3", got)
	}
}

func TestSpanTicks(t *testing.T) {
	ticks := SpanTicks{}.Ticks(0, 600)
	if len(ticks) == 0 {
		t.Fatal("no ticks over a 10 minute span")
	}
	var labeled []float64
	for _, tick := range ticks {
		if tick.Value < 0 || tick.Value > 600 {
			t.Errorf("tick %v outside the range", tick.Value)
		}
		if tick.Label != "" {
			labeled = append(labeled, tick.Value)
		}
	}
	if len(labeled) < 2 {
		t.Fatalf("only %d labeled ticks", len(labeled))
	}
	step := labeled[1] - labeled[0]
	for i := 1; i < len(labeled); i++ {
		if labeled[i]-labeled[i-1] != step {
			t.Errorf("uneven labeled tick steps: %v", labeled)
		}
	}
}

func TestSpanTicksPanicsOnEmptyRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("want panic for max <= min")
		}
	}()
	SpanTicks{}.Ticks(5, 5)
}

func TestMakeSmoother(t *testing.T) {
	smooth := MakeSmoother(0.5, 0)
	if got := smooth(10); got != 5 {
		t.Errorf("first sample: got %v, want 5", got)
	}
	if got := smooth(10); got != 7.5 {
		t.Errorf("second sample: got %v, want 7.5", got)
	}
}
