// Copyright 2025 The gwtrig Authors
// Use of this source code is governed by the BSD 3-clause
// license that can be found in the LICENSE file.

package plot

import (
	"math"
	"strconv"

	"gonum.org/v1/plot"
)

type FuncScale struct {
	Func func(float64) float64
}

func (s *FuncScale) Normalize(min, max, x float64) float64 {
	if s.Func == nil {
		panic("s.Func is nil")
	}
	fMin := s.Func(min)
	return (s.Func(x) - fMin) / (s.Func(max) - fMin)
}

// Log10Min1 clamps at 1, the conventional floor for trigger frequencies.
func Log10Min1(x float64) float64 {
	if x <= 1 {
		return 0
	}
	return math.Log10(x)
}

func Log10Min3(x float64) float64 {
	if x <= 0.001 {
		return -3
	}
	return math.Log10(x)
}

type LogTicks struct{}

func (LogTicks) Ticks(min, max float64) []plot.Tick {
	val := math.Pow10(int(Log10Min3(min)))
	max = math.Pow10(int(math.Ceil(Log10Min3(max))))
	var ticks []plot.Tick
	for val < max {
		for i := 1; i < 10; i++ {
			if i == 1 {
				ticks = append(ticks, plot.Tick{Value: val, Label: formatFloatTick(val, 5)})
			}
			ticks = append(ticks, plot.Tick{Value: val * float64(i)})
		}
		val *= 10
	}
	ticks = append(ticks, plot.Tick{Value: val, Label: formatFloatTick(val, 5)})

	return ticks
}

// SpanTicks marks seconds offset from a plot epoch, choosing a step that
// divides evenly into minutes, hours or days.
type SpanTicks struct {
	NSuggestedTicks int
}

var spanSteps = []float64{
	1, 2, 5, 10, 15, 30, 60, 120, 300, 600, 900, 1800,
	3600, 7200, 14400, 21600, 43200, 86400, 172800, 604800,
}

func (t SpanTicks) Ticks(min, max float64) []plot.Tick {
	if t.NSuggestedTicks == 0 {
		t.NSuggestedTicks = 6
	}
	if max <= min {
		panic("illegal range")
	}

	span := max - min
	step := spanSteps[len(spanSteps)-1]
	for _, s := range spanSteps {
		if span/s <= float64(t.NSuggestedTicks) {
			step = s
			break
		}
	}
	for span/step > 2*float64(t.NSuggestedTicks) {
		step *= 2
	}

	var ticks []plot.Tick
	val := math.Ceil(min/step) * step
	for val <= max {
		ticks = append(ticks, plot.Tick{Value: val, Label: formatFloatTick(val, -1)})
		half := val + step/2
		if half <= max {
			ticks = append(ticks, plot.Tick{Value: half})
		}
		val += step
	}
	return ticks
}

func formatFloatTick(v float64, prec int) string {
	return strconv.FormatFloat(v, 'g', prec, 64)
}

// MakeSmoother returns an exponential moving average, used for the live
// trigger-rate readout.
func MakeSmoother(alpha, init float64) func(float64) float64 {
	invAlpha := 1.0 - alpha
	val := init
	return func(newVal float64) float64 {
		val = invAlpha*val + alpha*newVal
		return val
	}
}
