// Copyright 2025 The gwtrig Authors
// Use of this source code is governed by the BSD 3-clause
// license that can be found in the LICENSE file.

package plot

import "strings"

var columnLabel = map[string]string{
	"time":          "Time [s]",
	"frequency":     "Frequency [Hz]",
	"peak_frequency": "Frequency [Hz]",
	"central_freq":  "Frequency [Hz]",
	"snr":           "Signal-to-noise ratio (SNR)",
	"amplitude":     "Amplitude",
	"duration":      "Duration [s]",
	"bandwidth":     "Bandwidth [Hz]",
}

// ColumnLabel maps a trigger column name onto an axis label.  Unknown names
// are title-cased word by word, with the usual acronyms upper-cased.
func ColumnLabel(column string) string {
	if label, ok := columnLabel[column]; ok {
		return label
	}

	acro := map[string]bool{"snr": true, "dof": true, "id": true, "far": true}
	words := strings.Split(column, "_")
	for i, word := range words {
		if acro[word] {
			words[i] = strings.ToUpper(word)
		} else {
			words[i] = strings.Title(word)
		}
	}
	return strings.Join(words, " ")
}
