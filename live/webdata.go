// Copyright 2025 The gwtrig Authors
// Use of this source code is governed by the BSD 3-clause
// license that can be found in the LICENSE file.

package live

import (
	"github.com/gobuffalo/packr"
)

var WebdataBox = packr.NewBox("webdata")
