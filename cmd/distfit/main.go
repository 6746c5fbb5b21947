// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// distfit fits candidate probability distributions to a numeric
// sample and ranks them by goodness of fit.
//
// Usage:
//
//	distfit run [flags] file
//	distfit replay session.json
//	distfit describe file
//	distfit serve
//	distfit catalog
//
// Samples are read from text files (whitespace-separated numbers), CSV
// files, or Excel workbooks, chosen by extension. A file of "-" reads
// text from standard input.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
