/**
 * Filename: base.go
 * Path: gfase-maxcut-solver
 *
 * Copyright (c) 2018 Haibao Tang
 */

package gfase

import (
	"os"

	logging "github.com/op/go-logging"
)

const (
	// Version is the current version of the solver
	Version = "0.1.0"
)

var log = logging.MustGetLogger("gfase")
var format = logging.MustStringFormatter(
	`%{color}%{time:15:04:05} %{shortfunc} ▶ %{level:.4s} %{color:reset} %{message}`,
)

// Backend is the default stderr output
var Backend = logging.NewLogBackend(os.Stderr, "", 0)

// BackendFormatter contains the fancy debug formatter
var BackendFormatter = logging.NewBackendFormatter(Backend, format)

// min32 gets the minimum of two int32 node ids
func min32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

// max32 gets the maximum of two int32 node ids
func max32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}
