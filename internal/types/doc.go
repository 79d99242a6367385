// Package types holds the FlatBuffers bindings for run reports.
package types

//go:generate flatc --go -o .. report.fbs
