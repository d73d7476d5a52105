// Package writers turns pipeline results into CSV outputs.
//
// Design:
//   • Writers own all presentation knowledge (headers, number formatting, quoting).
//   • Domain packages (gc, trf, telo) stay I/O-free; apps only wire paths to writers.
//   • File outputs go through Destination so a failed run never leaves a partial CSV.
package writers
