// Package sheet maps service records to and from .xlsx workbooks.
//
// Export writes one sheet named "Registros" with the fixed Header on row 1
// and one row per record below it. Import expects the same header without
// the ID column and rejects the whole file on the first mismatching cell,
// before any data row is read.
//
// Workbooks are fully materialized in memory on both paths.
package sheet
