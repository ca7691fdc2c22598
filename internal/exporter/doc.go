// Package exporter writes the cleaned datasets to disk.
//
// Three components:
//
// CSVWriter: core CSV writing with UTF-8 BOM for Excel compatibility and a
// streaming writer for large outputs.
//
// SplitExporter: writes one dataset's records as sequential part files, each
// below the Excel sheet row limit, named <dataset>_cleaned_part<N>.csv.
//
// ReportWriter: renders the plain-text cleaning report summarizing what each
// dataset run did and how many rows were skipped by error kind.
package exporter
