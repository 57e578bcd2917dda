// Package dataprocessing implements the ingestion pipeline for the digital
// transformation index workbook: loading, cleaning and aggregation.
//
// # Architecture
//
// The package is organized into three stages, applied in order:
//
//  1. Loader: reads one sheet of the Excel workbook into a RawTable
//  2. Cleaner: validates the schema, coerces types and drops invalid rows
//  3. Aggregator: derives the per-industry average series
//
// # Usage
//
// Basic pipeline example:
//
//	raw, err := dataprocessing.LoadWorkbook("数字化转型指数汇总.xlsx", "Sheet1")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	records, err := dataprocessing.Clean(raw)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	averages := dataprocessing.Aggregate(records)
//
// Every stage is a pure function of its input; nothing in this package
// holds state between calls. Loader failures distinguish a missing source
// (errors.ErrSourceNotFound) from a corrupt one (errors.ErrSourceUnreadable),
// and the Cleaner reports every missing required column in one SchemaError.
package dataprocessing
