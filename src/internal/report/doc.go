// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package report provides the classify.Sink implementations used by the
// command line and the rendering of a batch Tally.
//
// Available sinks:
//
//   - [JSONLines] streams one JSON object per record.
//   - [Table] collects rows and renders them as a markdown table.
//   - [Metrics] counts outcomes in Prometheus counters that can be written
//     to a node-exporter textfile.
//
// [Summary] renders the aggregate counts of a batch.
//
// All sinks are safe for concurrent use.
package report
