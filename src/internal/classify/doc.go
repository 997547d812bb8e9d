// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package classify runs stored certificate fields through normalization and
// format detection and tallies the results.
//
// A [Source] yields one batch of records; every record is classified on its
// own and the resulting [Outcome] is handed to each [Sink] in source order.
// A record that fails never aborts the batch: the failure is logged with the
// record identifier and the stage it failed in, and the loop moves on.
package classify
