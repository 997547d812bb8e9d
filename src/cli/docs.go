// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package cli provides the Cobra command line of the certificate blob classifier.
//
// The root command runs one batch: it loads the configuration, opens the
// record source (a JSON or YAML file, or Postgres), classifies every record
// and writes the selected reports. The inspect subcommand classifies a single
// field read from a file or stdin.
//
// Configuration is read from JSON or YAML, with flags taking precedence over
// the environment and the environment over the file:
//
//	database:
//	  user: analyst
//	  password: secret
//	  host: db.internal
//	  name: website_data
//	  limit: 1000
//	workers: 4
//	metricsFile: /var/lib/node_exporter/x509blob.prom
//	logFormat: json
package cli
