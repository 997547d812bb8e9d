// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// x509-blob-classifier reads stored certificate fields and reports, for each
// record, whether it holds a structurally valid X.509 certificate and in which
// encoding: PEM, DER, PKCS7_PEM or PKCS7_DER. Fields may be raw hex, Postgres
// bytea hex ("\x3082..."), space separated hex octets or PEM armored text.
//
// No signature, chain or expiry checks are performed.
//
// # Installation
//
// Install with Go 1.25.5 or later:
//
//	go install github.com/H0llyW00dzZ/x509-blob-classifier/cmd/x509-blob-classifier@latest
//
// # Usage
//
//	x509-blob-classifier [FLAGS]
//	x509-blob-classifier inspect FILE|- [--pem]
//
// # Flags
//
//	-c, --config        JSON or YAML configuration file (env X509_BLOB_CONFIG_FILE)
//	    --dsn           Postgres connection string (env X509_BLOB_DSN)
//	    --query         SQL returning (id, certificate field) rows
//	-f, --input         JSON or YAML record file used instead of the database
//	-l, --limit         Classify at most N records
//	-w, --workers       Number of records classified concurrently
//	-j, --json          Emit one JSON object per record
//	-t, --table         Emit a markdown table of every record
//	    --metrics-file  Write Prometheus counters in textfile format
//	    --log-format    Diagnostic log format: text or json
//	-o, --output        Destination file (default: stdout)
//
// # Examples
//
// Classify every stored certificate and print the summary:
//
//	x509-blob-classifier --dsn postgres://analyst@localhost/website_data
//
// Classify a record file and keep per-record results:
//
//	x509-blob-classifier -f records.yaml --json -o results.jsonl
//
// Export counters for the node exporter textfile collector:
//
//	x509-blob-classifier -c classifier.yaml --metrics-file /var/lib/node_exporter/x509blob.prom
//
// Decode one field and print it as PEM:
//
//	psql -Atc "select https_certificate_body from website_data where id = 42" website_data |
//	  x509-blob-classifier inspect - --pem
package main
