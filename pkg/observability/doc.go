/*
Package observability provides tools for monitoring the fpgaflow pipeline.

It turns pipeline lifecycle hooks into Prometheus metrics (stage durations,
stage outcomes, cleaned artifacts) that can be scraped over HTTP in watch
mode or written to a node_exporter textfile after a one-shot run.
*/
package observability
