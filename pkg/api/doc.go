// Package api serves gridraw over HTTP and provides a Go client for it.
//
// # Routes
//
//	POST   /v1/orderings        canonical ordering of an instance
//	POST   /v1/drawings         run the pipeline and store the drawing
//	GET    /v1/drawings         list stored drawings (?name=&algorithm=&limit=)
//	GET    /v1/drawings/{id}    fetch a drawing (?format=svg|dot|png|txt|json)
//	DELETE /v1/drawings/{id}    delete a drawing
//	GET    /healthz             liveness
//	GET    /metrics             Prometheus metrics, when configured
//
// Request bodies are [pipeline.Options] in JSON. Instances come from the
// reference, generate or inline sources; file paths are rejected because
// they would name files on the server.
//
// Errors are JSON objects with "error" and "code" fields. Instances the
// core cannot draw (not triangulated, no visibility position, ...) are
// 422 Unprocessable Entity.
package api
