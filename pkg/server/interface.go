/*
Package server implements msgpack IPC for space restoration services.

The server provides a minimal interface for restoring word-boundary spaces
using msgpack serialization over stdin/stdout, so editors and pipelines can
drive a long-lived restorer through process communication.

# IPC

The server operates on a request response model: clients send structured
messages via stdin and receive responses through stdout. Each message
carries an ID field; requests are processed synchronously, one at a time,
in arrival order.

A restore request carries the unspaced text and optional hyperparameter
overrides:

	{"id": "req_001", "x": "thecatsatonthemat"}
	{"id": "req_002", "x": "thecatsatonthemat", "l": 10, "la": 10.0}

The server responds with the restored text, word count and timing:

	{"id": "req_001", "r": "the cat sat on the mat", "c": 6, "t": 145}

Invalid requests produce an error frame with a code:

	{"id": "req_002", "e": "hyperparameters must be positive", "c": 400}

Omitted overrides fall back to the configured defaults. The memo cache is
shared across requests of a session, so repeated text costs almost nothing
after the first request.
*/
package server

// RestoreRequest - minimal restoration request
type RestoreRequest struct {
	ID         string  `msgpack:"id"`
	Text       string  `msgpack:"x"`
	MaxWordLen int     `msgpack:"l,omitempty"`
	Lambda     float64 `msgpack:"la,omitempty"`
}

// RestoreResponse - restoration response
type RestoreResponse struct {
	ID        string `msgpack:"id"`
	Restored  string `msgpack:"r"`
	WordCount int    `msgpack:"c"`
	TimeTaken int64  `msgpack:"t"`
}

// RestoreError holds basic error information for restore requests
type RestoreError struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
