/*
Package server implements msgpack IPC over stdin/stdout so an input-method
frontend can query the managed dictionary without linking against it.

Each request carries an id, an op and the op's arguments; responses echo the
id and include timing in microseconds. Ops:

	candidates  c=<code>            exact-code candidate list, priority order
	codes       p=<prefix> l=<n>    codes starting with prefix
	encode      w=<word>            generate the word's code from the
	                                character table; missing characters are
	                                returned instead of a code
	health                          liveness probe

The model is strictly request-response and synchronous; the dictionary is
owned by this process and read-only from the server's point of view.
*/
package server

// Request is one incoming IPC message.
type Request struct {
	ID     string `msgpack:"id"`
	Op     string `msgpack:"op"`
	Code   string `msgpack:"c,omitempty"`
	Prefix string `msgpack:"p,omitempty"`
	Word   string `msgpack:"w,omitempty"`
	Limit  int    `msgpack:"l,omitempty"`
}

// Candidate is one ranked word in a candidates response. Rank 1 is the
// most preferred candidate under the code.
type Candidate struct {
	Word string `msgpack:"w"`
	Rank int    `msgpack:"r"`
}

// Response is the single reply shape for every op; unused fields are
// omitted from the encoded message.
type Response struct {
	ID         string      `msgpack:"id"`
	Status     string      `msgpack:"status"`
	Error      string      `msgpack:"e,omitempty"`
	Candidates []Candidate `msgpack:"s,omitempty"`
	Codes      []string    `msgpack:"codes,omitempty"`
	Code       string      `msgpack:"code,omitempty"`
	Missing    []string    `msgpack:"missing,omitempty"`
	Count      int         `msgpack:"n,omitempty"`
	TimeTaken  int64       `msgpack:"t"`
}
