package server

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/generated/choein/pkg/dict"
)

// defaultCodeLimit caps prefix lookups when the client sends no limit.
const defaultCodeLimit = 24

// Server answers dictionary queries over a msgpack stream.
type Server struct {
	store *dict.Store
	dec   *msgpack.Decoder
	enc   *msgpack.Encoder
}

// NewServer creates a server over stdin/stdout.
func NewServer(store *dict.Store) *Server {
	return NewServerOn(store, os.Stdin, os.Stdout)
}

// NewServerOn creates a server over arbitrary streams, used by tests.
func NewServerOn(store *dict.Store, in io.Reader, out io.Writer) *Server {
	return &Server{
		store: store,
		dec:   msgpack.NewDecoder(in),
		enc:   msgpack.NewEncoder(out),
	}
}

// Start processes requests until the input stream closes.
func (s *Server) Start() error {
	log.Debug("Starting IPC server.")
	s.send(Response{Status: "ready"})

	for {
		var req Request
		if err := s.dec.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			log.Errorf("Decoding request: %v", err)
			return err
		}
		s.handle(req)
	}
}

func (s *Server) handle(req Request) {
	start := time.Now()
	var resp Response
	switch req.Op {
	case "candidates":
		resp = s.handleCandidates(req)
	case "codes":
		resp = s.handleCodes(req)
	case "encode":
		resp = s.handleEncode(req)
	case "health":
		resp = Response{Status: "ok"}
	default:
		resp = Response{Status: "error", Error: fmt.Sprintf("unknown op: %s", req.Op)}
	}
	resp.ID = req.ID
	resp.TimeTaken = time.Since(start).Microseconds()
	s.send(resp)
}

// handleCandidates returns the candidate list under one exact code, in the
// stored priority order.
func (s *Server) handleCandidates(req Request) Response {
	if !dict.IsCode(req.Code) {
		return Response{Status: "error", Error: "missing or invalid 'c' parameter"}
	}
	words := s.store.Words[req.Code]
	candidates := make([]Candidate, len(words))
	for i, w := range words {
		candidates[i] = Candidate{Word: w, Rank: i + 1}
	}
	return Response{Status: "ok", Candidates: candidates, Count: len(candidates)}
}

// handleCodes returns the codes starting with the requested prefix, using
// the store's patricia index.
func (s *Server) handleCodes(req Request) Response {
	if req.Prefix != "" && !dict.IsCode(req.Prefix) {
		return Response{Status: "error", Error: "invalid 'p' parameter"}
	}
	limit := req.Limit
	if limit < 1 {
		limit = defaultCodeLimit
	}
	codes := s.store.Index.CodesWithPrefix(req.Prefix)
	if len(codes) > limit {
		codes = codes[:limit]
	}
	return Response{Status: "ok", Codes: codes, Count: len(codes)}
}

// handleEncode generates a code for a word from the character table.
// Missing characters come back in order instead of a code.
func (s *Server) handleEncode(req Request) Response {
	if req.Word == "" {
		return Response{Status: "error", Error: "missing 'w' parameter"}
	}
	code, missing := dict.Generate(req.Word, s.store.Chars)
	if len(missing) > 0 {
		chars := make([]string, len(missing))
		for i, r := range missing {
			chars[i] = string(r)
		}
		return Response{Status: "incomplete", Missing: chars}
	}
	return Response{Status: "ok", Code: code}
}

func (s *Server) send(resp Response) {
	if err := s.enc.Encode(resp); err != nil {
		log.Errorf("Encoding response: %v", err)
	}
}
