package server

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/bastiangx/spaceserve/internal/logger"
	"github.com/bastiangx/spaceserve/pkg/config"
	"github.com/bastiangx/spaceserve/pkg/restore"
)

// Server handles the IPC for space restoration
type Server struct {
	restorer *restore.Restorer
	defaults restore.Params
	decoder  *msgpack.Decoder
	encoder  *msgpack.Encoder
	log      *log.Logger
}

// NewServer creates a restoration server using stdin/stdout for IPC.
// cfg supplies the default hyperparameters used when a request carries
// no overrides.
func NewServer(restorer *restore.Restorer, cfg *config.Config) *Server {
	return &Server{
		restorer: restorer,
		defaults: restore.Params{
			MaxWordLen: cfg.Restore.MaxWordLen,
			Lambda:     cfg.Restore.Lambda,
		},
		decoder: msgpack.NewDecoder(os.Stdin),
		encoder: msgpack.NewEncoder(os.Stdout),
		log:     logger.New("ipc"),
	}
}

// Start begins listening for IPC requests. Requests are handled
// synchronously; the loop ends on EOF. A decode failure means the frame
// boundaries are lost, so the stream cannot be resumed: an error frame
// goes out and the server stops.
func (s *Server) Start() error {
	s.log.Debug("Starting restore server.")

	for {
		var request RestoreRequest
		if err := s.decoder.Decode(&request); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			s.log.Errorf("Decoding request: %v", err)
			s.sendError("", "invalid msgpack request", 400)
			return fmt.Errorf("decoding request: %w", err)
		}
		s.handleRestore(request)
	}
}

// handleRestore processes a single restore request. Per-request
// hyperparameters override the configured defaults when present.
func (s *Server) handleRestore(request RestoreRequest) {
	params := s.defaults
	if request.MaxWordLen != 0 {
		params.MaxWordLen = request.MaxWordLen
	}
	if request.Lambda != 0 {
		params.Lambda = request.Lambda
	}

	start := time.Now()
	restored, err := s.restorer.Restore(request.Text, params)
	if err != nil {
		s.sendError(request.ID, err.Error(), 400)
		s.log.Debugf("Restore failed for request %s: %v", request.ID, err)
		return
	}
	elapsed := time.Since(start)

	wordCount := 0
	if restored != "" {
		wordCount = len(strings.Split(restored, " "))
	}

	s.sendResponse(RestoreResponse{
		ID:        request.ID,
		Restored:  restored,
		WordCount: wordCount,
		TimeTaken: elapsed.Microseconds(),
	})
}

// sendResponse encodes the given response to the client.
func (s *Server) sendResponse(response interface{}) {
	if err := s.encoder.Encode(response); err != nil {
		s.log.Errorf("Encoding response: %v", err)
	}
}

// sendError sends an error frame
func (s *Server) sendError(id, message string, code int) {
	s.sendResponse(RestoreError{
		ID:    id,
		Error: message,
		Code:  code,
	})
}
