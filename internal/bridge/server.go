package bridge

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// Request is one line of the line-delimited JSON protocol.
type Request struct {
	ID      int64           `json:"id"`
	Op      string          `json:"op"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response answers one request. Exactly one of Result and Error is set
// when OK is true or false respectively; a null Result with OK true is a
// lookup that matched nothing.
type Response struct {
	ID     int64      `json:"id"`
	OK     bool       `json:"ok"`
	Result any        `json:"result,omitempty"`
	Error  *WireError `json:"error,omitempty"`
}

// WireError is the serialized form of an operation error.
type WireError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Serve reads line-delimited JSON requests from r and writes one response
// line per request to w, in order. Requests are dispatched one at a time;
// a malformed line produces an error response rather than ending the
// session. Serve returns when r is exhausted or w fails.
func (h *Handler) Serve(r io.Reader, w io.Writer, log *logrus.Logger) error {
	if log == nil {
		log = logrus.StandardLogger()
	}
	enc := json.NewEncoder(w)
	scanner := bufio.NewScanner(r)
	// Block content can be large; allow lines well beyond the default.
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req Request
		if err := json.Unmarshal(line, &req); err != nil {
			resp := Response{Error: &WireError{Code: CodeBadRequest, Message: "malformed request"}}
			if err := enc.Encode(resp); err != nil {
				return fmt.Errorf("writing response: %w", err)
			}
			continue
		}

		result, err := h.Invoke(req.Op, req.Payload)
		resp := Response{ID: req.ID}
		if err != nil {
			resp.Error = &WireError{Code: ErrorCode(err), Message: err.Error()}
			log.WithError(err).WithField("op", req.Op).Debug("operation failed")
		} else {
			resp.OK = true
			resp.Result = result
		}
		if err := enc.Encode(resp); err != nil {
			return fmt.Errorf("writing response: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading requests: %w", err)
	}
	return nil
}
