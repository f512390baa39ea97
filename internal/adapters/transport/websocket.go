package transport

import (
	"context"
	"encoding/json"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.trai.ch/nanoindent/internal/core/domain"
	"go.trai.ch/zerr"
)

// Client actions.
const (
	ActionProcess = "process"
	ActionScan    = "scan"
)

// maxPending bounds the messages a session may queue behind the one being handled.
const maxPending = 16

// Server message statuses.
const (
	StatusSession = "session"
	StatusSuccess = "success"
	StatusBatch   = "batch"
	StatusDone    = "done"
	StatusError   = "error"
)

// Message is a client request on the websocket. Request holds a domain.Request for
// process and a domain.ScanRequest for scan.
type Message struct {
	Action  string          `json:"action"`
	ID      string          `json:"id,omitempty"`
	Request json.RawMessage `json:"request"`
}

// Reply is a server message on the websocket.
type Reply struct {
	Status        string `json:"status"`
	Action        string `json:"action,omitempty"`
	ID            string `json:"id,omitempty"`
	SessionID     string `json:"session_id,omitempty"`
	Data          any    `json:"data,omitempty"`
	Message       string `json:"message,omitempty"`
	Configuration bool   `json:"configuration_error,omitempty"`
}

func errorMessage(err error) Reply {
	return Reply{
		Status:        StatusError,
		Message:       err.Error(),
		Configuration: domain.IsConfigurationError(err),
	}
}

// serveWS serves one session. Messages are handled in order; work in progress is
// cancelled when the client disconnects.
func (s *Server) serveWS(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	session := uuid.NewString()
	s.logger.Info("websocket session started", "session_id", session)
	defer s.logger.Info("websocket session ended", "session_id", session)

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	if err := conn.WriteJSON(Reply{Status: StatusSession, SessionID: session}); err != nil {
		return
	}

	// The reader never blocks on the queue, so a disconnect is seen while a message
	// is being handled. A client that outruns the queue loses its session.
	msgs := make(chan Message, maxPending)
	go func() {
		defer cancel()
		defer close(msgs)
		for {
			var m Message
			if err := conn.ReadJSON(&m); err != nil {
				return
			}
			select {
			case msgs <- m:
			default:
				s.logger.Warn("websocket queue full", "session_id", session, "pending", maxPending)
				return
			}
		}
	}()

	for m := range msgs {
		if ctx.Err() != nil {
			return
		}
		if err := s.dispatch(ctx, conn, m); err != nil {
			s.logger.Warn("websocket write failed", "session_id", session, "error", err)
			return
		}
	}
}

// dispatch handles one message. The returned error is a write failure on conn.
func (s *Server) dispatch(ctx context.Context, conn *websocket.Conn, m Message) error {
	reply := func(r Reply) error {
		r.Action = m.Action
		r.ID = m.ID
		return conn.WriteJSON(r)
	}
	fail := func(err error) error {
		if !domain.IsConfigurationError(err) && ctx.Err() == nil {
			s.logger.Error(err)
		}
		return reply(errorMessage(err))
	}

	switch m.Action {
	case ActionProcess:
		var req domain.Request
		if err := json.Unmarshal(m.Request, &req); err != nil {
			return fail(zerr.Wrap(domain.ErrInvalidRequest, err.Error()))
		}
		resp, err := s.pipeline.Process(ctx, &req)
		if err != nil {
			return fail(err)
		}
		return reply(Reply{Status: StatusSuccess, Data: resp})

	case ActionScan:
		var req domain.ScanRequest
		if err := json.Unmarshal(m.Request, &req); err != nil {
			return fail(zerr.Wrap(domain.ErrInvalidRequest, err.Error()))
		}
		err := s.pipeline.Scan(ctx, &req, func(chunk domain.ScanChunk) error {
			return reply(Reply{Status: StatusBatch, Data: chunk})
		})
		if err != nil {
			return fail(err)
		}
		return reply(Reply{Status: StatusDone})

	default:
		return fail(zerr.With(zerr.Wrap(domain.ErrInvalidRequest, "unknown action"), "action", m.Action))
	}
}
