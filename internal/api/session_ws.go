package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/terra-clan/maturity-engine/internal/assessment"
)

const (
	sessionReadLimit = 64 << 10
	sessionIdleLimit = 30 * time.Minute
	sessionWriteWait = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

var (
	errMissingOption  = errors.New("answer requires an option")
	errUnknownMessage = errors.New("unknown message type")
)

func (s *Server) handleAssessmentWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("failed to upgrade to websocket", "error", err)
		return
	}
	defer conn.Close()

	conn.SetReadLimit(sessionReadLimit)

	sessionID := uuid.New().String()
	session := newAssessmentSession(s.engine)

	slog.Info("assessment session connected", "session_id", sessionID, "remote_addr", r.RemoteAddr)

	if err := s.sendSessionState(conn, sessionID, session); err != nil {
		return
	}

	for {
		conn.SetReadDeadline(time.Now().Add(sessionIdleLimit))

		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Debug("websocket read error", "error", err, "session_id", sessionID)
			}
			break
		}

		var msg sessionMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			if s.sendSessionError(conn, "invalid_request", "invalid message format") != nil {
				break
			}
			continue
		}

		if err := session.apply(msg); err != nil {
			code, text := sessionErrorCode(err)
			slog.Warn("session message rejected", "session_id", sessionID, "type", msg.Type, "error", err)
			if s.sendSessionError(conn, code, text) != nil {
				break
			}
			continue
		}

		if err := s.sendSessionState(conn, sessionID, session); err != nil {
			break
		}
	}

	slog.Info("assessment session disconnected", "session_id", sessionID)
}

func sessionErrorCode(err error) (string, string) {
	var cerr *assessment.ClassificationError
	var serr *assessment.ScoringError

	switch {
	case errors.As(err, &cerr):
		return "classification_error", cerr.Error()
	case errors.As(err, &serr):
		return "scoring_error", serr.Error()
	case errors.Is(err, errMissingOption), errors.Is(err, errUnknownMessage):
		return "invalid_request", err.Error()
	default:
		return "internal_error", "something went wrong, please retry the assessment"
	}
}

func (s *Server) sendSessionState(conn *websocket.Conn, sessionID string, session *assessmentSession) error {
	state, err := session.state()
	if err != nil {
		slog.Error("failed to compute session state", "error", err, "session_id", sessionID)
		return s.sendSessionError(conn, "internal_error", "something went wrong, please retry the assessment")
	}
	state.SessionID = sessionID
	return s.sendSessionMessage(conn, state)
}

func (s *Server) sendSessionMessage(conn *websocket.Conn, msg interface{}) error {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("failed to marshal session message", "error", err)
		return err
	}
	conn.SetWriteDeadline(time.Now().Add(sessionWriteWait))
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		slog.Debug("failed to send session message", "error", err)
		return err
	}
	return nil
}

func (s *Server) sendSessionError(conn *websocket.Conn, code, message string) error {
	return s.sendSessionMessage(conn, sessionError{
		Type:    "error",
		Code:    code,
		Message: message,
	})
}
