package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Harsh-BH/gauntlet/internal/domain"
	"github.com/Harsh-BH/gauntlet/internal/usecase"
)

const (
	pollInterval   = 500 * time.Millisecond
	maxStreamTime  = 5 * time.Minute
	writeWaitLimit = 5 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // browser clients are served from other origins
	},
}

// WebSocketHandler streams submission status changes.
type WebSocketHandler struct {
	getUC  *usecase.GetSubmissionUsecase
	logger *zap.Logger
}

// NewWebSocketHandler creates a new WebSocketHandler.
func NewWebSocketHandler(getUC *usecase.GetSubmissionUsecase, logger *zap.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		getUC:  getUC,
		logger: logger,
	}
}

// Stream handles GET /api/v1/submissions/:id/stream (WebSocket upgrade). A message is sent
// whenever the status changes; the socket closes once the submission is terminal.
func (h *WebSocketHandler) Stream(c *gin.Context) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission ID format"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("WebSocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(c.Request.Context(), maxStreamTime)
	defer cancel()

	// Reading is required to process control frames; any error means the client left.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	h.logger.Debug("WebSocket connection opened", zap.String("submission_id", idStr))

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	var last domain.SubmissionStatus
	for {
		sub, err := h.getUC.Execute(ctx, id)
		if err != nil {
			msg := "Internal server error"
			if errors.Is(err, domain.ErrSubmissionNotFound) {
				msg = "Submission not found"
			}
			h.write(conn, gin.H{"error": msg})
			return
		}

		if sub.Status != last {
			if err := h.write(conn, sub); err != nil {
				h.logger.Debug("WebSocket write failed (client disconnected)", zap.Error(err))
				return
			}
			last = sub.Status
		}

		if sub.Status.IsTerminal() {
			h.logger.Debug("Submission reached terminal state, closing WebSocket", zap.String("submission_id", idStr))
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, string(sub.Status)),
				time.Now().Add(writeWaitLimit))
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (h *WebSocketHandler) write(conn *websocket.Conn, v any) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWaitLimit))
	return conn.WriteJSON(v)
}
