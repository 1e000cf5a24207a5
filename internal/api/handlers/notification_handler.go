package handlers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/linskybing/dynamic-forms/internal/api/middleware"
	"github.com/linskybing/dynamic-forms/internal/application"
	"github.com/linskybing/dynamic-forms/internal/notify"
	"github.com/linskybing/dynamic-forms/pkg/response"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	// Non-browser clients send no Origin.
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || middleware.AllowedOrigin(origin)
	},
}

type NotificationHandler struct {
	svc *application.NotificationService
	hub *notify.Hub
}

func NewNotificationHandler(svc *application.NotificationService, hub *notify.Hub) *NotificationHandler {
	return &NotificationHandler{svc: svc, hub: hub}
}

// List godoc
// @Summary In-app notifications for the caller and the caller's role
// @Tags notifications
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Maximum rows"
// @Success 200 {array} notification.Notification
// @Router /notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	items, err := h.svc.List(c.Request.Context(), user, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.svc.MarkRead(c.Request.Context(), user, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.MessageResponse{Message: "Notification marked as read"})
}

// Stream pushes events addressed to the caller over a websocket until the
// peer goes away.
func (h *NotificationHandler) Stream(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if h.hub == nil {
		c.JSON(http.StatusServiceUnavailable, response.ErrorResponse{Error: "live notifications are disabled"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Notification websocket upgrade failed for %s: %v", user.ID, err)
		return
	}

	sub := h.hub.Subscribe(user)
	defer h.hub.Unsubscribe(sub)

	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	done := make(chan struct{})
	go func() {
		defer func() { _ = conn.Close() }()

		pingTicker := time.NewTicker(pingPeriod)
		defer pingTicker.Stop()

		for {
			select {
			case msg, ok := <-sub.C:
				if !ok {
					_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
					return
				}
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
					return
				}
			case <-pingTicker.C:
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("Notification websocket error for %s: %v", user.ID, err)
			}
			break
		}
	}
	close(done)
}
