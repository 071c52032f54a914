package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/leoxie2000/nuggets-hemlock-main/internal/network"
	"github.com/leoxie2000/nuggets-hemlock-main/pkg/api"
	"github.com/leoxie2000/nuggets-hemlock-main/pkg/logger"
	"github.com/leoxie2000/nuggets-hemlock-main/pkg/utils"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Viewer - одна WebSocket-сессия веб-зрителя. Зритель только получает
// кадры; все, что он присылает, игнорируется (readPump нужен лишь для
// обработки ping/pong и закрытия).
type Viewer struct {
	SessionID string
	Hub       *network.Broadcaster
	Conn      *websocket.Conn
	Frames    chan api.ViewerFrame
}

func NewViewer(hub *network.Broadcaster, conn *websocket.Conn) *Viewer {
	id := utils.GenerateID()
	logger.Log.WithField("session", id).Info("viewer connected")
	return &Viewer{
		SessionID: id,
		Hub:       hub,
		Conn:      conn,
		Frames:    hub.Register(id),
	}
}

// readPump выбрасывает входящие сообщения и замечает закрытие сессии.
func (v *Viewer) readPump() {
	defer func() {
		v.Hub.Unregister(v.SessionID)
		v.Conn.Close()
		logger.Log.WithField("session", v.SessionID).Info("viewer disconnected")
	}()

	v.Conn.SetReadLimit(512)
	if err := v.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		logger.Log.WithError(err).Warn("failed to set read deadline")
	}
	v.Conn.SetPongHandler(func(string) error {
		return v.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := v.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Log.WithError(err).Debug("viewer read error")
			}
			return
		}
	}
}

// writePump шлет кадры зрителю и поддерживает соединение пингами.
func (v *Viewer) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		v.Conn.Close()
	}()

	for {
		select {
		case frame, ok := <-v.Frames:
			if err := v.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				// Хаб закрыл канал.
				if err := v.Conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					logger.Log.WithError(err).Debug("write close failed")
				}
				return
			}
			if err := v.Conn.WriteJSON(frame); err != nil {
				logger.Log.WithError(err).Debug("write frame failed")
				return
			}

		case <-ticker.C:
			if err := v.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set ping write deadline")
			}
			if err := v.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
