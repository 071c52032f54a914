// Package server поднимает опциональный HTTP-интерфейс наблюдения:
// веб-зрители по WebSocket плюс служебные маршруты. Интерфейс строго
// пассивен - в игру отсюда не попадает ни одной команды, поэтому
// однопоточная модель игрового цикла не нарушается.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/leoxie2000/nuggets-hemlock-main/internal/network"
	"github.com/leoxie2000/nuggets-hemlock-main/internal/version"
	"github.com/leoxie2000/nuggets-hemlock-main/pkg/logger"
)

type Server struct {
	Hub  *network.Broadcaster
	Port string
}

func New(hub *network.Broadcaster, port string) *Server {
	return &Server{
		Hub:  hub,
		Port: port,
	}
}

// Run запускает HTTP сервер. Блокируется; запускать в горутине.
func (s *Server) Run() error {
	mux := http.NewServeMux()

	mux.HandleFunc("/ws", enableCORS(s.handleWS))
	mux.HandleFunc("/health", enableCORS(s.handleHealth))
	mux.HandleFunc("/version", enableCORS(s.handleVersion))
	mux.HandleFunc("/debug/game", enableCORS(s.handleDebugGame))

	logger.Log.Infof("viewer interface on :%s", s.Port)
	return http.ListenAndServe(":"+s.Port, mux)
}

func enableCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Разрешаем запросы со страницы зрителя.
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		next(w, r)
	}
}

// handleWS подключает нового веб-зрителя.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Error("upgrade error:", err)
		return
	}

	viewer := NewViewer(s.Hub, conn)

	go viewer.writePump()
	go viewer.readPump()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(version.Info())
}

// handleDebugGame отдает последний опубликованный кадр игры.
func (s *Server) handleDebugGame(w http.ResponseWriter, r *http.Request) {
	frame, ok := s.Hub.Last()
	if !ok {
		http.Error(w, "no state yet", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(frame)
}
