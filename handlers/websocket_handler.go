package handlers

import (
	"log"
	"net/http"

	"github.com/Dosada05/league-system/fixtures"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// TODO: ограничить Origin доверенными доменами перед продакшеном
		return true
	},
}

type WebSocketHandler struct {
	hub *fixtures.Hub
}

func NewWebSocketHandler(hub *fixtures.Hub) *WebSocketHandler {
	return &WebSocketHandler{hub: hub}
}

// ServeCompetition подписывает клиента на события календаря соревнования.
func (h *WebSocketHandler) ServeCompetition(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "competition_"+chi.URLParam(r, "competitionID"))
}

// ServeVenue подписывает клиента на события бронирований площадки.
func (h *WebSocketHandler) ServeVenue(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "venue_"+chi.URLParam(r, "venueID"))
}

func (h *WebSocketHandler) serve(w http.ResponseWriter, r *http.Request, roomID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade сам отправляет HTTP-ошибку клиенту
		log.Printf("failed to upgrade connection for room %s: %v", roomID, err)
		return
	}

	client := &fixtures.Client{
		Hub:  h.hub,
		Conn: conn,
		Send: make(chan []byte, 256),
		Room: roomID,
	}
	client.Hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
