// feed.go
package paymentControllers

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/pcstorehq/pcstore-api/models"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Connections register from their handler goroutines while broadcasts run on
// whichever request goroutine confirms a purchase, so the map needs the lock.
var (
	wsMu      sync.Mutex
	wsClients = make(map[*websocket.Conn]bool)
)

func registerFeedClient(conn *websocket.Conn) {
	wsMu.Lock()
	wsClients[conn] = true
	wsMu.Unlock()
}

func unregisterFeedClient(conn *websocket.Conn) {
	wsMu.Lock()
	delete(wsClients, conn)
	wsMu.Unlock()
}

// GET /api/purchases/ws
// Dashboard clients connect here and receive every confirmed purchase.
func PurchaseFeedHandler(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()
	registerFeedClient(conn)
	defer unregisterFeedClient(conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

func broadcastConfirmedPurchase(purchase models.Purchase) {
	data, err := json.Marshal(purchase)
	if err != nil {
		return
	}
	wsMu.Lock()
	defer wsMu.Unlock()
	for client := range wsClients {
		client.WriteMessage(websocket.TextMessage, data)
	}
}
