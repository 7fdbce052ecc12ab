package utils

import (
	"fmt"
	"sync"

	"github.com/gofiber/websocket/v2"
)

// Live notification push. One connection per user; a reconnect replaces
// the previous socket.
var (
	wsMu      sync.RWMutex
	wsClients = make(map[string]*websocket.Conn)
)

func RegisterClient(userID string, conn *websocket.Conn) {
	wsMu.Lock()
	defer wsMu.Unlock()

	if old, ok := wsClients[userID]; ok {
		old.Close()
	}
	wsClients[userID] = conn
}

func RemoveClient(userID string, conn *websocket.Conn) {
	wsMu.Lock()
	defer wsMu.Unlock()

	if wsClients[userID] == conn {
		delete(wsClients, userID)
	}
}

func SendPersonalMessageToClient(userID string, message string) error {
	wsMu.RLock()
	conn, ok := wsClients[userID]
	wsMu.RUnlock()

	if !ok {
		return fmt.Errorf("client %s is not connected", userID)
	}

	return conn.WriteMessage(websocket.TextMessage, []byte(message))
}
