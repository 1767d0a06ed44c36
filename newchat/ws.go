package newchat

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"pasarin/db"
	"pasarin/middleware"
	"pasarin/models"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// inboundPayload is what clients send over the socket.
type inboundPayload struct {
	Action string `json:"action"` // "chat"
	Text   string `json:"text,omitempty"`
}

// outboundPayload is what we broadcast to every client in a room.
type outboundPayload struct {
	Action    string `json:"action"`
	ID        string `json:"id,omitempty"`
	Room      string `json:"room,omitempty"`
	SenderID  string `json:"senderId,omitempty"`
	Text      string `json:"text,omitempty"`
	FileURL   string `json:"fileUrl,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// BroadcastMessage pushes a stored message to everyone connected to its
// thread. Socket sends, REST sends and uploads all go through here so a
// participant with an open connection sees the message without reconnecting.
func (h *Hub) BroadcastMessage(m models.Message) {
	out := outboundPayload{
		Action:    "chat",
		ID:        m.ID.Hex(),
		Room:      m.ChatID,
		SenderID:  m.UserID,
		Text:      m.Text,
		FileURL:   m.FileURL,
		Timestamp: m.CreatedAt.Unix(),
	}
	if data, err := json.Marshal(out); err == nil {
		h.Broadcast(m.ChatID, data)
	}
}

func authorizeMembership(userID, room string) bool {
	oid, err := primitive.ObjectIDFromHex(room)
	if err != nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	cnt, _ := db.ChatsCollection.CountDocuments(ctx, bson.M{"_id": oid, "users": userID})
	return cnt > 0
}

// WebSocketHandler upgrades the connection and joins the caller to a thread.
// Browsers cannot set headers on websocket requests, so the JWT rides in the
// token query parameter.
func WebSocketHandler(hub *Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		room := ps.ByName("room")

		claims, err := middleware.ValidateJWT("Bearer " + r.URL.Query().Get("token"))
		if err != nil || claims.UserID == "" {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		if !authorizeMembership(claims.UserID, room) {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("upgrade:", err)
			return
		}

		client := newClient(conn, room, claims.UserID)

		// replay the last 30 messages, oldest first
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			opts := options.Find().
				SetSort(bson.D{{Key: "createdAt", Value: -1}}).
				SetLimit(30)

			cur, err := db.MessagesCollection.Find(ctx, bson.M{"chatId": room}, opts)
			if err != nil {
				log.Println("history find:", err)
				return
			}
			defer cur.Close(ctx)

			var history []models.Message
			if err := cur.All(ctx, &history); err != nil {
				log.Println("history decode:", err)
				return
			}
			for i := len(history) - 1; i >= 0; i-- {
				m := history[i]
				out := outboundPayload{
					Action:    "chat",
					ID:        m.ID.Hex(),
					Room:      m.ChatID,
					SenderID:  m.UserID,
					Text:      m.Text,
					FileURL:   m.FileURL,
					Timestamp: m.CreatedAt.Unix(),
				}
				if data, err := json.Marshal(out); err == nil {
					if !client.deliver(data) {
						return
					}
				}
			}
		}()

		hub.register <- client
		go writePump(client)
		go readPump(client, hub)
	}
}

func writePump(c *Client) {
	defer c.Conn.Close()
	for {
		select {
		case msg := <-c.Send:
			if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}

func readPump(c *Client, hub *Hub) {
	defer func() {
		select {
		case hub.unregister <- c:
		case <-hub.done:
		}
		c.Conn.Close()
	}()

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			break
		}

		var in inboundPayload
		if err := json.Unmarshal(raw, &in); err != nil {
			log.Println("invalid payload:", err)
			continue
		}
		if in.Action != "chat" || in.Text == "" {
			continue
		}

		now := time.Now()
		msg := models.Message{
			ChatID:    c.Room,
			UserID:    c.UserID,
			Text:      in.Text,
			CreatedAt: now,
		}
		res, err := db.MessagesCollection.InsertOne(context.Background(), msg)
		if err != nil {
			log.Println("insert:", err)
			continue
		}
		if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
			msg.ID = oid
		}
		db.ChatsCollection.UpdateOne(context.Background(),
			bson.M{"_id": mustOID(c.Room)},
			bson.M{"$set": bson.M{"lastMessageAt": now}},
		)

		hub.BroadcastMessage(msg)
	}
}

func mustOID(hex string) primitive.ObjectID {
	oid, _ := primitive.ObjectIDFromHex(hex)
	return oid
}
