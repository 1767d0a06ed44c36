package chats

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"pasarin/db"
	"pasarin/models"
	"pasarin/mq"
	"pasarin/newchat"
	"pasarin/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetOrCreateChat returns the buyer↔seller thread for a store, creating it on
// first contact. A store owner cannot open a thread with themselves.
func GetOrCreateChat(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)

	var input struct {
		StoreID   string `json:"storeId"`
		ProductID string `json:"productId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.StoreID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "storeId is required")
		return
	}

	var store models.Store
	if err := db.StoresCollection.FindOne(ctx, bson.M{"storeId": input.StoreID}).Decode(&store); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Store not found")
		return
	}
	if store.OwnerID == userID {
		utils.RespondWithError(w, http.StatusBadRequest, "You cannot chat with your own store")
		return
	}

	var chat models.Chat
	err := db.ChatsCollection.FindOne(ctx, bson.M{"buyerId": userID, "storeId": input.StoreID}).Decode(&chat)
	if err == nil {
		utils.RespondWithData(w, http.StatusOK, chat)
		return
	}
	if err != mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch chat")
		return
	}

	now := time.Now()
	chat = models.Chat{
		Users:         []string{userID, store.OwnerID},
		BuyerID:       userID,
		SellerID:      store.OwnerID,
		StoreID:       input.StoreID,
		ProductID:     input.ProductID,
		CreatedAt:     now,
		LastMessageAt: now,
	}
	res, err := db.ChatsCollection.InsertOne(ctx, chat)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create chat")
		return
	}
	chat.ID = res.InsertedID.(primitive.ObjectID)

	mq.Notify(ctx, models.Notification{
		UserID:     store.OwnerID,
		Type:       "chat",
		Title:      "New conversation",
		Body:       "A buyer started a conversation with your store",
		EntityID:   chat.ID.Hex(),
		EntityType: "chat",
	})

	utils.RespondWithData(w, http.StatusCreated, chat)
}

// GetChats lists the caller's threads, most recently active first.
func GetChats(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	skip, limit := utils.ParsePagination(r, 20, 100)

	opts := options.Find().
		SetSort(bson.D{{Key: "lastMessageAt", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	chats, err := utils.FindAndDecode[models.Chat](ctx, db.ChatsCollection, bson.M{"users": userID}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch chats")
		return
	}

	utils.RespondWithData(w, http.StatusOK, chats)
}

// requireMember loads the chat and checks the caller belongs to it.
func requireMember(ctx context.Context, chatID, userID string) (*models.Chat, error) {
	oid, err := primitive.ObjectIDFromHex(chatID)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}
	var chat models.Chat
	if err := db.ChatsCollection.FindOne(ctx, bson.M{"_id": oid, "users": userID}).Decode(&chat); err != nil {
		return nil, err
	}
	return &chat, nil
}

// GetMessages returns a page of a thread's messages, oldest first.
func GetMessages(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	chatID := ps.ByName("chatid")

	if _, err := requireMember(ctx, chatID, userID); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Chat not found")
		return
	}

	skip, limit := utils.ParsePagination(r, 50, 200)
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: 1}}).
		SetSkip(skip).
		SetLimit(limit)

	msgs, err := utils.FindAndDecode[models.Message](ctx, db.MessagesCollection, bson.M{"chatId": chatID}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch messages")
		return
	}

	utils.RespondWithData(w, http.StatusOK, msgs)
}

// SendMessage appends a text message to a thread, pushes it to anyone
// connected over the websocket and notifies the other side.
func SendMessage(hub *newchat.Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		userID := utils.GetUserIDFromRequest(r)
		chatID := ps.ByName("chatid")

		chat, err := requireMember(ctx, chatID, userID)
		if err != nil {
			utils.RespondWithError(w, http.StatusNotFound, "Chat not found")
			return
		}

		var input struct {
			Text    string           `json:"text"`
			ReplyTo *models.ReplyRef `json:"replyTo"`
		}
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Text == "" {
			utils.RespondWithError(w, http.StatusBadRequest, "Message text is required")
			return
		}

		now := time.Now()
		msg := models.Message{
			ChatID:    chatID,
			UserID:    userID,
			Text:      input.Text,
			ReplyTo:   input.ReplyTo,
			CreatedAt: now,
		}
		res, err := db.MessagesCollection.InsertOne(ctx, msg)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to send message")
			return
		}
		msg.ID = res.InsertedID.(primitive.ObjectID)

		db.ChatsCollection.UpdateOne(ctx, bson.M{"_id": chat.ID}, bson.M{"$set": bson.M{"lastMessageAt": now}})

		hub.BroadcastMessage(msg)

		recipient := chat.BuyerID
		if userID == chat.BuyerID {
			recipient = chat.SellerID
		}
		mq.Notify(ctx, models.Notification{
			UserID:     recipient,
			Type:       "chat",
			Title:      "New message",
			Body:       input.Text,
			EntityID:   chatID,
			EntityType: "chat",
		})

		utils.RespondWithData(w, http.StatusCreated, msg)
	}
}
