package newchat

import (
	"context"
	"net/http"
	"path"
	"time"

	"pasarin/db"
	"pasarin/filemgr"
	"pasarin/models"
	"pasarin/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UploadHandler accepts a multipart attachment for a thread, stores it via
// the file manager and broadcasts the resulting message to the room.
func UploadHandler(hub *Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		userID := utils.GetUserIDFromRequest(r)

		if err := r.ParseMultipartForm(32 << 20); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid multipart form")
			return
		}

		room := r.FormValue("chat")
		if room == "" || !authorizeMembership(userID, room) {
			utils.RespondWithError(w, http.StatusForbidden, "You are not part of this chat")
			return
		}

		saved, err := filemgr.SaveFormFile(r.MultipartForm, "file", filemgr.EntityChat, filemgr.PicFile, true)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		now := time.Now()
		msg := models.Message{
			ChatID:    room,
			UserID:    userID,
			FileURL:   path.Join("/uploads/chat/files", saved),
			FileType:  path.Ext(saved),
			CreatedAt: now,
		}
		res, err := db.MessagesCollection.InsertOne(ctx, msg)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to persist attachment")
			return
		}
		if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
			msg.ID = oid
		}
		db.ChatsCollection.UpdateOne(ctx, bson.M{"_id": mustOID(room)}, bson.M{"$set": bson.M{"lastMessageAt": now}})

		hub.BroadcastMessage(msg)

		utils.RespondWithData(w, http.StatusCreated, msg)
	}
}
