package filemgr

import (
	"context"
	"net/http"
	"strings"
	"time"

	"pasarin/db"
	"pasarin/models"
	"pasarin/mq"
	"pasarin/rdx"
	"pasarin/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type entityMeta struct {
	collection  *mongo.Collection
	keyField    string
	imageField  string
	cachePrefix string
	ownerField  string
	entity      EntityType
	picType     PictureType
}

func getEntityMeta(entityType string) (entityMeta, bool) {
	switch strings.ToLower(entityType) {
	case "product":
		return entityMeta{db.ProductsCollection, "productId", "images", "product:", "sellerId", EntityProduct, PicPhoto}, true
	case "store":
		return entityMeta{db.StoresCollection, "storeId", "logo", "store:", "ownerId", EntityStore, PicBanner}, true
	default:
		return entityMeta{}, false
	}
}

// UploadImages stores uploaded images for a product or store the caller owns
// and appends the stored filenames to the entity's image field.
func UploadImages(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	entityType := ps.ByName("entitytype")
	entityID := ps.ByName("entityid")

	meta, ok := getEntityMeta(entityType)
	if !ok {
		utils.RespondWithError(w, http.StatusBadRequest, "Unsupported entity type")
		return
	}

	filter := bson.M{meta.keyField: entityID, meta.ownerField: userID}
	count, err := meta.collection.CountDocuments(ctx, filter)
	if err != nil || count == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Not found")
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	saved, err := SaveFormFiles(r.MultipartForm, "images", meta.entity, meta.picType, true)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	var update bson.M
	if meta.imageField == "images" {
		update = bson.M{"$push": bson.M{"images": bson.M{"$each": saved}}, "$set": bson.M{"updatedAt": time.Now()}}
	} else {
		update = bson.M{"$set": bson.M{meta.imageField: saved[0], "updatedAt": time.Now()}}
	}
	if _, err := meta.collection.UpdateOne(ctx, filter, update); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to attach images")
		return
	}

	rdx.RdxDel(meta.cachePrefix + entityID)
	mq.Emit(ctx, "images-uploaded", models.Index{
		EntityType: entityType,
		EntityId:   entityID,
		Method:     "PATCH",
	})

	utils.RespondWithData(w, http.StatusCreated, utils.M{"files": saved})
}
