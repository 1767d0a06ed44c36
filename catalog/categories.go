package catalog

import (
	"context"
	"net/http"
	"time"

	"pasarin/db"
	"pasarin/models"
	"pasarin/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func GetCategories(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	categories, err := utils.FindAndDecode[models.Category](ctx, db.CategoriesCollection, bson.M{},
		options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve categories")
		return
	}

	utils.RespondWithData(w, http.StatusOK, categories)
}

func GetCategoryProducts(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	categoryID := ps.ByName("categoryid")
	skip, limit := utils.ParsePagination(r, 20, 100)

	filter := bson.M{"categoryId": categoryID, "status": models.ProductActive}
	opts := options.Find().SetSkip(skip).SetLimit(limit).SetSort(bson.D{{Key: "createdAt", Value: -1}})

	products, err := utils.FindAndDecode[models.Product](ctx, db.ProductsCollection, filter, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve products")
		return
	}

	utils.RespondWithData(w, http.StatusOK, NewProductViews(products))
}
