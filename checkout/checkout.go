package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"pasarin/activity"
	"pasarin/db"
	"pasarin/models"
	"pasarin/mq"
	"pasarin/rdx"
	"pasarin/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// checkoutLockTTL bounds how long one user's checkout lock is held.
const checkoutLockTTL = 10 * time.Second

var errStockChanged = errors.New("stock changed during checkout")

// Checkout turns a list of {product, quantity, variant} lines into one
// pending order per store. All inserts and stock decrements run in a single
// transaction; any failure rolls everything back.
func Checkout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var input struct {
		Items           []Line `json:"items"`
		ShippingAddress string `json:"shippingAddress"`
		PaymentMethod   string `json:"paymentMethod"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if len(input.Items) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Checkout requires at least one item")
		return
	}
	if input.ShippingAddress == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Shipping address is required")
		return
	}
	if input.PaymentMethod == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Payment method is required")
		return
	}

	// One checkout per user at a time
	acquired, err := rdx.RdxSetNX("checkout_lock:"+userID, "1", checkoutLockTTL)
	if err != nil || !acquired {
		utils.RespondWithError(w, http.StatusTooManyRequests, "Checkout already in progress, please retry")
		return
	}
	defer func() {
		if _, err := rdx.RdxDel("checkout_lock:" + userID); err != nil {
			log.Println("checkout lock release error:", err)
		}
	}()

	products, err := loadProducts(ctx, input.Items)
	if err != nil {
		log.Println("Checkout loadProducts error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to resolve products")
		return
	}

	now := time.Now()
	orders, err := BuildPlan(input.Items, products, userID, input.ShippingAddress, input.PaymentMethod, now)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := persistOrders(ctx, orders); err != nil {
		if errors.Is(err, errStockChanged) {
			utils.RespondWithError(w, http.StatusBadRequest, "Insufficient stock for requested quantity")
			return
		}
		log.Println("Checkout transaction error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Checkout failed")
		return
	}

	afterCommit(userID, input.Items, products, orders)

	utils.RespondWithData(w, http.StatusCreated, orders)
}

func loadProducts(ctx context.Context, lines []Line) (map[string]models.Product, error) {
	ids := make([]string, 0, len(lines))
	for _, ln := range lines {
		ids = append(ids, ln.ProductID)
	}

	prods, err := utils.FindAndDecode[models.Product](ctx, db.ProductsCollection, bson.M{"productId": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}

	out := make(map[string]models.Product, len(prods))
	for _, p := range prods {
		out[p.ProductID] = p
	}
	return out, nil
}

// persistOrders inserts every order and decrements stock inside one
// transaction. The decrement is conditional on remaining stock, so a
// concurrent checkout cannot push a product negative; a zero ModifiedCount
// aborts and rolls back everything.
func persistOrders(ctx context.Context, orders []models.Order) error {
	session, err := db.Client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		for _, order := range orders {
			if _, err := db.OrdersCollection.InsertOne(sc, order); err != nil {
				return nil, err
			}
			for _, item := range order.Items {
				res, err := db.ProductsCollection.UpdateOne(sc,
					bson.M{"productId": item.ProductID, "stockQuantity": bson.M{"$gte": item.Quantity}},
					bson.M{"$inc": bson.M{"stockQuantity": -item.Quantity}},
				)
				if err != nil {
					return nil, err
				}
				if res.ModifiedCount == 0 {
					return nil, fmt.Errorf("%w: %s", errStockChanged, item.ProductName)
				}
			}
		}
		return nil, nil
	})
	return err
}

// afterCommit handles the best-effort side effects: cart cleanup, activity
// events, cache invalidation and seller notifications.
func afterCommit(userID string, lines []Line, products map[string]models.Product, orders []models.Order) {
	ctx := context.Background()

	for _, ln := range lines {
		if _, err := db.CartCollection.DeleteMany(ctx, bson.M{
			"userId":    userID,
			"productId": ln.ProductID,
			"variant":   ln.Variant,
		}); err != nil {
			log.Println("checkout cart cleanup error:", err)
		}
		if _, err := rdx.RdxDel("product:" + ln.ProductID); err != nil {
			log.Println("checkout cache invalidation error:", err)
		}

		p := products[ln.ProductID]
		activity.Record(ctx, models.Activity{
			UserID:    userID,
			Action:    models.ActivityOrder,
			ProductID: p.ProductID,
			StoreID:   p.StoreID,
		})
	}

	for _, order := range orders {
		var store models.Store
		if err := db.StoresCollection.FindOne(ctx, bson.M{"storeId": order.StoreID}).Decode(&store); err != nil {
			log.Println("checkout store lookup error:", err)
			continue
		}
		if err := mq.Notify(ctx, models.Notification{
			UserID:     store.OwnerID,
			Type:       "order-created",
			Title:      "New order " + order.OrderNumber,
			Body:       fmt.Sprintf("%d item(s), total %.2f", len(order.Items), order.TotalAmount),
			EntityID:   order.OrderID,
			EntityType: "order",
		}); err != nil {
			log.Println("checkout seller notify error:", err)
		}
	}
}
