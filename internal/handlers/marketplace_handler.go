package handlers

import (
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"marketplace-api/internal/cache"
	"marketplace-api/internal/schema"
	"marketplace-api/internal/store"
)

const (
	defaultLimit       = 50
	errMessageLimit    = 80
	categoriesCacheKey = "categories"
	categoriesCacheTTL = 2 * time.Minute
)

// Marketplace serves the document CRUD endpoints. The store gateway is
// nil when no database is configured; handlers then answer 500 and the
// diagnostic endpoint reports the degraded state instead of failing.
type Marketplace struct {
	store  store.Gateway
	cache  *cache.Cache
	dbName string
}

func NewMarketplace(gw store.Gateway, dbName string) *Marketplace {
	return &Marketplace{
		store:  gw,
		cache:  cache.Get(),
		dbName: dbName,
	}
}

// GET /
func (h *Marketplace) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Marketplace API running"})
}

// GET /schema
func (h *Marketplace) Schema(c *gin.Context) {
	c.JSON(http.StatusOK, schema.Describe())
}

// POST /products
func (h *Marketplace) CreateProduct(c *gin.Context) {
	if _, ok := h.createDocument(c, schema.Product); ok {
		h.cache.Delete(categoriesCacheKey)
	}
}

// GET /products?q=&category=&limit=
func (h *Marketplace) ListProducts(c *gin.Context) {
	filter := bson.M{}
	if q := c.Query("q"); q != "" {
		filter["title"] = bson.M{"$regex": q, "$options": "i"}
	}
	if cat := c.Query("category"); cat != "" && cat != "all" {
		filter["category"] = cat
	}
	h.listDocuments(c, schema.Product, filter)
}

// GET /products/:id
func (h *Marketplace) GetProduct(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database not available"})
		return
	}

	doc, err := h.store.FindByID(c.Request.Context(), schema.CollectionName(schema.Product.Name), c.Param("id"))
	switch err {
	case nil:
		c.JSON(http.StatusOK, publicDoc(doc))
	case store.ErrInvalidID:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product ID"})
	case store.ErrNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": truncate(err.Error(), errMessageLimit)})
	}
}

// GET /categories
func (h *Marketplace) ListCategories(c *gin.Context) {
	if cached, found := h.cache.GetValue(categoriesCacheKey); found {
		c.JSON(http.StatusOK, cached)
		return
	}

	if h.store == nil {
		c.JSON(http.StatusOK, []string{})
		return
	}

	values, err := h.store.Distinct(c.Request.Context(), schema.CollectionName(schema.Product.Name), "category")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": truncate(err.Error(), errMessageLimit)})
		return
	}

	seen := map[string]bool{}
	categories := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		categories = append(categories, v)
	}
	sort.Strings(categories)

	h.cache.Set(categoriesCacheKey, categories, categoriesCacheTTL)
	c.JSON(http.StatusOK, categories)
}

// POST /orders
func (h *Marketplace) CreateOrder(c *gin.Context) {
	h.createDocument(c, schema.Order)
}

// GET /orders?limit=
func (h *Marketplace) ListOrders(c *gin.Context) {
	h.listDocuments(c, schema.Order, bson.M{})
}

// createDocument validates the payload against the schema and persists
// it into the schema's collection, answering {id} on success. It reports
// whether a document was written.
func (h *Marketplace) createDocument(c *gin.Context, s *schema.Schema) (string, bool) {
	if h.store == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database not available"})
		return "", false
	}

	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request_body", "msg": err.Error()})
		return "", false
	}

	doc, fieldErrs := s.Validate(payload)
	if fieldErrs != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_failed", "fields": fieldErrs})
		return "", false
	}

	id, err := h.store.Insert(c.Request.Context(), schema.CollectionName(s.Name), doc)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": truncate(err.Error(), errMessageLimit)})
		return "", false
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
	return id, true
}

func (h *Marketplace) listDocuments(c *gin.Context, s *schema.Schema, filter bson.M) {
	if h.store == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database not available"})
		return
	}

	docs, err := h.store.Find(c.Request.Context(), schema.CollectionName(s.Name), filter, parseLimit(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": truncate(err.Error(), errMessageLimit)})
		return
	}

	out := make([]bson.M, 0, len(docs))
	for _, doc := range docs {
		out = append(out, publicDoc(doc))
	}
	c.JSON(http.StatusOK, out)
}

// publicDoc renames the internal _id to a public string id field.
func publicDoc(doc bson.M) bson.M {
	if oid, ok := doc["_id"].(primitive.ObjectID); ok {
		doc["id"] = oid.Hex()
	}
	delete(doc, "_id")
	return doc
}

func parseLimit(c *gin.Context) int64 {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if err != nil || limit < 1 {
		return defaultLimit
	}
	return int64(limit)
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
