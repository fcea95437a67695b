package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/shakirkaki-dev/fudpin-backend-v3/auth"
	"github.com/shakirkaki-dev/fudpin-backend-v3/config"
	"github.com/shakirkaki-dev/fudpin-backend-v3/database"
	"github.com/shakirkaki-dev/fudpin-backend-v3/models"
	"github.com/shakirkaki-dev/fudpin-backend-v3/routes"
)

type testEnv struct {
	router *gin.Engine
	db     *gorm.DB
	tokens *auth.Service
}

// newTestEnv wires the full router against a fresh in-memory database. The
// shared-cache DSN keeps gorm's pooled connections on the same database; the
// test name keeps databases isolated between tests.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		JWTSecret:       []byte("test_secret"),
		AccessTokenTTL:  time.Hour,
		RefreshTokenTTL: 24 * time.Hour,
	}
	tokens := auth.NewService(cfg)

	router := gin.New()
	routes.Setup(router, db, tokens)

	return &testEnv{router: router, db: db, tokens: tokens}
}

// do performs a request with an optional JSON body and bearer token.
func (e *testEnv) do(t *testing.T, method, path, bearer string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

type tokenTriple struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// register creates an account and returns its token pair.
func (e *testEnv) register(t *testing.T, name, email string) tokenTriple {
	t.Helper()
	w := e.do(t, http.MethodPost, "/auth/register", "", gin.H{
		"name":     name,
		"email":    email,
		"phone":    "9999999999",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var triple tokenTriple
	decode(t, w, &triple)
	return triple
}

// registerAdmin registers an account and promotes it to admin directly in
// the database (there is no public endpoint for that).
func (e *testEnv) registerAdmin(t *testing.T, name, email string) tokenTriple {
	t.Helper()
	triple := e.register(t, name, email)
	require.NoError(t, e.db.Model(&models.User{}).
		Where("email = ?", email).
		Update("role", models.RoleAdmin).Error)
	return triple
}

// seedRestaurant inserts a restaurant owned by the given user id.
func (e *testEnv) seedRestaurant(t *testing.T, ownerID uint, name string, lat, lng float64) models.Restaurant {
	t.Helper()
	r := models.Restaurant{
		OwnerID:   ownerID,
		Name:      name,
		Address:   "1 Test Street",
		Latitude:  lat,
		Longitude: lng,
		IsActive:  true,
	}
	require.NoError(t, e.db.Create(&r).Error)
	return r
}

// seedItem inserts a food item with optional variant prices.
func (e *testEnv) seedItem(t *testing.T, restaurantID uint, name string, available bool, prices ...float64) models.FoodItem {
	t.Helper()
	item := models.FoodItem{
		RestaurantID: restaurantID,
		Name:         name,
		IsAvailable:  available,
	}
	for i, p := range prices {
		item.Variants = append(item.Variants, models.FoodVariant{
			Name:  fmt.Sprintf("variant-%d", i+1),
			Price: p,
		})
	}
	require.NoError(t, e.db.Create(&item).Error)
	return item
}

func itoa(id uint) string {
	return fmt.Sprintf("%d", id)
}

// userID resolves the id behind an access token.
func (e *testEnv) userID(t *testing.T, triple tokenTriple) uint {
	t.Helper()
	id, err := e.tokens.ParseAccessToken(triple.AccessToken)
	require.NoError(t, err)
	return id
}
