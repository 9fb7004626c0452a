package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fisherfans/fisherfans-backend/internal/app"
	boatHttp "github.com/fisherfans/fisherfans-backend/internal/boat/http"
	"github.com/fisherfans/fisherfans-backend/internal/config"
	"github.com/fisherfans/fisherfans-backend/internal/db"
	logHttp "github.com/fisherfans/fisherfans-backend/internal/fishlog/http"
	resHttp "github.com/fisherfans/fisherfans-backend/internal/reservation/http"
	tripHttp "github.com/fisherfans/fisherfans-backend/internal/trip/http"
	userHttp "github.com/fisherfans/fisherfans-backend/internal/user/http"
)

var (
	testRouter *gin.Engine
	testPool   *pgxpool.Pool
)

func TestMain(m *testing.M) {
	// Attempt to load .env from the repository root
	if err := godotenv.Load("../../.env"); err != nil {
		log.Printf("No .env file found or failed to load: %v", err)
	}

	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		log.Printf("TEST_DB_DSN is not set, skipping end-to-end tests")
		os.Exit(0)
	}

	ctx := context.Background()
	var err error
	testPool, err = db.NewPool(ctx, dsn)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v", err)
	}
	if err := db.Migrate(ctx, testPool); err != nil {
		log.Fatalf("Unable to migrate database: %v", err)
	}

	storageDir, err := os.MkdirTemp("", "fisherfans-storage")
	if err != nil {
		log.Fatalf("Unable to create storage dir: %v", err)
	}

	cfg := &config.Config{
		JWTSecret:         "test-secret",
		JWTAccessTokenTTL: 30 * time.Minute,
		BcryptCost:        4, // Lower cost for testing purposes
		StoragePath:       storageDir,
		UploadMaxBytes:    1 << 20,
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	container, err := app.NewContainer(ctx, cfg, testPool, logger)
	if err != nil {
		log.Fatalf("Unable to build container: %v", err)
	}
	testRouter = container.Router
	gin.SetMode(gin.TestMode)

	exitCode := m.Run()

	container.Close()
	testPool.Close()
	_ = os.RemoveAll(storageDir)
	os.Exit(exitCode)
}

func clearTables(t *testing.T) {
	t.Helper()
	_, err := testPool.Exec(context.Background(), "TRUNCATE TABLE public.users CASCADE")
	require.NoError(t, err, "Failed to clean tables")
}

func executeRequest(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reqBody []byte
	if body != nil {
		reqBody, _ = json.Marshal(body)
	}

	req, _ := http.NewRequest(method, path, bytes.NewBuffer(reqBody))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	testRouter.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

// register creates an account through the API and returns its token and id.
func register(t *testing.T, email string, licensed bool) (string, string) {
	t.Helper()
	body := map[string]any{"email": email, "password": "password123", "name": "Tester"}
	if licensed {
		body["boat_license"] = "LIC-" + email
	}
	w := executeRequest(http.MethodPost, "/v1/users", body, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	resp := decode[userHttp.LoginResponse](t, w)
	return resp.AccessToken, resp.User.ID
}

func promoteAdmin(t *testing.T, userID string) {
	t.Helper()
	_, err := testPool.Exec(context.Background(), "UPDATE public.users SET role = 'admin' WHERE id = $1", userID)
	require.NoError(t, err)
}

func day(offset int) string {
	return time.Now().AddDate(0, 0, offset).Format(time.DateOnly)
}

func createBoat(t *testing.T, token string, passengers int) boatHttp.BoatResponse {
	t.Helper()
	w := executeRequest(http.MethodPost, "/v1/boats", map[string]any{
		"name": "Marlin", "nb_passenger": passengers, "motor": "DIESEL", "license": "COASTAL",
		"boat_type": "CABIN", "equipment": []string{"GPS"},
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[boatHttp.BoatResponse](t, w)
}

func tripPayload(boatID string, passengers int, start, end string) map[string]any {
	return map[string]any{
		"boat_id": boatID, "title": "Dawn trolling", "trip_type": "DAILY", "pricing_type": "PER_PERSON",
		"dates":         []map[string]string{{"start": start, "end": end}},
		"schedules":     []map[string]string{{"departure": "06:00:00", "arrival": "11:00:00"}},
		"nb_passengers": passengers, "price": 40,
	}
}

func createTrip(t *testing.T, token, boatID string, passengers int) tripHttp.TripResponse {
	t.Helper()
	w := executeRequest(http.MethodPost, "/v1/trips", tripPayload(boatID, passengers, day(-1), day(30)), token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[tripHttp.TripResponse](t, w)
}

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func TestReservationCapacity(t *testing.T) {
	clearTables(t)
	skipperToken, _ := register(t, "skipper@capacity.test", true)
	renterToken, _ := register(t, "renter@capacity.test", false)
	otherToken, _ := register(t, "other@capacity.test", false)

	b := createBoat(t, skipperToken, 4)
	tr := createTrip(t, skipperToken, b.ID, 1)

	w := executeRequest(http.MethodPost, "/v1/reservations", map[string]any{
		"trip_id": tr.ID, "reservation_date": day(2), "nb_seats": 1,
	}, renterToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	res := decode[resHttp.ReservationResponse](t, w)
	assert.Equal(t, 40.0, res.TotalPrice)

	w = executeRequest(http.MethodPost, "/v1/reservations", map[string]any{
		"trip_id": tr.ID, "reservation_date": day(2), "nb_seats": 1,
	}, otherToken)
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode[errorBody](t, w)
	assert.Equal(t, "capacity_exceeded", body.Code)
	assert.Contains(t, body.Error, "0 remaining")

	// Another date has its own seats.
	w = executeRequest(http.MethodPost, "/v1/reservations", map[string]any{
		"trip_id": tr.ID, "reservation_date": day(3), "nb_seats": 1,
	}, otherToken)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	t.Run("organizer sees trip reservations", func(t *testing.T) {
		w := executeRequest(http.MethodGet, fmt.Sprintf("/v1/trips/%s/reservations", tr.ID), nil, skipperToken)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"total":2`)

		w = executeRequest(http.MethodGet, fmt.Sprintf("/v1/trips/%s/reservations", tr.ID), nil, renterToken)
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = executeRequest(http.MethodGet, "/v1/reservations/"+res.ID, nil, skipperToken)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestTripRules(t *testing.T) {
	clearTables(t)
	skipperToken, _ := register(t, "skipper@rules.test", true)
	strangerToken, _ := register(t, "stranger@rules.test", true)
	b := createBoat(t, skipperToken, 4)

	t.Run("single day range rejected", func(t *testing.T) {
		w := executeRequest(http.MethodPost, "/v1/trips", tripPayload(b.ID, 2, "2025-02-10", "2025-02-10"), skipperToken)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "invalid_date_range", decode[errorBody](t, w).Code)
	})

	t.Run("capacity above boat rejected", func(t *testing.T) {
		w := executeRequest(http.MethodPost, "/v1/trips", tripPayload(b.ID, 5, day(1), day(5)), skipperToken)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "capacity_exceeded", decode[errorBody](t, w).Code)
	})

	t.Run("foreign boat rejected", func(t *testing.T) {
		w := executeRequest(http.MethodPost, "/v1/trips", tripPayload(b.ID, 2, day(1), day(5)), strangerToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("only the organizer updates", func(t *testing.T) {
		tr := createTrip(t, skipperToken, b.ID, 2)

		w := executeRequest(http.MethodPatch, "/v1/trips/"+tr.ID, map[string]any{"title": "Hijacked"}, strangerToken)
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = executeRequest(http.MethodPatch, "/v1/trips/"+tr.ID, map[string]any{"title": "Sunset jigging"}, skipperToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "Sunset jigging", decode[tripHttp.TripResponse](t, w).Title)
	})
}

func TestReservationPastDate(t *testing.T) {
	clearTables(t)
	skipperToken, _ := register(t, "skipper@past.test", true)
	renterToken, _ := register(t, "renter@past.test", false)
	b := createBoat(t, skipperToken, 4)
	tr := createTrip(t, skipperToken, b.ID, 4)

	w := executeRequest(http.MethodPost, "/v1/reservations", map[string]any{
		"trip_id": tr.ID, "reservation_date": day(-1), "nb_seats": 1,
	}, renterToken)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "past_date", decode[errorBody](t, w).Code)

	w = executeRequest(http.MethodPost, "/v1/reservations", map[string]any{
		"trip_id": tr.ID, "reservation_date": day(60), "nb_seats": 1,
	}, renterToken)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "date_out_of_range", decode[errorBody](t, w).Code)
}

func TestUserDeleteCascades(t *testing.T) {
	clearTables(t)
	adminToken, adminID := register(t, "admin@cascade.test", false)
	promoteAdmin(t, adminID)
	skipperToken, skipperID := register(t, "skipper@cascade.test", true)

	b := createBoat(t, skipperToken, 4)
	tr := createTrip(t, skipperToken, b.ID, 4)

	w := executeRequest(http.MethodPost, "/v1/reservations", map[string]any{
		"trip_id": tr.ID, "reservation_date": day(1), "nb_seats": 2,
	}, skipperToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	res := decode[resHttp.ReservationResponse](t, w)

	w = executeRequest(http.MethodPost, "/v1/logs", map[string]any{
		"fish_name": "Sea bass", "catch_date": day(-3), "weight": 2.1,
	}, skipperToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	lg := decode[logHttp.LogResponse](t, w)

	w = executeRequest(http.MethodDelete, "/v1/users/"+skipperID, nil, adminToken)
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

	for _, path := range []string{
		"/v1/users/" + skipperID,
		"/v1/boats/" + b.ID,
		"/v1/trips/" + tr.ID,
		"/v1/reservations/" + res.ID,
		"/v1/logs/" + lg.ID,
	} {
		w := executeRequest(http.MethodGet, path, nil, adminToken)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
	}

	// The deleted user's token no longer resolves.
	w = executeRequest(http.MethodGet, "/v1/me", nil, skipperToken)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Registering the same email again does not revive the old token.
	_, newID := register(t, "skipper@cascade.test", true)
	assert.NotEqual(t, skipperID, newID)
	w = executeRequest(http.MethodGet, "/v1/me", nil, skipperToken)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogout(t *testing.T) {
	clearTables(t)
	token, _ := register(t, "angler@logout.test", false)

	w := executeRequest(http.MethodGet, "/v1/me", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	w = executeRequest(http.MethodPost, "/v1/logout", nil, token)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = executeRequest(http.MethodGet, "/v1/me", nil, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
