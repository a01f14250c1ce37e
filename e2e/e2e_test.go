//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"gorm.io/gorm"

	"trip-planner-go/internal/config"
	"trip-planner-go/internal/db"
	budgetdomain "trip-planner-go/internal/domain/budget"
	exportdomain "trip-planner-go/internal/domain/export"
	itinerarydomain "trip-planner-go/internal/domain/itinerary"
	tripdomain "trip-planner-go/internal/domain/trip"
	userdomain "trip-planner-go/internal/domain/user"
	weatherdomain "trip-planner-go/internal/domain/weather"
	"trip-planner-go/internal/integrations/openmeteo"
	budgetrepo "trip-planner-go/internal/repository/postgres/budget"
	exportrepo "trip-planner-go/internal/repository/postgres/export"
	itineraryrepo "trip-planner-go/internal/repository/postgres/itinerary"
	triprepo "trip-planner-go/internal/repository/postgres/trip"
	userrepo "trip-planner-go/internal/repository/postgres/user"
	weatherrepo "trip-planner-go/internal/repository/postgres/weather"
	"trip-planner-go/internal/transport/httpserver"
	"trip-planner-go/internal/transport/httpserver/handler"
	authhandler "trip-planner-go/internal/transport/httpserver/handler/auth"
	budgethandler "trip-planner-go/internal/transport/httpserver/handler/budget"
	commonhandler "trip-planner-go/internal/transport/httpserver/handler/common"
	itineraryhandler "trip-planner-go/internal/transport/httpserver/handler/itinerary"
	tripshandler "trip-planner-go/internal/transport/httpserver/handler/trips"
	"trip-planner-go/pkg/logger"
)

type testEnv struct {
	server        *httptest.Server
	weatherServer *httptest.Server
	db            *gorm.DB
}

func setupE2E(t *testing.T) *testEnv {
	t.Helper()

	dsn := os.Getenv("E2E_DB_DSN")
	if dsn == "" {
		t.Skip("E2E_DB_DSN not set; skipping e2e tests")
	}

	weatherServer := newWeatherServer(t)

	log := logger.NewFromEnv()
	cfg := config.Config{
		CORSOrigins: []string{"http://localhost:5173"},
		DB:          config.DBConfig{DSN: dsn},
		Auth: config.AuthConfig{
			SecretKey:      "e2e-secret",
			AccessTokenTTL: time.Hour,
		},
		Weather: config.WeatherConfig{
			GeocodingURL: weatherServer.URL + "/v1/search",
			ForecastURL:  weatherServer.URL + "/v1/forecast",
			Timeout:      2 * time.Second,
		},
	}

	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		t.Fatalf("db connect: %v", err)
	}

	if err := db.Migrate(dbConn); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	if err := cleanDB(dbConn); err != nil {
		t.Fatalf("clean db: %v", err)
	}

	users := userdomain.NewService(userrepo.NewPostgres(dbConn), cfg.Auth.SecretKey, cfg.Auth.AccessTokenTTL)
	trips := tripdomain.NewService(triprepo.NewPostgres(dbConn))
	itinerary := itinerarydomain.NewService(itineraryrepo.NewPostgres(dbConn))
	budget := budgetdomain.NewService(budgetrepo.NewPostgres(dbConn))
	weather := weatherdomain.NewService(openmeteo.NewClient(cfg.Weather), weatherrepo.NewPostgres(dbConn), log)
	export := exportdomain.NewService(exportrepo.NewPostgres(dbConn))

	handlers := &handler.Handlers{
		Common:    commonhandler.New(),
		Auth:      authhandler.New(users, log),
		Trips:     tripshandler.New(trips, weather, export, log),
		Itinerary: itineraryhandler.New(trips, itinerary, log),
		Budget:    budgethandler.New(trips, budget, log),
	}

	router := httpserver.NewRouter(cfg, handlers, users)
	server := httptest.NewServer(router)

	return &testEnv{server: server, weatherServer: weatherServer, db: dbConn}
}

func (e *testEnv) Close() {
	e.server.Close()
	e.weatherServer.Close()
	sqlDB, err := e.db.DB()
	if err == nil {
		_ = sqlDB.Close()
	}
}

// newWeatherServer fakes the geocoding and forecast endpoints. "Nowhereville"
// geocodes to nothing; every other city gets a fixed two-day forecast with
// one severe rain day.
func newWeatherServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasPrefix(r.URL.Path, "/v1/search"):
			if r.URL.Query().Get("name") == "Nowhereville" {
				_, _ = w.Write([]byte(`{}`))
				return
			}
			_, _ = w.Write([]byte(`{"results":[{"latitude":38.72,"longitude":-9.14}]}`))
		case strings.HasPrefix(r.URL.Path, "/v1/forecast"):
			start := r.URL.Query().Get("start_date")
			next, _ := time.Parse("2006-01-02", start)
			second := next.AddDate(0, 0, 1).Format("2006-01-02")
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"daily": map[string]interface{}{
					"time":                          []string{start, second},
					"temperature_2m_max":            []float64{22.5, 24},
					"temperature_2m_min":            []float64{14, 15},
					"precipitation_probability_max": []float64{85, 10},
				},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func cleanDB(dbConn *gorm.DB) error {
	return dbConn.WithContext(context.Background()).Exec(
		"TRUNCATE TABLE weather_alerts, expenses, budget_envelopes, events, trip_destinations, locations, trip_members, trips, users RESTART IDENTITY CASCADE",
	).Error
}

func requestJSON(t *testing.T, client *http.Client, method, url, token string, payload interface{}) (*http.Response, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}

	return resp, respBody
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type userResponse struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

type authResponse struct {
	User  userResponse  `json:"user"`
	Token tokenResponse `json:"token"`
}

type tripResponse struct {
	ID          uint   `json:"id"`
	OwnerID     uint   `json:"owner_id"`
	Name        string `json:"name"`
	Destination string `json:"destination"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

type memberResponse struct {
	ID     uint   `json:"id"`
	TripID uint   `json:"trip_id"`
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
}

type weatherDayResponse struct {
	Date       string  `json:"date"`
	TempMax    float64 `json:"temp_max"`
	TempMin    float64 `json:"temp_min"`
	PrecipProb int     `json:"precip_prob"`
	Summary    string  `json:"summary"`
	Advice     string  `json:"advice"`
}

type tripWeatherResponse struct {
	City      string               `json:"city"`
	StartDate string               `json:"start_date"`
	EndDate   string               `json:"end_date"`
	Days      []weatherDayResponse `json:"days"`
}

func registerUser(t *testing.T, client *http.Client, baseURL, email, username string) (userResponse, string) {
	t.Helper()
	resp, body := requestJSON(t, client, http.MethodPost, baseURL+"/auth/register", "", map[string]string{
		"email":    email,
		"username": username,
		"password": "secret123",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d: %s", resp.StatusCode, string(body))
	}
	var auth authResponse
	if err := json.Unmarshal(body, &auth); err != nil {
		t.Fatalf("decode register: %v", err)
	}
	return auth.User, auth.Token.AccessToken
}

func createTrip(t *testing.T, client *http.Client, baseURL, token, destination string) tripResponse {
	t.Helper()
	resp, body := requestJSON(t, client, http.MethodPost, baseURL+"/trips", token, map[string]interface{}{
		"name":        "Summer Trip",
		"destination": destination,
		"start_date":  "2025-06-01",
		"end_date":    "2025-06-07",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create trip: expected 201, got %d: %s", resp.StatusCode, string(body))
	}
	var trip tripResponse
	if err := json.Unmarshal(body, &trip); err != nil {
		t.Fatalf("decode trip: %v", err)
	}
	return trip
}

func TestE2EAuthFlow(t *testing.T) {
	env := setupE2E(t)
	defer env.Close()

	client := &http.Client{Timeout: 5 * time.Second}

	registered, token := registerUser(t, client, env.server.URL, "alice@example.com", "alice")

	resp, body := requestJSON(t, client, http.MethodGet, env.server.URL+"/auth/me", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, string(body))
	}
	var me userResponse
	if err := json.Unmarshal(body, &me); err != nil {
		t.Fatalf("decode me: %v", err)
	}
	if me.ID != registered.ID || me.Email != "alice@example.com" {
		t.Fatalf("unexpected me payload: %+v", me)
	}

	resp, body = requestJSON(t, client, http.MethodPost, env.server.URL+"/auth/register", "", map[string]string{
		"email":    "alice@example.com",
		"username": "alice2",
		"password": "secret123",
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", resp.StatusCode, string(body))
	}
	var errResp errorEnvelope
	if err := json.Unmarshal(body, &errResp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if errResp.Error.Code != "email_taken" {
		t.Fatalf("expected email_taken, got %q", errResp.Error.Code)
	}

	resp, body = requestJSON(t, client, http.MethodPost, env.server.URL+"/auth/login", "", map[string]string{
		"username": "alice",
		"password": "wrong",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", resp.StatusCode, string(body))
	}
}

func TestE2ETripVisibilityAndMembers(t *testing.T) {
	env := setupE2E(t)
	defer env.Close()

	client := &http.Client{Timeout: 5 * time.Second}

	_, ownerToken := registerUser(t, client, env.server.URL, "owner@example.com", "owner")
	member, memberToken := registerUser(t, client, env.server.URL, "member@example.com", "member")

	trip := createTrip(t, client, env.server.URL, ownerToken, "Lisbon")

	// Stranger sees 403, missing trip sees 404.
	resp, body := requestJSON(t, client, http.MethodGet, env.server.URL+"/trips/1", memberToken, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for stranger, got %d: %s", resp.StatusCode, string(body))
	}
	resp, body = requestJSON(t, client, http.MethodGet, env.server.URL+"/trips/9999", memberToken, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for missing trip, got %d: %s", resp.StatusCode, string(body))
	}

	// Owner adds the member; a second POST for the same user updates the
	// role without creating a duplicate.
	resp, body = requestJSON(t, client, http.MethodPost, env.server.URL+"/trips/1/members", ownerToken, map[string]interface{}{
		"user_id": member.ID,
		"role":    "viewer",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.StatusCode, string(body))
	}
	resp, body = requestJSON(t, client, http.MethodPost, env.server.URL+"/trips/1/members", ownerToken, map[string]interface{}{
		"user_id": member.ID,
		"role":    "editor",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201 on upsert, got %d: %s", resp.StatusCode, string(body))
	}

	resp, body = requestJSON(t, client, http.MethodGet, env.server.URL+"/trips/1/members", ownerToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, string(body))
	}
	var members []memberResponse
	if err := json.Unmarshal(body, &members); err != nil {
		t.Fatalf("decode members: %v", err)
	}
	if len(members) != 1 {
		t.Fatalf("expected 1 member, got %d", len(members))
	}
	if members[0].Role != "editor" {
		t.Fatalf("expected role editor, got %q", members[0].Role)
	}

	// Member now sees the trip in their list.
	resp, body = requestJSON(t, client, http.MethodGet, env.server.URL+"/trips", memberToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, string(body))
	}
	var visible []tripResponse
	if err := json.Unmarshal(body, &visible); err != nil {
		t.Fatalf("decode trips: %v", err)
	}
	if len(visible) != 1 || visible[0].ID != trip.ID {
		t.Fatalf("expected shared trip visible, got %+v", visible)
	}

	// Member cannot update; owner can.
	resp, body = requestJSON(t, client, http.MethodPatch, env.server.URL+"/trips/1", memberToken, map[string]string{"name": "Nope"})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for member patch, got %d: %s", resp.StatusCode, string(body))
	}
	resp, body = requestJSON(t, client, http.MethodPatch, env.server.URL+"/trips/1", ownerToken, map[string]string{"name": "Lisbon Week"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, string(body))
	}
	var updated tripResponse
	if err := json.Unmarshal(body, &updated); err != nil {
		t.Fatalf("decode trip: %v", err)
	}
	if updated.Name != "Lisbon Week" || updated.Destination != "Lisbon" {
		t.Fatalf("unexpected patched trip: %+v", updated)
	}

	// Removing an absent member is 404.
	resp, body = requestJSON(t, client, http.MethodDelete, env.server.URL+"/trips/1/members/999", ownerToken, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", resp.StatusCode, string(body))
	}
	resp, _ = requestJSON(t, client, http.MethodDelete, env.server.URL+"/trips/1/members/"+itoa(member.ID), ownerToken, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}
}

func TestE2EWeatherAndExport(t *testing.T) {
	env := setupE2E(t)
	defer env.Close()

	client := &http.Client{Timeout: 5 * time.Second}

	_, token := registerUser(t, client, env.server.URL, "owner@example.com", "owner")
	createTrip(t, client, env.server.URL, token, "Lisbon")

	resp, body := requestJSON(t, client, http.MethodGet, env.server.URL+"/trips/1/weather", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, string(body))
	}
	var weatherResp tripWeatherResponse
	if err := json.Unmarshal(body, &weatherResp); err != nil {
		t.Fatalf("decode weather: %v", err)
	}
	if weatherResp.City != "Lisbon" || len(weatherResp.Days) != 2 {
		t.Fatalf("unexpected weather payload: %+v", weatherResp)
	}
	if weatherResp.Days[0].Summary != "Rainy" {
		t.Fatalf("expected Rainy first day, got %q", weatherResp.Days[0].Summary)
	}

	// The severe rain day must be persisted exactly once even after a
	// second fetch.
	resp, _ = requestJSON(t, client, http.MethodGet, env.server.URL+"/trips/1/weather", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 on refetch, got %d", resp.StatusCode)
	}
	var alertCount int64
	if err := env.db.Table("weather_alerts").Where("trip_id = ?", 1).Count(&alertCount).Error; err != nil {
		t.Fatalf("count alerts: %v", err)
	}
	if alertCount != 1 {
		t.Fatalf("expected 1 alert row, got %d", alertCount)
	}

	// Ungeocodable destination is a 404, not a 500.
	createTrip(t, client, env.server.URL, token, "Nowhereville")
	resp, body = requestJSON(t, client, http.MethodGet, env.server.URL+"/trips/2/weather", token, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", resp.StatusCode, string(body))
	}

	resp, body = requestJSON(t, client, http.MethodGet, env.server.URL+"/trips/1/export/pdf", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, string(body))
	}
	if got := resp.Header.Get("Content-Type"); got != "application/pdf" {
		t.Fatalf("expected application/pdf, got %q", got)
	}
	if !bytes.HasPrefix(body, []byte("%PDF")) {
		t.Fatalf("expected PDF payload")
	}
}

func TestE2EItineraryAndBudget(t *testing.T) {
	env := setupE2E(t)
	defer env.Close()

	client := &http.Client{Timeout: 5 * time.Second}

	_, token := registerUser(t, client, env.server.URL, "owner@example.com", "owner")
	createTrip(t, client, env.server.URL, token, "Lisbon")

	resp, body := requestJSON(t, client, http.MethodPost, env.server.URL+"/locations", token, map[string]interface{}{
		"name": "Belem Tower",
		"type": "sight",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.StatusCode, string(body))
	}

	resp, body = requestJSON(t, client, http.MethodPost, env.server.URL+"/trips/1/destinations", token, map[string]interface{}{
		"location_id": 1,
		"sort_order":  1,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.StatusCode, string(body))
	}

	resp, body = requestJSON(t, client, http.MethodPost, env.server.URL+"/events", token, map[string]interface{}{
		"trip_id":    1,
		"date":       "2025-06-02",
		"start_time": "09:00",
		"title":      "Morning walk",
		"type":       "outdoor",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.StatusCode, string(body))
	}

	resp, body = requestJSON(t, client, http.MethodPost, env.server.URL+"/budget/envelopes", token, map[string]interface{}{
		"trip_id":        1,
		"category":       "Food",
		"planned_amount": 300,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.StatusCode, string(body))
	}

	// Expense without a currency defaults to USD.
	resp, body = requestJSON(t, client, http.MethodPost, env.server.URL+"/expenses", token, map[string]interface{}{
		"trip_id":       1,
		"envelope_id":   1,
		"description":   "Dinner",
		"amount":        42.5,
		"spent_at_date": "2025-06-02",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.StatusCode, string(body))
	}
	var expense struct {
		Currency string `json:"currency"`
	}
	if err := json.Unmarshal(body, &expense); err != nil {
		t.Fatalf("decode expense: %v", err)
	}
	if expense.Currency != "USD" {
		t.Fatalf("expected USD, got %q", expense.Currency)
	}

	// Deleting the trip cascades to every dependent table.
	resp, _ = requestJSON(t, client, http.MethodDelete, env.server.URL+"/trips/1", token, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}
	for _, table := range []string{"events", "trip_destinations", "budget_envelopes", "expenses"} {
		var count int64
		if err := env.db.Table(table).Count(&count).Error; err != nil {
			t.Fatalf("count %s: %v", table, err)
		}
		if count != 0 {
			t.Fatalf("expected %s emptied by cascade, got %d rows", table, count)
		}
	}
}

func itoa(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}
