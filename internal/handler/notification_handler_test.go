package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bubbles/config"
	"bubbles/internal/auth"
	"bubbles/internal/middleware"
	"bubbles/internal/models"
	"bubbles/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type fakeNotifStore struct {
	rows []*models.Notification
}

func (f *fakeNotifStore) Create(n *models.Notification) error {
	n.ID = uint(len(f.rows) + 1)
	n.CreatedAt = time.Now()
	f.rows = append(f.rows, n)
	return nil
}

func (f *fakeNotifStore) ListByRecipient(userID uint) ([]models.Notification, error) {
	var out []models.Notification
	for i := len(f.rows) - 1; i >= 0; i-- {
		if f.rows[i].RecipientID == userID {
			row := *f.rows[i]
			row.Actor = &models.User{ID: row.ActorID, Username: "actor"}
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeNotifStore) MarkAllRead(userID uint) error {
	for _, row := range f.rows {
		if row.RecipientID == userID {
			row.Read = true
		}
	}
	return nil
}

func (f *fakeNotifStore) UnreadCount(userID uint) (int64, error) {
	var count int64
	for _, row := range f.rows {
		if row.RecipientID == userID && !row.Read {
			count++
		}
	}
	return count, nil
}

type noBubbles struct{}

func (noBubbles) GetByID(id uint) (*models.BubbleWithUser, error) {
	return nil, gorm.ErrRecordNotFound
}

func newNotificationRouter(t *testing.T, store *fakeNotifStore) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	jwtCfg := &config.JWTConfig{
		AccessSecret: "test-secret",
		AccessExpiry: time.Minute,
		Issuer:       "bubbles-test",
	}
	notifSvc := service.NewNotificationService(store, noBubbles{}, 80)
	h := NewNotificationHandler(notifSvc)
	r := gin.New()
	group := r.Group("/api/notifications")
	group.Use(middleware.AuthRequired(jwtCfg))
	group.GET("", h.List)
	group.POST("/mark-read", h.MarkAllRead)
	group.GET("/unread-count", h.UnreadCount)
	token, err := auth.GenerateAccessToken(jwtCfg, 1, "alice")
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	return r, token
}

func doRequest(r *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestNotificationRoutesRequireAuth(t *testing.T) {
	r, _ := newNotificationRouter(t, &fakeNotifStore{})
	for _, path := range []string{"/api/notifications", "/api/notifications/unread-count"} {
		rec := doRequest(r, http.MethodGet, path, "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s without token = %d, want 401", path, rec.Code)
		}
	}
}

func TestNotificationReadLifecycleOverHTTP(t *testing.T) {
	store := &fakeNotifStore{}
	for i := 0; i < 2; i++ {
		store.Create(&models.Notification{RecipientID: 1, ActorID: 2, Kind: "follow"})
	}
	r, token := newNotificationRouter(t, store)

	rec := doRequest(r, http.MethodGet, "/api/notifications/unread-count", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("unread-count = %d, want 200", rec.Code)
	}
	var count struct {
		Count int64 `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &count); err != nil || count.Count != 2 {
		t.Fatalf("count = %d (%v), want 2", count.Count, err)
	}

	if rec := doRequest(r, http.MethodPost, "/api/notifications/mark-read", token); rec.Code != http.StatusNoContent {
		t.Fatalf("mark-read = %d, want 204", rec.Code)
	}

	rec = doRequest(r, http.MethodGet, "/api/notifications/unread-count", token)
	if err := json.Unmarshal(rec.Body.Bytes(), &count); err != nil || count.Count != 0 {
		t.Fatalf("count after mark-read = %d (%v), want 0", count.Count, err)
	}

	rec = doRequest(r, http.MethodGet, "/api/notifications", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("list = %d, want 200", rec.Code)
	}
	var views []models.NotificationView
	if err := json.Unmarshal(rec.Body.Bytes(), &views); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("len = %d, want 2", len(views))
	}
	for _, v := range views {
		if !v.Read {
			t.Fatalf("notification %d still unread in list", v.ID)
		}
		if v.ActorSummary.Username != "actor" {
			t.Fatalf("actor summary missing: %+v", v)
		}
	}
}
