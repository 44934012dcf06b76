package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"ecommerce-backend/internal/auth"
)

func runRequireSignIn(t *testing.T, header string) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/v1/auth/user-auth", nil)
	if header != "" {
		c.Request.Header.Set("Authorization", header)
	}

	RequireSignIn("test-secret")(c)
	return w, c
}

func TestRequireSignInAcceptsRawToken(t *testing.T) {
	userID := primitive.NewObjectID()
	token, err := auth.IssueToken(userID, "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("IssueToken returned error: %v", err)
	}

	// The client sends the raw token, no "Bearer " prefix.
	w, c := runRequireSignIn(t, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected pass-through, got %d: %s", w.Code, w.Body.String())
	}

	got, ok := c.Get("userId")
	if !ok || got.(primitive.ObjectID) != userID {
		t.Fatalf("expected userId %s in context, got %v", userID.Hex(), got)
	}
}

func TestRequireSignInRejectsMissingToken(t *testing.T) {
	w, _ := runRequireSignIn(t, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestRequireSignInRejectsBearerPrefixedToken(t *testing.T) {
	token, err := auth.IssueToken(primitive.NewObjectID(), "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("IssueToken returned error: %v", err)
	}

	w, _ := runRequireSignIn(t, "Bearer "+token)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for prefixed token, got %d", w.Code)
	}
}

func TestRequireSignInRejectsForeignSignature(t *testing.T) {
	token, err := auth.IssueToken(primitive.NewObjectID(), "other-secret", time.Hour)
	if err != nil {
		t.Fatalf("IssueToken returned error: %v", err)
	}

	w, _ := runRequireSignIn(t, token)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for foreign signature, got %d", w.Code)
	}
}
