package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"boardman-api/internal/service"
)

func authTestRouter(parser TokenParser, pending bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	mw := Auth(parser)
	if pending {
		mw = PendingAuth(parser)
	}
	r.GET("/protected", mw, func(c *gin.Context) {
		body := gin.H{}
		if v, ok := c.Get("user_id"); ok {
			body["userId"] = v.(uuid.UUID).String()
		}
		if _, ok := c.Get("claims"); ok {
			body["hasClaims"] = true
		}
		c.JSON(http.StatusOK, body)
	})
	return r
}

func getWithCookie(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuth(t *testing.T) {
	tokens := service.NewTokenManager("test-secret")
	userID := uuid.New()

	sessionToken, err := tokens.IssueSession(userID, "gho_test")
	if err != nil {
		t.Fatalf("IssueSession() error = %v", err)
	}
	pendingToken, err := tokens.IssuePending("new@example.com", "")
	if err != nil {
		t.Fatalf("IssuePending() error = %v", err)
	}
	foreignToken, err := service.NewTokenManager("other-secret").IssueSession(userID, "")
	if err != nil {
		t.Fatalf("IssueSession() error = %v", err)
	}

	tests := []struct {
		name       string
		token      string
		wantStatus int
	}{
		{
			name:       "valid session token passes",
			token:      sessionToken,
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing cookie rejected",
			token:      "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "garbage token rejected",
			token:      "not-a-jwt",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "token signed with another secret rejected",
			token:      foreignToken,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "pending token rejected until verified",
			token:      pendingToken,
			wantStatus: http.StatusUnauthorized,
		},
	}

	r := authTestRouter(tokens, false)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := getWithCookie(r, tt.token)
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d, body %s", w.Code, tt.wantStatus, w.Body.String())
			}
			if tt.wantStatus == http.StatusOK {
				want := `"userId":"` + userID.String() + `"`
				if body := w.Body.String(); !strings.Contains(body, want) {
					t.Errorf("body = %s, want user id %s", body, userID)
				}
			}
		})
	}
}

func TestPendingAuth(t *testing.T) {
	tokens := service.NewTokenManager("test-secret")

	pendingToken, err := tokens.IssuePending("new@example.com", "")
	if err != nil {
		t.Fatalf("IssuePending() error = %v", err)
	}

	r := authTestRouter(tokens, true)

	// A pre-verification token is enough here
	w := getWithCookie(r, pendingToken)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body %s", w.Code, http.StatusOK, w.Body.String())
	}
	if body := w.Body.String(); !strings.Contains(body, `"hasClaims":true`) {
		t.Errorf("body = %s, want claims in context", body)
	}

	// But the cookie is still required
	w = getWithCookie(r, "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestAuth_PendingMessage(t *testing.T) {
	tokens := service.NewTokenManager("test-secret")
	pendingToken, err := tokens.IssuePending("new@example.com", "")
	if err != nil {
		t.Fatalf("IssuePending() error = %v", err)
	}

	r := authTestRouter(tokens, false)
	w := getWithCookie(r, pendingToken)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
	if body := w.Body.String(); !strings.Contains(body, "Account not verified") {
		t.Errorf("body = %s, want unverified-account message", body)
	}
}
