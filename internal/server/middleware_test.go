package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/vincentcrosswell-gif/truthradeo-sub000/internal/config"
	subscriptiondomain "github.com/vincentcrosswell-gif/truthradeo-sub000/internal/subscription/domain"
)

type fixedPlan struct {
	plan subscriptiondomain.Plan
}

func (f fixedPlan) GetPlan(context.Context, string) (subscriptiondomain.Plan, error) {
	return f.plan, nil
}

func (f fixedPlan) CreateCheckout(context.Context, subscriptiondomain.CheckoutRequest) (*subscriptiondomain.CheckoutResponse, error) {
	return nil, subscriptiondomain.ErrBillingUnavailable
}

func (f fixedPlan) ApplyBillingUpdate(context.Context, subscriptiondomain.BillingUpdate) error {
	return nil
}

const testJWTSecret = "unit-test-secret"

func testServer(plan subscriptiondomain.Plan) *Server {
	var cfg config.Config
	cfg.Auth.JWTSecret = testJWTSecret
	return &Server{
		cfg:    cfg,
		log:    zap.NewNop(),
		subSvc: fixedPlan{plan: plan},
	}
}

func signToken(t *testing.T, subject string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": subject})
	signed, err := token.SignedString([]byte(testJWTSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func errorCode(t *testing.T, body []byte) string {
	t.Helper()
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		t.Fatalf("decode error body %s: %v", body, err)
	}
	return envelope.Error.Code
}

func authedEngine(s *Server, required subscriptiondomain.Plan) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/probe", s.RequireAuth(), s.RequirePlan(required), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": UserID(c)})
	})
	return engine
}

func TestRequireAuthRejectsMissingToken(t *testing.T) {
	engine := authedEngine(testServer(subscriptiondomain.PlanFree), subscriptiondomain.PlanFree)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if code := errorCode(t, rec.Body.Bytes()); code != CodeUnauthenticated {
		t.Fatalf("code = %q", code)
	}
}

func TestRequireAuthRejectsBadSignature(t *testing.T) {
	engine := authedEngine(testServer(subscriptiondomain.PlanFree), subscriptiondomain.PlanFree)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "user-1"})
	signed, err := token.SignedString([]byte("wrong-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestRequirePlanBlocksBelowTier(t *testing.T) {
	engine := authedEngine(testServer(subscriptiondomain.PlanFree), subscriptiondomain.PlanRiverNorth)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "user-1"))
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	if code := errorCode(t, rec.Body.Bytes()); code != CodeUpgradeRequired {
		t.Fatalf("code = %q", code)
	}
}

func TestRequirePlanAllowsEqualAndHigherTier(t *testing.T) {
	for _, plan := range []subscriptiondomain.Plan{subscriptiondomain.PlanSouthLoop, subscriptiondomain.PlanTheLoop} {
		engine := authedEngine(testServer(plan), subscriptiondomain.PlanSouthLoop)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, "user-1"))
		engine.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("plan %s: status = %d, want 200", plan, rec.Code)
		}
	}
}

func TestRequireAuthExtractsSubject(t *testing.T) {
	engine := authedEngine(testServer(subscriptiondomain.PlanFree), subscriptiondomain.PlanFree)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "user-42"))
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body struct {
		User string `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.User != "user-42" {
		t.Fatalf("user = %q", body.User)
	}
}
