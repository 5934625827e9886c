package gintool

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	json "github.com/bytedance/sonic"
	"github.com/codearena/arena_controller/constants"
	"github.com/codearena/arena_controller/model"
	"github.com/codearena/arena_controller/pkg/logger"
	"github.com/codearena/arena_controller/web/jwt"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
	gin.DisableBindValidation()
}

type renameParam struct {
	model.CommonParam `json:"-"`

	RoomID string `uri:"room_id" binding:"required,len=6"`
	Name   string `json:"name" binding:"required"`
}

func withClaims(userID, username string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(constants.ContextUserClaimsKey, jwt.ArenaUserClaims{
			UserId:   userID,
			Username: username,
		})
	}
}

func TestWrapHandlerBindsAndExtractsOperator(t *testing.T) {
	t.Parallel()

	engine := gin.New()
	var got *renameParam
	engine.POST("/rooms/:room_id/name", withClaims("u1", "alice"),
		WrapHandler(func(c *gin.Context, param *renameParam) {
			got = param
			c.Status(http.StatusOK)
		}, logger.NewNopLogger()))

	req := httptest.NewRequest(http.MethodPost, "/rooms/AB12CD/name", strings.NewReader(`{"name":"决赛房"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if got == nil {
		t.Fatal("handler not invoked")
	}
	if got.RoomID != "AB12CD" || got.Name != "决赛房" {
		t.Fatalf("unexpected bound param %+v", got)
	}
	if got.Operator != "u1" || got.OperatorName != "alice" {
		t.Fatalf("expected operator extracted from claims, got %+v", got.CommonParam)
	}
}

func TestWrapHandlerValidatesAfterAllBinds(t *testing.T) {
	t.Parallel()

	engine := gin.New()
	engine.POST("/rooms/:room_id/name", withClaims("u1", "alice"),
		WrapHandler(func(c *gin.Context, param *renameParam) {
			c.Status(http.StatusOK)
		}, logger.NewNopLogger()))

	// JSON 体缺少 required 字段
	req := httptest.NewRequest(http.MethodPost, "/rooms/AB12CD/name", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var resp Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response failed: %v", err)
	}
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 response code, got %d", resp.Code)
	}
}

func TestWrapHandlerRejectsMissingClaims(t *testing.T) {
	t.Parallel()

	engine := gin.New()
	engine.POST("/rooms/:room_id/name",
		WrapHandler(func(c *gin.Context, param *renameParam) {
			c.Status(http.StatusOK)
		}, logger.NewNopLogger()))

	req := httptest.NewRequest(http.MethodPost, "/rooms/AB12CD/name", strings.NewReader(`{"name":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var resp Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response failed: %v", err)
	}
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 response code, got %d", resp.Code)
	}
}

func TestWrapWithoutBodyHandlerBindsQuery(t *testing.T) {
	t.Parallel()

	type exportParam struct {
		model.CommonParam `json:"-"`

		RoomID string `uri:"room_id" binding:"required,len=6"`
		Format string `form:"format" binding:"omitempty,oneof=csv xlsx"`
	}

	engine := gin.New()
	var got *exportParam
	engine.GET("/rooms/:room_id/export", withClaims("u1", "alice"),
		WrapWithoutBodyHandler(func(c *gin.Context, param *exportParam) {
			got = param
			c.Status(http.StatusOK)
		}, logger.NewNopLogger()))

	req := httptest.NewRequest(http.MethodGet, "/rooms/AB12CD/export?format=xlsx", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if got == nil || got.Format != "xlsx" || got.RoomID != "AB12CD" {
		t.Fatalf("unexpected bound param %+v", got)
	}
}
