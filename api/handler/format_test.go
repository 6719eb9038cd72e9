package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/showformatterpro/showformatterpro/internal/config"
	"github.com/showformatterpro/showformatterpro/internal/service"

	_ "github.com/showformatterpro/showformatterpro/addone/parse/platforms/cisco_ios"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := config.Default()
	h := NewFormatHandler(service.NewFormatService(cfg))

	r := gin.New()
	r.POST("/api/v1/format", h.FormatText)
	r.GET("/api/v1/format/commands", h.Commands)
	r.POST("/api/v1/route/diff", h.RouteDiff)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// TestFormatTextEndpoint 格式化接口的正常响应
func TestFormatTextEndpoint(t *testing.T) {
	r := newTestRouter()
	w := doJSON(t, r, http.MethodPost, "/api/v1/format", gin.H{
		"platform": "cisco_ios",
		"command":  "show logging",
		"raw":      "May 30 10:44:17.780: %LINK-3-UPDOWN: Interface GigabitEthernet1/0/1, changed state to up\n",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res service.FormatResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "syslog_messages", res.Table)
	require.Len(t, res.Records, 1)
	assert.Equal(t, "LINK", res.Records[0].Get("facility"))
}

// TestFormatTextEndpointUnsupported 未支持命令返回 FORMAT_FAILED
func TestFormatTextEndpointUnsupported(t *testing.T) {
	r := newTestRouter()
	w := doJSON(t, r, http.MethodPost, "/api/v1/format", gin.H{
		"platform": "cisco_ios",
		"command":  "show version",
		"raw":      "Cisco IOS Software",
	})
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var res ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "FORMAT_FAILED", res.Code)
}

// TestFormatTextEndpointBadJSON 非法请求体返回 INVALID_PARAMS
func TestFormatTextEndpointBadJSON(t *testing.T) {
	r := newTestRouter()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/format", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// TestCommandsEndpoint 平台命令清单
func TestCommandsEndpoint(t *testing.T) {
	r := newTestRouter()
	w := doJSON(t, r, http.MethodGet, "/api/v1/format/commands", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var res struct {
		Platform string   `json:"platform"`
		Commands []string `json:"commands"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "cisco_ios", res.Platform)
	assert.Contains(t, res.Commands, "show ip route")
}

// TestRouteDiffEndpoint 路由差分接口
func TestRouteDiffEndpoint(t *testing.T) {
	r := newTestRouter()
	w := doJSON(t, r, http.MethodPost, "/api/v1/route/diff", gin.H{
		"before": "C        10.245.2.0/30 is directly connected, GigabitEthernet0/0\n",
		"after":  "C        10.245.3.0/30 is directly connected, GigabitEthernet0/0\n",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res service.RouteDiffResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, 1, res.BeforeCount)
	require.Len(t, res.Removed, 1)
	assert.Equal(t, "10.245.2.0", res.Removed[0].Addr)
	require.Len(t, res.Added, 1)
	assert.Equal(t, "10.245.3.0", res.Added[0].Addr)
}
