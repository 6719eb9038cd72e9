package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/showformatterpro/showformatterpro/internal/database"
	"github.com/showformatterpro/showformatterpro/internal/service"
	"github.com/showformatterpro/showformatterpro/pkg/logger"
)

// ErrorResponse 统一错误响应
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// FormatHandler 回显格式化处理器
type FormatHandler struct {
	formatService *service.FormatService
}

// NewFormatHandler 创建格式化处理器
func NewFormatHandler(formatService *service.FormatService) *FormatHandler {
	return &FormatHandler{formatService: formatService}
}

// Health 健康检查（含数据库状态）
func (h *FormatHandler) Health(c *gin.Context) {
	dbStatus := "ok"
	if err := database.Health(); err != nil {
		dbStatus = err.Error()
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"database": dbStatus,
	})
}

// Commands 返回指定平台支持格式化的命令
func (h *FormatHandler) Commands(c *gin.Context) {
	platform := c.DefaultQuery("platform", "cisco_ios")
	c.JSON(http.StatusOK, gin.H{
		"platform": platform,
		"commands": h.formatService.Commands(platform),
	})
}

// FormatText 格式化一份回显文本
func (h *FormatHandler) FormatText(c *gin.Context) {
	var req service.FormatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warnf("Invalid format request: %v", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Code: "INVALID_PARAMS", Message: "请求参数无效: " + err.Error()})
		return
	}

	result, err := h.formatService.FormatText(c.Request.Context(), req)
	if err != nil {
		logger.Errorf("Format execution failed: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Code: "FORMAT_FAILED", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// FormatFiles 批量格式化服务器本地的回显文件
func (h *FormatHandler) FormatFiles(c *gin.Context) {
	var req struct {
		Files []service.FormatFileRequest `json:"files"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Code: "INVALID_PARAMS", Message: "请求参数无效: " + err.Error()})
		return
	}
	if len(req.Files) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Code: "INVALID_PARAMS", Message: "files 不能为空"})
		return
	}

	results := h.formatService.FormatFiles(c.Request.Context(), req.Files)
	c.JSON(http.StatusOK, gin.H{"results": results})
}

// FormatFetch 在线拉取设备回显并格式化
func (h *FormatHandler) FormatFetch(c *gin.Context) {
	var req service.FetchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Code: "INVALID_PARAMS", Message: "请求参数无效: " + err.Error()})
		return
	}

	result, err := h.formatService.FormatFetch(c.Request.Context(), req)
	if err != nil {
		logger.Errorf("Fetch format failed: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Code: "FETCH_FAILED", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// RouteDiff 路由表差分
func (h *FormatHandler) RouteDiff(c *gin.Context) {
	var req service.RouteDiffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Code: "INVALID_PARAMS", Message: "请求参数无效: " + err.Error()})
		return
	}

	result, err := h.formatService.DiffRoutes(c.Request.Context(), req)
	if err != nil {
		logger.Errorf("Route diff failed: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Code: "DIFF_FAILED", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}
