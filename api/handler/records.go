package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/showformatterpro/showformatterpro/internal/database"
	"github.com/showformatterpro/showformatterpro/internal/model"
)

// RecordsHandler 已落库解析结果的查询处理器
type RecordsHandler struct{}

// NewRecordsHandler 创建查询处理器
func NewRecordsHandler() *RecordsHandler {
	return &RecordsHandler{}
}

// ListTasks 按时间倒序返回格式化任务
func (h *RecordsHandler) ListTasks(c *gin.Context) {
	db := database.GetDB()
	if db == nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Code: "DB_NOT_READY", Message: "数据库未初始化"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 500 {
		limit = 50
	}

	var tasks []model.ParseTask
	if err := db.Order("created_at DESC").Limit(limit).Find(&tasks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Code: "QUERY_FAILED", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

// ListRecords 按表名查询落库记录，可选 task_id 过滤
func (h *RecordsHandler) ListRecords(c *gin.Context) {
	db := database.GetDB()
	if db == nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Code: "DB_NOT_READY", Message: "数据库未初始化"})
		return
	}

	table := c.Param("table")
	taskID := c.Query("task_id")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "200"))
	if limit <= 0 || limit > 2000 {
		limit = 200
	}

	query := db.Limit(limit)
	if taskID != "" {
		query = query.Where("task_id = ?", taskID)
	}

	// 表名白名单，避免任意表查询
	var (
		rows interface{}
		err  error
	)
	switch table {
	case "cdp_neighbors":
		var items []model.CdpNeighbor
		err = query.Find(&items).Error
		rows = items
	case "interface_details":
		var items []model.InterfaceDetail
		err = query.Find(&items).Error
		rows = items
	case "interface_status":
		var items []model.InterfaceStatus
		err = query.Find(&items).Error
		rows = items
	case "route_entries":
		var items []model.RouteEntry
		err = query.Find(&items).Error
		rows = items
	case "syslog_messages":
		var items []model.SyslogMessage
		err = query.Find(&items).Error
		rows = items
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{Code: "UNKNOWN_TABLE", Message: "未知表名: " + table})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Code: "QUERY_FAILED", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"table": table, "records": rows})
}
