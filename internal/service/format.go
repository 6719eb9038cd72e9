package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/showformatterpro/showformatterpro/addone/parse"
	"github.com/showformatterpro/showformatterpro/internal/config"
	"github.com/showformatterpro/showformatterpro/internal/database"
	"github.com/showformatterpro/showformatterpro/internal/model"
	"github.com/showformatterpro/showformatterpro/internal/util"
	"github.com/showformatterpro/showformatterpro/pkg/logger"
	sshpkg "github.com/showformatterpro/showformatterpro/pkg/ssh"
)

// ====== 请求/响应类型定义 ======

// FormatRequest 单份回显的格式化请求
type FormatRequest struct {
	Platform string `json:"platform"`
	Command  string `json:"command"`
	Raw      string `json:"raw"`
	// Source 输入来源标识（文件路径、"-" 或设备名），仅用于记录
	Source string `json:"source,omitempty"`
	// SaveDir 归档子目录；为空则不归档
	SaveDir string `json:"save_dir,omitempty"`
	// Filters 过滤条件，形如 "key=regex"，全部命中才保留
	Filters []string `json:"filters,omitempty"`
	// Persist 是否将解析结果落库
	Persist bool `json:"persist,omitempty"`
}

// FormatResult 格式化结果
type FormatResult struct {
	TaskID     string         `json:"task_id"`
	Platform   string         `json:"platform"`
	Command    string         `json:"command"`
	Table      string         `json:"table"`
	Fieldnames []string       `json:"fieldnames"`
	Records    []parse.Record `json:"records"`
	Stored     []StoredObject `json:"stored_objects,omitempty"`
}

// FormatFileRequest 批量文件格式化里的单个条目
type FormatFileRequest struct {
	Path     string   `json:"path"`
	Platform string   `json:"platform"`
	Command  string   `json:"command"`
	Filters  []string `json:"filters,omitempty"`
	Persist  bool     `json:"persist,omitempty"`
	SaveDir  string   `json:"save_dir,omitempty"`
}

// FormatFileResult 批量结果的单个条目
type FormatFileResult struct {
	Path   string        `json:"path"`
	Result *FormatResult `json:"result,omitempty"`
	Error  string        `json:"error,omitempty"`
}

// FetchRequest 从设备在线拉取回显并格式化
type FetchRequest struct {
	DeviceIP   string   `json:"device_ip"`
	DevicePort int      `json:"device_port,omitempty"`
	DeviceName string   `json:"device_name,omitempty"`
	Username   string   `json:"user_name"`
	Password   string   `json:"password"`
	Platform   string   `json:"platform"`
	Command    string   `json:"command"`
	Filters    []string `json:"filters,omitempty"`
	Persist    bool     `json:"persist,omitempty"`
	SaveDir    string   `json:"save_dir,omitempty"`
}

// FormatService 回显格式化服务
type FormatService struct {
	cfg    *config.Config
	writer StorageWriter

	taskMu  sync.Mutex
	taskSeq int
}

// NewFormatService 创建格式化服务
func NewFormatService(cfg *config.Config) *FormatService {
	return &FormatService{
		cfg:    cfg,
		writer: NewStorageWriter(cfg),
	}
}

// Start 启动服务
func (s *FormatService) Start(ctx context.Context) error {
	logger.Infof("Format service started, platforms: %s", strings.Join(parse.Platforms(), ","))
	return nil
}

// Stop 停止服务
func (s *FormatService) Stop() {}

// Commands 返回指定平台支持格式化的命令
func (s *FormatService) Commands(platform string) []string {
	return parse.Get(platform).Commands()
}

// FormatText 格式化一份回显文本
func (s *FormatService) FormatText(ctx context.Context, req FormatRequest) (*FormatResult, error) {
	taskID := s.nextTaskID()

	lines := s.NormalizeLines(req.Raw)
	pctx := parse.ParseContext{
		Platform: req.Platform,
		Command:  req.Command,
		TaskID:   taskID,
		Source:   req.Source,
	}
	out, err := parse.Get(req.Platform).Parse(pctx, lines)
	if err != nil {
		s.saveTask(taskID, req, 0, err)
		return nil, fmt.Errorf("parse %q for platform %q: %w", req.Command, req.Platform, err)
	}

	// 过滤条件全部命中才保留
	filters, err := BuildRecordFilters(req.Filters)
	if err != nil {
		s.saveTask(taskID, req, 0, err)
		return nil, err
	}
	out.Records = parse.FilterRecords(out.Records, filters)

	result := &FormatResult{
		TaskID:     taskID,
		Platform:   out.Platform,
		Command:    out.Command,
		Table:      out.Table,
		Fieldnames: out.Fieldnames,
		Records:    out.Records,
	}

	// 归档原始回显与 CSV
	if strings.TrimSpace(req.SaveDir) != "" {
		slug := Slug(req.Command)
		rawObj, werr := s.writer.Write(ctx, StorageMeta{
			SaveDir: req.SaveDir, TaskID: taskID, Name: slug + ".txt",
		}, req.Raw, "text/plain")
		if werr != nil {
			logger.Warnf("archive raw output failed: %v", werr)
		} else {
			result.Stored = append(result.Stored, rawObj)
		}

		csvText, cerr := RenderCSV(out)
		if cerr == nil {
			csvObj, werr := s.writer.Write(ctx, StorageMeta{
				SaveDir: req.SaveDir, TaskID: taskID, Name: slug + ".csv",
			}, csvText, "text/csv")
			if werr != nil {
				logger.Warnf("archive csv failed: %v", werr)
			} else {
				result.Stored = append(result.Stored, csvObj)
			}
		}
	}

	// 解析结果落库
	if req.Persist {
		if err := s.persistRecords(taskID, out); err != nil {
			logger.Warnf("persist records failed: %v", err)
		}
	}
	s.saveTask(taskID, req, len(out.Records), nil)

	return result, nil
}

// FormatFile 读取文件（或 "-" 读取标准输入）并格式化
func (s *FormatService) FormatFile(ctx context.Context, req FormatFileRequest) (*FormatResult, error) {
	raw, err := ReadInput(req.Path)
	if err != nil {
		return nil, err
	}
	return s.FormatText(ctx, FormatRequest{
		Platform: req.Platform,
		Command:  req.Command,
		Raw:      raw,
		Source:   req.Path,
		SaveDir:  req.SaveDir,
		Filters:  req.Filters,
		Persist:  req.Persist,
	})
}

// FormatFiles 并发格式化多份输入文件
func (s *FormatService) FormatFiles(ctx context.Context, reqs []FormatFileRequest) []FormatFileResult {
	results := make([]FormatFileResult, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	limit := s.cfg.Format.Concurrent
	if limit <= 0 {
		limit = 8
	}
	g.SetLimit(limit)

	for i, req := range reqs {
		g.Go(func() error {
			res, err := s.FormatFile(gctx, req)
			results[i] = FormatFileResult{Path: req.Path, Result: res}
			if err != nil {
				results[i].Error = err.Error()
			}
			// 单个文件失败不中断批次
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// FormatFetch 在线登录设备执行命令并格式化回显
func (s *FormatService) FormatFetch(ctx context.Context, req FetchRequest) (*FormatResult, error) {
	raw, err := sshpkg.FetchCommandOutput(ctx, nil, &sshpkg.ConnectionInfo{
		Host:     req.DeviceIP,
		Port:     req.DevicePort,
		Username: req.Username,
		Password: req.Password,
	}, req.Command)
	if err != nil {
		return nil, fmt.Errorf("fetch %q from %s: %w", req.Command, req.DeviceIP, err)
	}

	source := req.DeviceName
	if source == "" {
		source = req.DeviceIP
	}
	return s.FormatText(ctx, FormatRequest{
		Platform: req.Platform,
		Command:  req.Command,
		Raw:      raw,
		Source:   source,
		SaveDir:  req.SaveDir,
		Filters:  req.Filters,
		Persist:  req.Persist,
	})
}

// NormalizeLines 统一编码与换行并移除分页提示行
func (s *FormatService) NormalizeLines(raw string) []string {
	raw = util.EnsureUTF8(raw)
	lines := util.SplitLines(raw)
	return util.FilterOutputLines(lines, s.cfg.Format.OutputFilter)
}

// ReadInput 读取文件内容；路径为 "-" 时读取标准输入
func ReadInput(path string) (string, error) {
	if path == "" || path == "-" {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return util.EnsureUTF8Bytes(b), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	logger.Infof("open file %s", path)
	return util.EnsureUTF8Bytes(b), nil
}

// DefaultCSVPath 根据输入路径推导 CSV 输出路径：扩展名替换为 .csv。
// 标准输入场景返回配置的缺省文件名
func (s *FormatService) DefaultCSVPath(inputPath string) string {
	if inputPath == "" || inputPath == "-" {
		return s.cfg.Format.DefaultOutputFilename
	}
	ext := filepath.Ext(inputPath)
	return strings.TrimSuffix(inputPath, ext) + ".csv"
}

// RenderCSV 按 Fieldnames 顺序渲染 CSV，表头固定，缺失列为空
func RenderCSV(out parse.ParseOutput) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(out.Fieldnames); err != nil {
		return "", err
	}
	row := make([]string, len(out.Fieldnames))
	for _, rec := range out.Records {
		for i, name := range out.Fieldnames {
			row[i] = rec.Get(name)
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// SaveCSV 渲染并写入本地文件
func SaveCSV(out parse.ParseOutput, path string) error {
	text, err := RenderCSV(out)
	if err != nil {
		return fmt.Errorf("render csv: %w", err)
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("save csv %s: %w", path, err)
	}
	logger.Infof("saved to %s", path)
	return nil
}

// DumpRecords 将记录按"右对齐键名 : 值"逐条打印，条目间空行分隔
func DumpRecords(w io.Writer, fieldnames []string, records []parse.Record, rightJust int) {
	if rightJust <= 0 {
		rightJust = 20
	}
	for _, rec := range records {
		for _, name := range fieldnames {
			v, ok := rec[name]
			if !ok {
				continue
			}
			fmt.Fprintf(w, "%*s : %s\n", rightJust, name, v)
		}
		fmt.Fprintln(w)
	}
}

// nextTaskID 生成任务ID：时间戳+进程内序号
func (s *FormatService) nextTaskID() string {
	s.taskMu.Lock()
	defer s.taskMu.Unlock()
	s.taskSeq++
	return fmt.Sprintf("fmt-%s-%04d", time.Now().Format("20060102150405"), s.taskSeq)
}

// saveTask 记录任务信息；数据库未初始化时跳过
func (s *FormatService) saveTask(taskID string, req FormatRequest, records int, perr error) {
	if database.GetDB() == nil {
		return
	}
	task := &model.ParseTask{
		ID:       taskID,
		Platform: req.Platform,
		Command:  req.Command,
		Source:   req.Source,
		Status:   model.ParseTaskStatusSuccess,
		Records:  records,
	}
	if perr != nil {
		task.Status = model.ParseTaskStatusFailed
		task.ErrorMsg = perr.Error()
	}
	err := database.WithRetry(func(db *gorm.DB) error {
		return db.Create(task).Error
	}, 3, 50*time.Millisecond)
	if err != nil {
		logger.Warnf("save parse task %s failed: %v", taskID, err)
	}
}

// persistRecords 将解析结果写入对应表
func (s *FormatService) persistRecords(taskID string, out parse.ParseOutput) error {
	if database.GetDB() == nil {
		return fmt.Errorf("database not initialized")
	}
	if len(out.Records) == 0 {
		return nil
	}

	var rows interface{}
	switch out.Table {
	case "cdp_neighbors":
		items := make([]model.CdpNeighbor, 0, len(out.Records))
		for _, r := range out.Records {
			items = append(items, model.CdpNeighbor{
				TaskID:         taskID,
				DeviceID:       r.Get("device_id"),
				LocalInterface: r.Get("local_interface"),
				Holdtime:       r.Get("holdtime"),
				Capability:     r.Get("capability"),
				Platform:       r.Get("platform"),
				PortID:         r.Get("port_id"),
			})
		}
		rows = items
	case "interface_details":
		items := make([]model.InterfaceDetail, 0, len(out.Records))
		for _, r := range out.Records {
			items = append(items, model.InterfaceDetail{
				TaskID:        taskID,
				Name:          r.Get("name"),
				Status:        r.Get("status"),
				LineProtocol:  r.Get("line_protocol"),
				Description:   r.Get("description"),
				Duplex:        r.Get("duplex"),
				Speed:         r.Get("speed"),
				Media:         r.Get("media"),
				OutputDrops:   r.Get("output_drops"),
				InputRateBps:  r.Get("input_rate_bps"),
				InputRatePps:  r.Get("input_rate_pps"),
				OutputRateBps: r.Get("output_rate_bps"),
				OutputRatePps: r.Get("output_rate_pps"),
				InputPackets:  r.Get("input_packets"),
				InputBytes:    r.Get("input_bytes"),
				InputErrors:   r.Get("input_errors"),
				CRC:           r.Get("crc"),
				OutputPackets: r.Get("output_packets"),
				OutputBytes:   r.Get("output_bytes"),
				OutputErrors:  r.Get("output_errors"),
			})
		}
		rows = items
	case "interface_status":
		items := make([]model.InterfaceStatus, 0, len(out.Records))
		for _, r := range out.Records {
			items = append(items, model.InterfaceStatus{
				TaskID: taskID,
				Port:   r.Get("port"),
				Name:   r.Get("name"),
				Status: r.Get("status"),
				Vlan:   r.Get("vlan"),
				Duplex: r.Get("duplex"),
				Speed:  r.Get("speed"),
				Type:   r.Get("type"),
			})
		}
		rows = items
	case "route_entries":
		items := make([]model.RouteEntry, 0, len(out.Records))
		for _, r := range out.Records {
			items = append(items, model.RouteEntry{
				TaskID:    taskID,
				Proto:     r.Get("proto"),
				Addr:      r.Get("addr"),
				Mask:      r.Get("mask"),
				Gw:        r.Get("gw"),
				Interface: r.Get("interface"),
			})
		}
		rows = items
	case "syslog_messages":
		items := make([]model.SyslogMessage, 0, len(out.Records))
		for _, r := range out.Records {
			items = append(items, model.SyslogMessage{
				TaskID:      taskID,
				Date:        r.Get("date"),
				Facility:    r.Get("facility"),
				Severity:    r.Get("severity"),
				Mnemonic:    r.Get("mnemonic"),
				Description: r.Get("description"),
			})
		}
		rows = items
	default:
		return fmt.Errorf("unknown table %q", out.Table)
	}

	return database.WithRetry(func(db *gorm.DB) error {
		return db.CreateInBatches(rows, 200).Error
	}, 3, 50*time.Millisecond)
}
