package model

import (
	"time"
)

// ParseTask 一次格式化任务（一条命令回显的一次解析）
type ParseTask struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(64)"`
	Platform  string    `json:"platform" gorm:"type:varchar(32);not null;index"`
	Command   string    `json:"command" gorm:"type:varchar(128);not null"`
	Source    string    `json:"source" gorm:"type:varchar(256)"`
	Status    string    `json:"status" gorm:"type:varchar(16);not null;default:'pending'"`
	Records   int       `json:"records" gorm:"not null;default:0"`
	ErrorMsg  string    `json:"error_msg" gorm:"type:text"`
	RawPath   string    `json:"raw_path" gorm:"type:varchar(512)"`
	CSVPath   string    `json:"csv_path" gorm:"type:varchar(512)"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName 表名
func (ParseTask) TableName() string {
	return "parse_tasks"
}

// ParseTaskStatus 任务状态枚举
const (
	ParseTaskStatusPending = "pending"
	ParseTaskStatusSuccess = "success"
	ParseTaskStatusFailed  = "failed"
)

// CdpNeighbor show cdp neighbors 的单条邻居
type CdpNeighbor struct {
	ID             uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	TaskID         string    `json:"task_id" gorm:"type:varchar(64);not null;index"`
	DeviceID       string    `json:"device_id" gorm:"type:varchar(128)"`
	LocalInterface string    `json:"local_interface" gorm:"type:varchar(64)"`
	Holdtime       string    `json:"holdtime" gorm:"type:varchar(16)"`
	Capability     string    `json:"capability" gorm:"type:varchar(32)"`
	Platform       string    `json:"platform" gorm:"type:varchar(64)"`
	PortID         string    `json:"port_id" gorm:"type:varchar(64)"`
	CreatedAt      time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName 表名
func (CdpNeighbor) TableName() string {
	return "cdp_neighbors"
}

// InterfaceDetail show interfaces 的单接口信息（计数值保持原样字符串）
type InterfaceDetail struct {
	ID            uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	TaskID        string    `json:"task_id" gorm:"type:varchar(64);not null;index"`
	Name          string    `json:"name" gorm:"type:varchar(64);index"`
	Status        string    `json:"status" gorm:"type:varchar(32)"`
	LineProtocol  string    `json:"line_protocol" gorm:"type:varchar(32)"`
	Description   string    `json:"description" gorm:"type:varchar(256)"`
	Duplex        string    `json:"duplex" gorm:"type:varchar(32)"`
	Speed         string    `json:"speed" gorm:"type:varchar(32)"`
	Media         string    `json:"media" gorm:"type:varchar(64)"`
	OutputDrops   string    `json:"output_drops" gorm:"type:varchar(20)"`
	InputRateBps  string    `json:"input_rate_bps" gorm:"type:varchar(20)"`
	InputRatePps  string    `json:"input_rate_pps" gorm:"type:varchar(20)"`
	OutputRateBps string    `json:"output_rate_bps" gorm:"type:varchar(20)"`
	OutputRatePps string    `json:"output_rate_pps" gorm:"type:varchar(20)"`
	InputPackets  string    `json:"input_packets" gorm:"type:varchar(20)"`
	InputBytes    string    `json:"input_bytes" gorm:"type:varchar(20)"`
	InputErrors   string    `json:"input_errors" gorm:"type:varchar(20)"`
	CRC           string    `json:"crc" gorm:"type:varchar(20)"`
	OutputPackets string    `json:"output_packets" gorm:"type:varchar(20)"`
	OutputBytes   string    `json:"output_bytes" gorm:"type:varchar(20)"`
	OutputErrors  string    `json:"output_errors" gorm:"type:varchar(20)"`
	CreatedAt     time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName 表名
func (InterfaceDetail) TableName() string {
	return "interface_details"
}

// InterfaceStatus show interfaces status 的单行状态
type InterfaceStatus struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	TaskID    string    `json:"task_id" gorm:"type:varchar(64);not null;index"`
	Port      string    `json:"port" gorm:"type:varchar(32);index"`
	Name      string    `json:"name" gorm:"type:varchar(64)"`
	Status    string    `json:"status" gorm:"type:varchar(32)"`
	Vlan      string    `json:"vlan" gorm:"type:varchar(16)"`
	Duplex    string    `json:"duplex" gorm:"type:varchar(16)"`
	Speed     string    `json:"speed" gorm:"type:varchar(16)"`
	Type      string    `json:"type" gorm:"type:varchar(64)"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName 表名
func (InterfaceStatus) TableName() string {
	return "interface_status"
}

// RouteEntry show ip route 的单条路由
type RouteEntry struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	TaskID    string    `json:"task_id" gorm:"type:varchar(64);not null;index"`
	Proto     string    `json:"proto" gorm:"type:varchar(16)"`
	Addr      string    `json:"addr" gorm:"type:varchar(32);index"`
	Mask      string    `json:"mask" gorm:"type:varchar(4)"`
	Gw        string    `json:"gw" gorm:"type:varchar(32)"`
	Interface string    `json:"interface" gorm:"type:varchar(64)"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName 表名
func (RouteEntry) TableName() string {
	return "route_entries"
}

// SyslogMessage show logging 的单条日志
type SyslogMessage struct {
	ID          uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	TaskID      string    `json:"task_id" gorm:"type:varchar(64);not null;index"`
	Date        string    `json:"date" gorm:"type:varchar(64)"`
	Facility    string    `json:"facility" gorm:"type:varchar(64);index"`
	Severity    string    `json:"severity" gorm:"type:varchar(4)"`
	Mnemonic    string    `json:"mnemonic" gorm:"type:varchar(64)"`
	Description string    `json:"description" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName 表名
func (SyslogMessage) TableName() string {
	return "syslog_messages"
}
