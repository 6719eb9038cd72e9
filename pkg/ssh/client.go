package ssh

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"golang.org/x/crypto/ssh"
)

// Config SSH配置
type Config struct {
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
	CommandTimeout time.Duration `yaml:"command_timeout"`
}

// ConnectionInfo SSH连接信息
type ConnectionInfo struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Client 面向网络设备的精简SSH客户端：连接、跑单条 show 命令、断开。
// 不做会话复用与交互式提权
type Client struct {
	config     *Config
	connection *ssh.Client
}

// NewClient 创建SSH客户端
func NewClient(config *Config) *Client {
	if config == nil {
		config = &Config{}
	}
	if config.ConnectTimeout <= 0 {
		config.ConnectTimeout = 10 * time.Second
	}
	if config.CommandTimeout <= 0 {
		config.CommandTimeout = 60 * time.Second
	}
	return &Client{config: config}
}

// Connect 连接SSH服务器
func (c *Client) Connect(ctx context.Context, info *ConnectionInfo) error {
	sshConfig := &ssh.ClientConfig{
		User:            info.Username,
		Auth:            []ssh.AuthMethod{ssh.Password(info.Password)},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         c.config.ConnectTimeout,
		Config: ssh.Config{
			// 老旧 IOS 设备只支持旧版本的密钥交换与加密算法
			KeyExchanges: []string{
				"diffie-hellman-group14-sha256",
				"diffie-hellman-group14-sha1",
				"diffie-hellman-group1-sha1",
				"diffie-hellman-group-exchange-sha256",
				"ecdh-sha2-nistp256",
				"ecdh-sha2-nistp384",
				"ecdh-sha2-nistp521",
			},
			Ciphers: []string{
				"aes128-ctr", "aes192-ctr", "aes256-ctr",
				"aes128-gcm@openssh.com", "aes256-gcm@openssh.com",
				"aes128-cbc", "3des-cbc",
			},
		},
	}

	port := info.Port
	if port <= 0 {
		port = 22
	}
	addr := net.JoinHostPort(info.Host, strconv.Itoa(port))

	// ssh 包没有带 ctx 的 Dial，先建 TCP 连接再做握手
	dialer := net.Dialer{Timeout: c.config.ConnectTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	sshConn, chans, reqs, err := ssh.NewClientConn(conn, addr, sshConfig)
	if err != nil {
		conn.Close()
		return fmt.Errorf("ssh handshake with %s: %w", addr, err)
	}
	c.connection = ssh.NewClient(sshConn, chans, reqs)
	return nil
}

// Run 执行单条命令并返回回显
func (c *Client) Run(ctx context.Context, command string) (string, error) {
	if c.connection == nil {
		return "", fmt.Errorf("ssh client not connected")
	}
	session, err := c.connection.NewSession()
	if err != nil {
		return "", fmt.Errorf("new session: %w", err)
	}
	defer session.Close()

	var stdout, stderr bytes.Buffer
	session.Stdout = &stdout
	session.Stderr = &stderr

	done := make(chan error, 1)
	go func() { done <- session.Run(command) }()

	timer := time.NewTimer(c.config.CommandTimeout)
	defer timer.Stop()

	select {
	case err := <-done:
		if err != nil {
			return stdout.String(), fmt.Errorf("run %q: %w (stderr: %s)", command, err, stderr.String())
		}
		return stdout.String(), nil
	case <-timer.C:
		session.Close()
		return stdout.String(), fmt.Errorf("run %q: timeout after %s", command, c.config.CommandTimeout)
	case <-ctx.Done():
		session.Close()
		return stdout.String(), ctx.Err()
	}
}

// Close 断开连接
func (c *Client) Close() error {
	if c.connection == nil {
		return nil
	}
	err := c.connection.Close()
	c.connection = nil
	return err
}

// FetchCommandOutput 一次性连接、执行、断开，返回命令回显
func FetchCommandOutput(ctx context.Context, cfg *Config, info *ConnectionInfo, command string) (string, error) {
	client := NewClient(cfg)
	if err := client.Connect(ctx, info); err != nil {
		return "", err
	}
	defer client.Close()
	return client.Run(ctx, command)
}
