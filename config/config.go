// Package config 读取 .env 与环境变量，为服务端和客户端提供启动参数
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	DefaultAddr       = ":4433"
	DefaultServerURL  = "ws://localhost:4433/ws"
	DefaultLogFile    = "server.log"
	DefaultClientLog  = "client.log"
	DefaultMaxClients = 64
	DefaultJoinRate   = 2.0
	DefaultJoinBurst  = 4
)

// Server 服务端启动配置
type Server struct {
	Addr       string
	CertFile   string
	KeyFile    string
	PublicURL  string
	LogFile    string
	LogLevel   string
	MaxClients int
	JoinRate   float64 // 每个 IP 每秒允许的握手次数
	JoinBurst  int
}

// TLSEnabled 证书和私钥同时配置时启用 TLS
func (s Server) TLSEnabled() bool {
	return s.CertFile != "" && s.KeyFile != ""
}

// Client 客户端启动配置
type Client struct {
	ServerURL string
	LogFile   string
	LogLevel  string
}

// Load 加载可选的 .env 文件；文件不存在不算错误
func Load(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// GetEnv 读取环境变量，未设置时返回 fallback
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// GetEnvInt 读取整数环境变量，格式错误返回 error
func GetEnvInt(key string, fallback int) (int, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

// GetEnvFloat 读取浮点环境变量
func GetEnvFloat(key string, fallback float64) (float64, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

// ServerFromEnv 组装服务端配置
func ServerFromEnv() (Server, error) {
	cfg := Server{
		Addr:      GetEnv("PLATFORMER_ADDR", DefaultAddr),
		CertFile:  GetEnv("PLATFORMER_CERT", ""),
		KeyFile:   GetEnv("PLATFORMER_KEY", ""),
		PublicURL: GetEnv("PLATFORMER_PUBLIC_URL", ""),
		LogFile:   GetEnv("PLATFORMER_LOG", DefaultLogFile),
		LogLevel:  GetEnv("PLATFORMER_LOG_LEVEL", ""),
		JoinBurst: DefaultJoinBurst,
	}
	var err error
	if cfg.MaxClients, err = GetEnvInt("PLATFORMER_MAX_CLIENTS", DefaultMaxClients); err != nil {
		return cfg, err
	}
	if cfg.JoinRate, err = GetEnvFloat("PLATFORMER_JOIN_RATE", DefaultJoinRate); err != nil {
		return cfg, err
	}
	if cfg.MaxClients <= 0 {
		return cfg, fmt.Errorf("PLATFORMER_MAX_CLIENTS must be positive, got %d", cfg.MaxClients)
	}
	return cfg, nil
}

// ClientFromEnv 组装客户端配置
func ClientFromEnv() Client {
	return Client{
		ServerURL: GetEnv("PLATFORMER_SERVER_URL", DefaultServerURL),
		LogFile:   GetEnv("PLATFORMER_CLIENT_LOG", DefaultClientLog),
		LogLevel:  GetEnv("PLATFORMER_LOG_LEVEL", ""),
	}
}
