package config

import (
	"database/sql"
	"fmt"
	"os"
	"strconv"

	gomysql "github.com/go-sql-driver/mysql"
	"gopkg.in/yaml.v3"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Baidu    BaiduConfig    `yaml:"baidu"`
	Feishu   FeishuConfig   `yaml:"feishu"`
	Verify   VerifyConfig   `yaml:"verify"`
	Database DatabaseConfig `yaml:"database"`
	Admin    AdminConfig    `yaml:"admin"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	Console    bool   `yaml:"console"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// BaiduConfig holds the OCR application credentials.
type BaiduConfig struct {
	APIKey    string `yaml:"api_key"`
	SecretKey string `yaml:"secret_key"`
}

// FeishuConfig points at the bitable app holding the abstract table and the
// optional member roster table. An empty MemberTableID disables the nickname
// check entirely.
type FeishuConfig struct {
	BaseURL       string `yaml:"base_url"`
	AppID         string `yaml:"app_id"`
	AppSecret     string `yaml:"app_secret"`
	AppToken      string `yaml:"app_token"`
	TableID       string `yaml:"table_id"`
	MemberTableID string `yaml:"member_table_id"`
}

type VerifyConfig struct {
	Threshold float64 `yaml:"threshold"`
}

// DatabaseConfig is optional: an empty host runs the server without the
// record archive and without member logins.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

// AdminConfig is the fallback login used when no database is configured.
type AdminConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

func Load(configFile string) *Config {
	c := &Config{
		Server:   ServerConfig{Port: 9872},
		Log:      LogConfig{Level: "info", Console: true, MaxSizeMB: 100, MaxBackups: 3, MaxAgeDays: 30},
		Feishu:   FeishuConfig{BaseURL: "https://open.feishu.cn"},
		Verify:   VerifyConfig{Threshold: 0.75},
		Database: DatabaseConfig{Port: 3306, Name: "paper_checkin"},
	}

	paths := []string{"etc/config-dev.yaml", "/etc/paper-checkin/config.yaml"}
	if configFile != "" {
		paths = []string{configFile}
	}
	for _, path := range paths {
		if data, err := os.ReadFile(path); err == nil {
			yaml.Unmarshal(data, c)
			break
		}
	}

	envOverride(&c.Baidu.APIKey, "BAIDU_API_KEY")
	envOverride(&c.Baidu.SecretKey, "BAIDU_SECRET_KEY")
	envOverride(&c.Feishu.AppID, "FEISHU_APP_ID")
	envOverride(&c.Feishu.AppSecret, "FEISHU_APP_SECRET")
	envOverride(&c.Feishu.AppToken, "FEISHU_APP_TOKEN")
	envOverride(&c.Feishu.TableID, "FEISHU_TABLE_ID")
	envOverride(&c.Feishu.MemberTableID, "FEISHU_MEMBER_TABLE_ID")
	envOverride(&c.Database.Host, "MYSQL_HOST")
	envOverride(&c.Database.User, "MYSQL_USER")
	envOverride(&c.Database.Password, "MYSQL_PASS")
	envOverride(&c.Database.Name, "MYSQL_DB")
	envOverride(&c.Admin.Username, "ADMIN_USER")
	envOverride(&c.Admin.Password, "ADMIN_PASS")
	envOverride(&c.Log.Level, "LOG_LEVEL")
	envOverride(&c.Log.File, "LOG_FILE")
	envOverrideInt(&c.Server.Port, "PORT")
	envOverrideInt(&c.Database.Port, "MYSQL_PORT")
	envOverrideFloat(&c.Verify.Threshold, "SIMILARITY_THRESHOLD")

	return c
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// HasDatabase reports whether an archive database was configured.
func (c *Config) HasDatabase() bool {
	return c.Database.Host != ""
}

func (c *Config) OpenGormDB() (*gorm.DB, error) {
	cfg := gomysql.NewConfig()
	cfg.User = c.Database.User
	cfg.Passwd = c.Database.Password
	cfg.Net = "tcp"
	cfg.Addr = fmt.Sprintf("%s:%d", c.Database.Host, c.Database.Port)
	cfg.DBName = c.Database.Name
	cfg.ParseTime = true

	connector, err := gomysql.NewConnector(cfg)
	if err != nil {
		return nil, fmt.Errorf("create connector: %w", err)
	}
	sqlDB := sql.OpenDB(connector)
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping db: %w", err)
	}

	return gorm.Open(mysql.New(mysql.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
}

func envOverride(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envOverrideInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func envOverrideFloat(dst *float64, key string) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}
