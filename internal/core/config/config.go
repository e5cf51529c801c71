package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// DefaultJWTSecret 开发兜底密钥（与原部署一致）。非 dev 环境用它直接拒绝启动。
const DefaultJWTSecret = "dulcemarket-super-secret-key-32bytes!!"

type HTTP struct {
	Host            string
	Port            int
	ReadTimeoutSec  int
	WriteTimeoutSec int
	IdleTimeoutSec  int
}

type AdminHTTP struct {
	Host string
	Port int
}

type App struct {
	Name  string
	Env   string // dev / prod
	HTTP  HTTP
	Admin AdminHTTP
}

type Log struct {
	Level string
	JSON  bool
}

type JWT struct {
	Secret            string
	Issuer            string
	AccessTokenTTLMin int
}

type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type DB struct {
	Driver             string
	DSN                string
	Username           string
	Password           string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	AutoMigrate        bool
	LogLevel           string
}

type Config struct {
	App   App
	Log   Log
	JWT   JWT
	DB    DB
	Redis Redis `mapstructure:"redis"`
}

func Load(path string) *Config {
	v := viper.New()
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		if path == "" {
			path = "./configs/config.local.yaml"
		}
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	// 配置文件可选：没有就用默认值 + 环境变量；有但解析失败直接退出
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
			log.Fatalf("read config: %v", err)
		}
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		log.Fatalf("unmarshal config: %v", err)
	}
	return &c
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "sweetmarket")
	v.SetDefault("app.env", "dev")
	v.SetDefault("app.http.host", "0.0.0.0")
	v.SetDefault("app.http.port", 8080)
	v.SetDefault("app.http.readtimeoutsec", 5)
	v.SetDefault("app.http.writetimeoutsec", 10)
	v.SetDefault("app.http.idletimeoutsec", 60)
	v.SetDefault("app.admin.host", "0.0.0.0")
	v.SetDefault("app.admin.port", 8081)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("jwt.secret", DefaultJWTSecret)
	v.SetDefault("jwt.issuer", "sweetmarket")
	v.SetDefault("jwt.accesstokenttlmin", 120)
	v.SetDefault("db.driver", "postgres")
	v.SetDefault("db.dsn", "postgres://localhost:5432/sweetmarket?sslmode=disable")
	v.SetDefault("db.maxopenconns", 20)
	v.SetDefault("db.maxidleconns", 10)
	v.SetDefault("db.connmaxlifetimemin", 30)
	v.SetDefault("db.automigrate", true)
	v.SetDefault("db.loglevel", "warn")
}

// VerifySecret 签发密钥的启动检查：err 非空必须终止；warn 非空要在日志里大声提示。
// HMAC-SHA256 至少要 32 字节；dev 下允许内置兜底密钥，其它环境一律拒绝。
func (c *Config) VerifySecret() (warn string, err error) {
	if len(c.JWT.Secret) < 32 {
		return "", fmt.Errorf("jwt secret too short: %d bytes, need at least 32", len(c.JWT.Secret))
	}
	if c.JWT.Secret == DefaultJWTSecret {
		if c.App.Env != "dev" {
			return "", fmt.Errorf("refusing to start: built-in development jwt secret in env %q, set APP_JWT_SECRET", c.App.Env)
		}
		return "using the built-in development jwt secret, override APP_JWT_SECRET before going anywhere near production", nil
	}
	return "", nil
}
