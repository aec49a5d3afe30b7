package config

import (
	"log"
	"sync"

	"github.com/fsnotify/fsnotify"
	viper "github.com/spf13/viper"
)

/*
把init config跟read config分開
init : 需要設置viper watch 與 onConfigChange
read : 一般讀取, 需要使用讀寫鎖
*/
var config_singleton *ConfigSingleTon
var muonce sync.Once

type ConfigSingleTon struct {
	Config *Config
	mu     sync.RWMutex
}

type Config struct {
	ModulerName string `mapstructure:"MODULER_NAME"`
	ServerPort  string `mapstructure:"SERVER_PORT"`

	DbName string `mapstructure:"POSTGRES_DB"`
	DbHost string `mapstructure:"POSTGRES_HOST"`
	DbPort string `mapstructure:"POSTGRES_PORT"`
	DbUser string `mapstructure:"POSTGRES_USER"`
	DbPas  string `mapstructure:"POSTGRES_PASSWORD"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`

	KafkaBrokers    string `mapstructure:"KAFKA_BROKERS"`
	AuditTopic      string `mapstructure:"AUDIT_TOPIC"`
	AuthTokenKey    string `mapstructure:"AUTH_TOKEN_KEY"`
	MigrationPath   string `mapstructure:"MIGRATION_PATH"`
	RunMigration    bool   `mapstructure:"RUN_MIGRATION"`
	RateLimitRPS    int    `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitWindow int    `mapstructure:"RATE_LIMIT_WINDOW_SECONDS"`

	TaxRate               string `mapstructure:"TAX_RATE"`
	FlatShippingFee       string `mapstructure:"FLAT_SHIPPING_FEE"`
	FreeShippingThreshold string `mapstructure:"FREE_SHIPPING_THRESHOLD"`

	GatewayBaseURL        string `mapstructure:"GATEWAY_BASE_URL"`
	GatewaySecret         string `mapstructure:"GATEWAY_SECRET"`
	GatewayTimeoutSeconds int    `mapstructure:"GATEWAY_TIMEOUT_SECONDS"`
	PaymentExpiryMinutes  int    `mapstructure:"PAYMENT_EXPIRY_MINUTES"`
}

func GetConfig() *Config {
	initConfig()
	config_singleton.mu.RLock()
	defer config_singleton.mu.RUnlock()
	return config_singleton.Config
}

func initConfig() {
	if config_singleton == nil {
		muonce.Do(func() {
			config_singleton = &ConfigSingleTon{}
			if cf, err := loadConfig(); err == nil {
				config_singleton.Config = cf
			} else {
				log.Fatal("error read config file")
			}
			viper.WatchConfig()
			viper.OnConfigChange(func(e fsnotify.Event) {
				if cf, err := loadConfig(); err == nil {
					config_singleton.Config = cf
				} else {
					log.Panic("failed to reload config file")
				}
			})
		})
	}
}

/*
單純回傳錯誤, 由外部決定要不要Fatal, 畢竟有可能有替代方案
*/
func loadConfig() (cf *Config, err error) {
	config_singleton.mu.Lock()
	defer config_singleton.mu.Unlock()

	cf = &Config{}
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	setDefaults()

	err = viper.ReadInConfig()
	if err != nil {
		return
	}

	err = viper.Unmarshal(cf)
	if err != nil {
		return
	}
	return
}

func setDefaults() {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("TAX_RATE", "0.10")
	viper.SetDefault("FLAT_SHIPPING_FEE", "10")
	viper.SetDefault("FREE_SHIPPING_THRESHOLD", "100")
	viper.SetDefault("GATEWAY_TIMEOUT_SECONDS", 10)
	viper.SetDefault("PAYMENT_EXPIRY_MINUTES", 30)
	viper.SetDefault("AUDIT_TOPIC", "shopcenter.audit")
	viper.SetDefault("RATE_LIMIT_RPS", 50)
	viper.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 1)
	viper.SetDefault("MIGRATION_PATH", "internal/infra/repository/db/migrations")
}
