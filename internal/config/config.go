package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	SessionStoreFile  = "file"
	SessionStoreRedis = "redis"
)

type Config struct {
	SecretKey      string        `env:"SECRET_KEY,required"`
	JWTIssuer      string        `env:"JWT_ISSUER" envDefault:"epic-events-crm"`
	SessionStore   string        `env:"SESSION_STORE" envDefault:"file"`
	SessionFile    string        `env:"SESSION_FILE" envDefault:"token.txt"`
	CommandTimeout time.Duration `env:"COMMAND_TIMEOUT" envDefault:"30s"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"warn"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	DBType     string `env:"DBType" envDefault:"sqlite"`
	DSNURL     string `env:"DSN_URL" envDefault:""`
	DBUser     string `env:"DBUser" envDefault:""`
	DBPassword string `env:"DBPassword" envDefault:""`
	DBAddr     string `env:"DBAddr" envDefault:""`
	DBName     string `env:"DBName" envDefault:"epic_events"`
	DBPath     string `env:"DBPath" envDefault:"db.sqlite3"`
	DBPort     string `env:"DBPort" envDefault:"3306"`

	// Redis 会话存储配置
	RedisAddr       string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword   string `env:"REDIS_PASSWORD"`
	RedisDB         int    `env:"REDIS_DB" envDefault:"0"`
	RedisSessionKey string `env:"REDIS_SESSION_KEY" envDefault:"crm:session"`

	// RabbitMQ 领域事件配置
	AMQPURL      string `env:"AMQP_URL"`
	AMQPExchange string `env:"AMQP_EXCHANGE" envDefault:""`

	// 导出存储配置
	StorageType     string `env:"STORAGE_TYPE" envDefault:"local"`
	StorageLocalDir string `env:"STORAGE_LOCAL_DIR" envDefault:"exports"`

	// S3 兼容存储配置
	StorageS3Region          string `env:"STORAGE_S3_REGION"`
	StorageS3Bucket          string `env:"STORAGE_S3_BUCKET"`
	StorageS3Prefix          string `env:"STORAGE_S3_PREFIX"`
	StorageS3Endpoint        string `env:"STORAGE_S3_ENDPOINT"`
	StorageS3AccessKeyID     string `env:"STORAGE_S3_ACCESS_KEY_ID"`
	StorageS3SecretAccessKey string `env:"STORAGE_S3_SECRET_ACCESS_KEY"`
	StorageS3SessionToken    string `env:"STORAGE_S3_SESSION_TOKEN"`
	StorageS3ForcePathStyle  bool   `env:"STORAGE_S3_FORCE_PATH_STYLE" envDefault:"false"`

	// 阿里云 OSS 存储配置
	StorageOSSEndpoint        string `env:"STORAGE_OSS_ENDPOINT"`
	StorageOSSBucket          string `env:"STORAGE_OSS_BUCKET"`
	StorageOSSPrefix          string `env:"STORAGE_OSS_PREFIX"`
	StorageOSSAccessKeyID     string `env:"STORAGE_OSS_ACCESS_KEY_ID"`
	StorageOSSAccessKeySecret string `env:"STORAGE_OSS_ACCESS_KEY_SECRET"`

	// 腾讯云 COS 存储配置
	StorageCOSBucketURL string `env:"STORAGE_COS_BUCKET_URL"`
	StorageCOSPrefix    string `env:"STORAGE_COS_PREFIX"`
	StorageCOSSecretID  string `env:"STORAGE_COS_SECRET_ID"`
	StorageCOSSecretKey string `env:"STORAGE_COS_SECRET_KEY"`

	// Cloudflare R2 存储配置
	StorageR2AccountID       string `env:"STORAGE_R2_ACCOUNT_ID"`
	StorageR2Endpoint        string `env:"STORAGE_R2_ENDPOINT"`
	StorageR2Region          string `env:"STORAGE_R2_REGION" envDefault:"auto"`
	StorageR2Bucket          string `env:"STORAGE_R2_BUCKET"`
	StorageR2Prefix          string `env:"STORAGE_R2_PREFIX"`
	StorageR2AccessKeyID     string `env:"STORAGE_R2_ACCESS_KEY_ID"`
	StorageR2SecretAccessKey string `env:"STORAGE_R2_SECRET_ACCESS_KEY"`
}

// ErrMissingSecret is returned when SECRET_KEY is not provided.
var ErrMissingSecret = errors.New("SECRET_KEY is not set")

// LoadDotEnv reads .env files into the environment. Missing files are ignored.
func LoadDotEnv(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			logrus.WithError(err).WithField("file", file).Warn("failed to load env file")
		}
	}
}

func ParseConfig() (Config, error) {
	if strings.TrimSpace(os.Getenv("SECRET_KEY")) == "" {
		return Config{}, ErrMissingSecret
	}
	var Conf Config
	err := env.Parse(&Conf)
	if err != nil {
		logrus.WithError(err).Error("env.Parse error")
		return Config{}, err
	}
	if strings.TrimSpace(Conf.SecretKey) == "" {
		return Config{}, ErrMissingSecret
	}
	if err := Conf.Validate(); err != nil {
		return Config{}, err
	}
	logrus.Debugf("db=%s session=%s storage=%s", Conf.DBType, Conf.SessionStore, Conf.StorageType)
	return Conf, nil
}

// Validate checks enumerated settings.
func (c Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.SessionStore)) {
	case "", SessionStoreFile, SessionStoreRedis:
	default:
		return fmt.Errorf("unsupported session store: %s", c.SessionStore)
	}
	if c.CommandTimeout < 0 {
		return fmt.Errorf("COMMAND_TIMEOUT must not be negative")
	}
	return nil
}

// ConfigureLogging applies LOG_LEVEL and LOG_FORMAT to the standard logrus logger.
func ConfigureLogging(c Config) {
	logrus.SetOutput(os.Stderr)
	if strings.EqualFold(c.LogFormat, "json") {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	level, err := logrus.ParseLevel(strings.TrimSpace(c.LogLevel))
	if err != nil {
		level = logrus.WarnLevel
	}
	logrus.SetLevel(level)
}
