package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
)

// ErrMissingTokenSecret is returned when USERTOKEN_HASH_HMAC is not configured.
var ErrMissingTokenSecret = errors.New("USERTOKEN_HASH_HMAC is required")

// Config 聚合整个服务的配置项。
type Config struct {
	Server    ServerConfig
	Links     LinkConfig
	Identity  IdentityConfig
	Storage   StorageConfig
	Templates TemplateConfig
	Analytics AnalyticsConfig
	Twilio    TwilioConfig
	AI        AIConfig
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	identity, err := loadIdentityConfig()
	if err != nil {
		return nil, err
	}

	ai, err := loadAIConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server:    server,
		Links:     loadLinkConfig(),
		Identity:  identity,
		Storage:   StorageConfig{DatabasePath: getEnvOrDefault("DATABASE_PATH", "rosa.db")},
		Templates: TemplateConfig{Dir: strings.TrimSpace(os.Getenv("TEMPLATES_DIR"))},
		Analytics: AnalyticsConfig{
			APIKey:  strings.TrimSpace(os.Getenv("DASHBOT_API_KEY")),
			BaseURL: getEnvOrDefault("DASHBOT_BASE_URL", "https://tracker.dashbot.io"),
		},
		Twilio: TwilioConfig{
			AccountSID: strings.TrimSpace(os.Getenv("TWILIO_ACCOUNT_SID")),
			AuthToken:  strings.TrimSpace(os.Getenv("TWILIO_AUTH_TOKEN")),
			FromNumber: strings.TrimSpace(os.Getenv("TWILIO_FROM_NUMBER")),
			BaseURL:    getEnvOrDefault("TWILIO_BASE_URL", "https://api.twilio.com"),
			VCardURL:   getEnvOrDefault("VCARD_URL", "https://rosa.bot/rosa.vcf"),
		},
		AI: ai,
	}, nil
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Addr string
}

// loadServerConfig 解析服务器监听地址。
func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// 允许用户直接传入 ":8080" 或 "127.0.0.1:8080"。
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// Environment 区分部署环境，只影响授权链接的子域名。
type Environment string

const (
	EnvDevelopment Environment = "dev"
	EnvProduction  Environment = "prod"
)

// LinkConfig 描述授权链接的组成部分。
type LinkConfig struct {
	Environment Environment
	Domain      string
	TTL         time.Duration
}

// Subdomain returns the web app subdomain for the deployment environment.
func (c LinkConfig) Subdomain() string {
	if c.Environment == EnvDevelopment {
		return "app-dev"
	}
	return "app"
}

// Origin returns the scheme and host of the web app.
func (c LinkConfig) Origin() string {
	return "https://" + c.Subdomain() + "." + c.Domain
}

func loadLinkConfig() LinkConfig {
	env := EnvProduction
	if strings.EqualFold(strings.TrimSpace(os.Getenv("AWS_ENV")), string(EnvDevelopment)) {
		env = EnvDevelopment
	}

	ttl := 15 * time.Minute
	if raw := strings.TrimSpace(os.Getenv("AUTHREQ_TTL")); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil && parsed > 0 {
			ttl = parsed
		}
	}

	return LinkConfig{
		Environment: env,
		Domain:      getEnvOrDefault("LINK_DOMAIN", "rosa.bot"),
		TTL:         ttl,
	}
}

// IdentityConfig 描述手机号到用户令牌映射所需的密钥。
type IdentityConfig struct {
	TokenHashSecret string
}

func loadIdentityConfig() (IdentityConfig, error) {
	secret := strings.TrimSpace(os.Getenv("USERTOKEN_HASH_HMAC"))
	if secret == "" {
		return IdentityConfig{}, ErrMissingTokenSecret
	}
	return IdentityConfig{TokenHashSecret: secret}, nil
}

// StorageConfig 描述 SQLite 数据库位置。
type StorageConfig struct {
	DatabasePath string
}

// TemplateConfig 描述聊天模板目录，为空时使用内置模板。
type TemplateConfig struct {
	Dir string
}

// AnalyticsConfig 描述 Dashbot 配置。
type AnalyticsConfig struct {
	APIKey  string
	BaseURL string
}

// Enabled 表示是否提供了 Dashbot 密钥。
func (c AnalyticsConfig) Enabled() bool {
	return c.APIKey != ""
}

// TwilioConfig 描述名片彩信发送配置。
type TwilioConfig struct {
	AccountSID string
	AuthToken  string
	FromNumber string
	BaseURL    string
	VCardURL   string
}

// Enabled 表示 Twilio 凭证是否完整。
func (c TwilioConfig) Enabled() bool {
	return c.AccountSID != "" && c.AuthToken != "" && c.FromNumber != ""
}

// AIConfig 描述大模型相关配置，用于应用名称的模糊匹配。
type AIConfig struct {
	APIKey          string
	AccessKey       string
	SecretKey       string
	Model           string
	BaseURL         string
	Region          string
	Temperature     *float64
	MaxTokens       *int
	MatchLLMEnabled bool
}

// Enabled 表示是否提供了必需的密钥并开启了模型匹配。
func (c AIConfig) Enabled() bool {
	return c.MatchLLMEnabled && c.Model != "" && (c.APIKey != "" || (c.AccessKey != "" && c.SecretKey != ""))
}

// NewChatModel 使用配置创建一个模型实例。
func (c AIConfig) NewChatModel(ctx context.Context) (model.ChatModel, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("Ark 凭证或模型配置缺失，至少提供 ARK_API_KEY + Model 或 AK/SK 组合")
	}

	var temperature *float32
	if c.Temperature != nil {
		val := float32(*c.Temperature)
		temperature = &val
	}

	cfg := &ark.ChatModelConfig{
		BaseURL:     c.BaseURL,
		Region:      c.Region,
		APIKey:      c.APIKey,
		AccessKey:   c.AccessKey,
		SecretKey:   c.SecretKey,
		Model:       c.Model,
		MaxTokens:   c.MaxTokens,
		Temperature: temperature,
	}

	return ark.NewChatModel(ctx, cfg)
}

func loadAIConfig() (AIConfig, error) {
	temperature, err := parseOptionalFloatEnv("ARK_TEMPERATURE")
	if err != nil {
		return AIConfig{}, err
	}

	maxTokens, err := parseOptionalIntEnv("ARK_MAX_TOKENS")
	if err != nil {
		return AIConfig{}, err
	}

	enabled, err := parseBoolEnv("APP_MATCH_LLM_ENABLED", false)
	if err != nil {
		return AIConfig{}, err
	}

	return AIConfig{
		APIKey:          strings.TrimSpace(os.Getenv("ARK_API_KEY")),
		AccessKey:       strings.TrimSpace(os.Getenv("ARK_ACCESS_KEY")),
		SecretKey:       strings.TrimSpace(os.Getenv("ARK_SECRET_KEY")),
		Model:           strings.TrimSpace(os.Getenv("Model")),
		BaseURL:         getEnvOrDefault("ARK_BASE_URL", "https://ark.cn-beijing.volces.com/api/v3"),
		Region:          getEnvOrDefault("ARK_REGION", "cn-beijing"),
		Temperature:     temperature,
		MaxTokens:       maxTokens,
		MatchLLMEnabled: enabled,
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseOptionalFloatEnv(key string) (*float64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
