package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	App       App       `mapstructure:"app"`
	Feeds     Feeds     `mapstructure:"feeds"`
	Filter    Filter    `mapstructure:"filter"`
	Curation  Curation  `mapstructure:"curation"`
	LLM       LLM       `mapstructure:"llm"`
	Output    Output    `mapstructure:"output"`
	Email     Email     `mapstructure:"email"`
	Scheduler Scheduler `mapstructure:"scheduler"`
}

// App holds general application configuration.
type App struct {
	LogLevel   string `mapstructure:"log_level"`
	ConfigFile string `mapstructure:"config_file"`
}

// Feeds holds content source configuration.
type Feeds struct {
	// RSS maps a source category label to the feed URLs polled for it.
	RSS             map[string][]string `mapstructure:"rss"`
	ArticlesPerFeed int                 `mapstructure:"articles_per_feed"`
	HackerNews      HackerNews          `mapstructure:"hackernews"`
	UserAgent       string              `mapstructure:"user_agent"`
	Timeout         time.Duration       `mapstructure:"timeout"`
	RequestDelay    time.Duration       `mapstructure:"request_delay"`
}

// HackerNews holds Hacker News API source configuration.
type HackerNews struct {
	Enabled    bool   `mapstructure:"enabled"`
	BaseURL    string `mapstructure:"base_url"`
	TopStories int    `mapstructure:"top_stories"`
	MaxProcess int    `mapstructure:"max_process"`
}

// Filter holds the age/length gates applied before scoring.
type Filter struct {
	MinArticleLength   int `mapstructure:"min_article_length"`
	MaxArticleAgeHours int `mapstructure:"max_article_age_hours"`
}

// Curation holds selection bounds.
type Curation struct {
	MaxArticles            int `mapstructure:"max_articles"`
	MaxArticlesPerCategory int `mapstructure:"max_articles_per_category"`
}

// LLM holds summarization backend configuration.
type LLM struct {
	// Preferred names the backend tried first: one of ollama, bedrock,
	// openai, anthropic, local.
	Preferred    string        `mapstructure:"preferred"`
	SummaryDelay time.Duration `mapstructure:"summary_delay"`
	Ollama       Ollama        `mapstructure:"ollama"`
	Bedrock      Bedrock       `mapstructure:"bedrock"`
	OpenAI       OpenAI        `mapstructure:"openai"`
	Anthropic    Anthropic     `mapstructure:"anthropic"`
	Local        LocalServer   `mapstructure:"local"`
}

// Ollama holds configuration for the local Ollama backend.
type Ollama struct {
	Enabled bool   `mapstructure:"enabled"`
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
}

// Bedrock holds AWS Bedrock configuration.
type Bedrock struct {
	Enabled bool   `mapstructure:"enabled"`
	Region  string `mapstructure:"region"`
	ModelID string `mapstructure:"model_id"`
}

// OpenAI holds OpenAI API configuration.
type OpenAI struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// Anthropic holds Anthropic API configuration.
type Anthropic struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// LocalServer holds configuration for a self-hosted OpenAI-compatible server.
type LocalServer struct {
	Enabled bool   `mapstructure:"enabled"`
	URL     string `mapstructure:"url"`
	Model   string `mapstructure:"model"`
}

// Output holds rendered artifact configuration.
type Output struct {
	Directory string `mapstructure:"directory"`
}

// Email holds SMTP delivery configuration.
type Email struct {
	From       string `mapstructure:"from"`
	To         string `mapstructure:"to"`
	SMTPServer string `mapstructure:"smtp_server"`
	SMTPPort   int    `mapstructure:"smtp_port"`
	User       string `mapstructure:"user"`
	Password   string `mapstructure:"password"`
}

// Scheduler holds retry and gating configuration for scheduled runs.
type Scheduler struct {
	Time          string        `mapstructure:"time"` // HH:MM, local time
	RetryAttempts int           `mapstructure:"retry_attempts"`
	RetryDelay    time.Duration `mapstructure:"retry_delay"`
	SkipHolidays  bool          `mapstructure:"skip_holidays"`
	AdminEmail    string        `mapstructure:"admin_email"`
}

var globalConfig *Config

// Load loads configuration from the optional config file, .env, environment
// variables, and defaults, in the usual viper precedence order.
func Load(configFile string) (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: error loading .env file: %v\n", err)
		}
	}

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
		viper.SetConfigName(".ainews")
		viper.SetConfigType("yaml")
	}

	setDefaults()
	bindEnvironmentVariables()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	config.App.ConfigFile = viper.ConfigFileUsed()

	globalConfig = config
	return config, nil
}

// Get returns the global configuration, loading it if necessary.
func Get() *Config {
	if globalConfig == nil {
		config, err := Load("")
		if err != nil {
			panic(fmt.Sprintf("failed to load configuration: %v", err))
		}
		return config
	}
	return globalConfig
}

// Reset clears the cached configuration. Intended for tests.
func Reset() {
	globalConfig = nil
	viper.Reset()
}

func setDefaults() {
	viper.SetDefault("app.log_level", "info")

	viper.SetDefault("feeds.rss", map[string][]string{
		"industry": {
			"https://www.theverge.com/rss/index.xml",
			"https://venturebeat.com/category/ai/feed/",
		},
		"research": {
			"https://www.technologyreview.com/feed/",
		},
	})
	viper.SetDefault("feeds.articles_per_feed", 5)
	viper.SetDefault("feeds.hackernews.enabled", true)
	viper.SetDefault("feeds.hackernews.base_url", "https://hacker-news.firebaseio.com/v0")
	viper.SetDefault("feeds.hackernews.top_stories", 50)
	viper.SetDefault("feeds.hackernews.max_process", 20)
	viper.SetDefault("feeds.user_agent", "ainews/1.0")
	viper.SetDefault("feeds.timeout", "30s")
	viper.SetDefault("feeds.request_delay", "2s")

	viper.SetDefault("filter.min_article_length", 300)
	viper.SetDefault("filter.max_article_age_hours", 72)

	viper.SetDefault("curation.max_articles", 12)
	viper.SetDefault("curation.max_articles_per_category", 4)

	viper.SetDefault("llm.preferred", "bedrock")
	viper.SetDefault("llm.summary_delay", "3s")
	viper.SetDefault("llm.ollama.base_url", "http://localhost:11434")
	viper.SetDefault("llm.ollama.model", "mistral")
	viper.SetDefault("llm.bedrock.region", "us-east-1")
	viper.SetDefault("llm.bedrock.model_id", "anthropic.claude-3-sonnet-20240229-v1:0")
	viper.SetDefault("llm.openai.model", "gpt-4")
	viper.SetDefault("llm.openai.base_url", "https://api.openai.com/v1")
	viper.SetDefault("llm.anthropic.model", "claude-3-sonnet-20240229")
	viper.SetDefault("llm.local.url", "http://localhost:1234/v1/chat/completions")
	viper.SetDefault("llm.local.model", "mistral-7b-instruct-v0.1.Q4_K_M")

	viper.SetDefault("output.directory", "output")

	viper.SetDefault("email.smtp_port", 465)

	viper.SetDefault("scheduler.time", "07:00")
	viper.SetDefault("scheduler.retry_attempts", 3)
	viper.SetDefault("scheduler.retry_delay", "10m")
	viper.SetDefault("scheduler.skip_holidays", true)
}

// bindEnvironmentVariables maps the well-known environment variables onto
// viper keys, first match wins.
func bindEnvironmentVariables() {
	bindEnvKeys("email.from", []string{"EMAIL_FROM"})
	bindEnvKeys("email.to", []string{"EMAIL_TO"})
	bindEnvKeys("email.smtp_server", []string{"SMTP_SERVER", "SMTP_HOST"})
	bindEnvKeys("email.smtp_port", []string{"SMTP_PORT"})
	bindEnvKeys("email.user", []string{"EMAIL_USER", "SMTP_USERNAME"})
	bindEnvKeys("email.password", []string{"EMAIL_PASSWORD", "SMTP_PASSWORD"})

	bindEnvKeys("llm.openai.api_key", []string{"OPENAI_API_KEY"})
	bindEnvKeys("llm.anthropic.api_key", []string{"ANTHROPIC_API_KEY"})
	bindEnvKeys("llm.bedrock.region", []string{"AWS_REGION"})
	bindEnvKeys("llm.preferred", []string{"PREFERRED_LLM"})

	bindEnvKeys("scheduler.admin_email", []string{"ADMIN_EMAIL"})
}

// bindEnvKeys binds the first non-empty environment variable to a viper key.
func bindEnvKeys(viperKey string, envKeys []string) {
	for _, envKey := range envKeys {
		if value := os.Getenv(envKey); value != "" {
			viper.Set(viperKey, value)
			return
		}
	}
}
