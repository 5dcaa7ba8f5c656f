package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"go-splendor/game"
)

// Config 服务启动配置，全部来自环境变量
type Config struct {
	HTTPAddr        string   `env:"HTTP_ADDR"        envDefault:":8000"`
	RedisAddr       string   `env:"REDIS_ADDR"       envDefault:"localhost:6379"`
	RedisDB         int      `env:"REDIS_DB"         envDefault:"0"`
	RedisEnabled    bool     `env:"REDIS_ENABLED"    envDefault:"true"`
	NatsURL         string   `env:"NATS_URL"` // 为空则不发布事件
	HistoryDSN      string   `env:"HISTORY_DSN"      envDefault:"file:history.db"`
	AdminToken      string   `env:"ADMIN_TOKEN"`
	CorsOrigins     []string `env:"CORS_ORIGINS"     envSeparator:","`
	LogLevel        string   `env:"LOG_LEVEL"        envDefault:"info"`
	LogDev          bool     `env:"LOG_DEV"          envDefault:"false"`
	RoomResetHour   int      `env:"ROOM_RESET_HOUR"  envDefault:"4"`
	CardsFile       string   `env:"CARDS_FILE"`
	CollectionsFile string   `env:"COLLECTIONS_FILE"`

	Game GameConfig `envPrefix:"GAME_"`
}

type GameConfig struct {
	RevealCount       int    `env:"REVEAL_COUNT"        envDefault:"4"`
	CollectionsInPlay int    `env:"COLLECTIONS_IN_PLAY" envDefault:"5"`
	WinScore          int    `env:"WIN_SCORE"           envDefault:"15"`
	MaxTokens         int    `env:"MAX_TOKENS"          envDefault:"10"`
	MaxReservations   int    `env:"MAX_RESERVATIONS"    envDefault:"3"`
	TakeSameMinBank   int    `env:"TAKE_SAME_MIN_BANK"  envDefault:"4"`
	BankTokens        int    `env:"BANK_TOKENS"         envDefault:"7"`
	BankGold          int    `env:"BANK_GOLD"           envDefault:"5"`
	Debug             bool   `env:"DEBUG"               envDefault:"false"`
	Seed              uint64 `env:"SEED"                envDefault:"0"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.RoomResetHour < 0 || c.RoomResetHour > 23 {
		return fmt.Errorf("ROOM_RESET_HOUR 超出范围: %d", c.RoomResetHour)
	}
	g := c.Game
	if g.RevealCount < 1 || g.MaxTokens < 3 || g.WinScore < 1 || g.MaxReservations < 0 {
		return fmt.Errorf("非法的游戏规则配置: %+v", g)
	}
	if g.CollectionsInPlay < 0 || g.BankTokens < 0 || g.BankGold < 0 || g.TakeSameMinBank < 2 {
		return fmt.Errorf("非法的游戏规则配置: %+v", g)
	}
	return nil
}

// Ruleset 转成引擎使用的规则
func (g GameConfig) Ruleset() game.Ruleset {
	return game.Ruleset{
		RevealCount:       g.RevealCount,
		CollectionsInPlay: g.CollectionsInPlay,
		WinScore:          g.WinScore,
		MaxTokens:         g.MaxTokens,
		MaxReservations:   g.MaxReservations,
		TakeSameMinBank:   g.TakeSameMinBank,
		BankTokens:        g.BankTokens,
		BankGold:          g.BankGold,
		Debug:             g.Debug,
		Seed:              g.Seed,
	}
}
