package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configFileEnvName = "SEARCH_CONFIG_FILE"

type embedding struct {
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
	Token   string `mapstructure:"token"`
}

type broker struct {
	SeedBrokers        []string `mapstructure:"seed_brokers"`
	SchemaRegistryURLs []string `mapstructure:"schema_registry_urls"`
	SearchEventsTopic  string   `mapstructure:"search_events_topic"`
}

type search struct {
	VariantPoolSize int           `mapstructure:"variant_pool_size"`
	DiscountTTL     time.Duration `mapstructure:"discount_ttl"`
}

type Config struct {
	LogLevel       slog.Level `mapstructure:"log_level"`
	HTTPServerAddr string     `mapstructure:"http_server_addr"`
	SQLDB          string     `mapstructure:"sql_db"`
	Embedding      embedding  `mapstructure:"embedding"`
	Broker         broker     `mapstructure:"broker"`
	Search         search     `mapstructure:"search"`
}

func Load() Config {
	viper.SetConfigFile(getConfigFilepath())

	err := viper.ReadInConfig()
	if err != nil {
		die(err)
	}

	var cfg Config
	err = viper.UnmarshalExact(&cfg)
	if err != nil {
		die(err)
	}

	return cfg
}

func getConfigFilepath() string {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	arg := cmdLine.String("config", "/config.yaml", "config file")
	_ = cmdLine.Parse(os.Args[1:])
	env, ok := os.LookupEnv(configFileEnvName)
	if ok {
		return env
	}
	return *arg
}

func die(err error) {
	fmt.Printf("failed to load config file: %v\n", err)
	os.Exit(2)
}

func (c Config) Print() {
	tamplate := `
	General:
	LogLevel=%q
	HTTPServerAddr=%q
	SQLDB=%q

	Embedding:
	BaseURL=%q
	Model=%q

	Broker:
	SeedBrokers=%q
	SchemaRegistryURLs=%q
	SearchEventsTopic=%q

	Search:
	VariantPoolSize=%d
	DiscountTTL=%s

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(tamplate, "\n"),
		c.LogLevel,
		c.HTTPServerAddr,
		c.SQLDB,
		c.Embedding.BaseURL,
		c.Embedding.Model,
		c.Broker.SeedBrokers,
		c.Broker.SchemaRegistryURLs,
		c.Broker.SearchEventsTopic,
		c.Search.VariantPoolSize,
		c.Search.DiscountTTL,
	)
}
