package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	defaultPath       = "."
	defaultAPITimeout = 15 * time.Second
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	// API configures the remote commerce API the SDK talks to.
	API APIConfig `json:"api" yaml:"api"`

	// Session selects the persisted session store backend.
	Session *SessionConfig `json:"session" yaml:"session"`

	// Checkout carries the storefront's shipping business rule.
	Checkout *CheckoutConfig `json:"checkout" yaml:"checkout"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// APIConfig defines how the remote commerce API is reached.
type APIConfig struct {
	BaseURL string        `json:"baseUrl" yaml:"baseUrl" validate:"required,url"`
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// SessionConfig selects and configures the session store backend.
type SessionConfig struct {
	// Provider is "memory", "redis" or "blob". Empty means memory.
	Provider string `json:"provider" yaml:"provider"`

	Redis *RedisConfig `json:"redis" yaml:"redis"`
	Blob  *BlobConfig  `json:"blob" yaml:"blob"`
}

// RedisConfig configures the redis session store.
type RedisConfig struct {
	Addr     string        `json:"addr" yaml:"addr"`
	Password string        `json:"password" yaml:"password"`
	DB       int           `json:"db" yaml:"db"`
	TTL      time.Duration `json:"ttl" yaml:"ttl"` // zero keeps sessions forever
}

// BlobConfig configures the blob session store.
type BlobConfig struct {
	// URL is a gocloud bucket URL, e.g. file:///var/lib/bijou/sessions.
	URL string `json:"url" yaml:"url"`
}

// CheckoutConfig defines the shipping fee rule applied at checkout.
type CheckoutConfig struct {
	ShippingFee float64 `json:"shippingFee" yaml:"shippingFee" validate:"gte=0"`

	// FreeShippingOver waives the fee for subtotals at or above this
	// amount. Zero means shipping is never waived.
	FreeShippingOver float64 `json:"freeShippingOver" yaml:"freeShippingOver" validate:"gte=0"`
}

// LoadWithEnv loads <env>.yaml through koanf and overlays environment variables.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build the list of paths to search for the config file.
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			searchPaths = append(searchPaths, filepath.Join(pwd, path))
		}
	}

	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Overlay environment variables, aligning each key segment with the
	// camelCase keys already present in the YAML.
	// Example: SESSION_REDIS_ADDR -> session.redis.addr, API_BASEURL -> api.baseUrl
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			return canonicalizeEnvKey(k, existingConfigMap), v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

// New loads the SDK configuration, applies defaults and validates it.
func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	if cfg.API.Timeout <= 0 {
		cfg.API.Timeout = defaultAPITimeout
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	return cfg, nil
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing
	atLeaf := false

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if atLeaf {
			// The variable digs below a scalar already set in the file,
			// e.g. API_TIMEOUT_MS under api.timeout. Ingesting it would
			// turn the scalar into a map and break decoding, so the
			// variable is dropped instead. An empty key tells koanf to
			// skip it.
			return ""
		}

		if matched, next, leaf, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
			atLeaf = leaf
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, leaf, ok bool) {
	if len(current) == 0 {
		return "", nil, false, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, isMap := value.(map[string]any)

		return key, child, !isMap, true
	}

	return "", nil, false, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}
