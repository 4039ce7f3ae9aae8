package cli

import (
	"context"
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/hupe1980/opfgo/blobstore"
	"github.com/hupe1980/opfgo/blobstore/minio"
	"github.com/hupe1980/opfgo/blobstore/s3"
	"github.com/hupe1980/opfgo/resource"
)

// Config is the layout of the --config TOML file.
type Config struct {
	Storage StorageConfig `toml:"storage"`
	Limits  LimitsConfig  `toml:"limits"`
}

// StorageConfig selects the blob store used by push, pull and list.
type StorageConfig struct {
	Backend   string `toml:"backend"` // local, minio or s3
	Root      string `toml:"root"`
	Endpoint  string `toml:"endpoint"`
	Bucket    string `toml:"bucket"`
	Prefix    string `toml:"prefix"`
	AccessKey string `toml:"access_key"`
	SecretKey string `toml:"secret_key"`
	Secure    bool   `toml:"secure"`
	Region    string `toml:"region"`
}

// LimitsConfig bounds memory, IO bandwidth and parallelism.
type LimitsConfig struct {
	MemoryBytes   int64 `toml:"memory_bytes"`
	IOBytesPerSec int64 `toml:"io_bytes_per_sec"`
	Concurrency   int   `toml:"concurrency"`
}

// DefaultConfig returns the configuration used without --config.
func DefaultConfig() Config {
	return Config{
		Storage: StorageConfig{
			Backend: "local",
			Root:    "./data",
		},
		Limits: LimitsConfig{
			Concurrency: 4,
		},
	}
}

// LoadConfig reads a TOML file on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("load config %s: unknown key %q", path, undecoded[0].String())
	}
	if cfg.Limits.Concurrency < 1 {
		cfg.Limits.Concurrency = 1
	}
	return cfg, nil
}

// Controller builds a resource controller from the limits.
func (l LimitsConfig) Controller() *resource.Controller {
	return resource.NewController(resource.Config{
		MemoryLimitBytes:   l.MemoryBytes,
		MaxWorkers:         int64(max(l.Concurrency, 1)),
		IOLimitBytesPerSec: l.IOBytesPerSec,
	})
}

// OpenStore connects to the configured backend.
func (s StorageConfig) OpenStore(ctx context.Context) (blobstore.Store, error) {
	switch s.Backend {
	case "", "local":
		return blobstore.NewLocalStore(s.Root), nil
	case "minio":
		store, err := minio.Dial(minio.Config{
			Endpoint:  s.Endpoint,
			AccessKey: s.AccessKey,
			SecretKey: s.SecretKey,
			Secure:    s.Secure,
			Region:    s.Region,
			Bucket:    s.Bucket,
			Prefix:    s.Prefix,
		})
		if err != nil {
			return nil, fmt.Errorf("connect minio: %w", err)
		}
		return store, nil
	case "s3":
		var opts []s3.Option
		if s.Prefix != "" {
			opts = append(opts, s3.WithPrefix(s.Prefix))
		}
		if s.Region != "" {
			opts = append(opts, s3.WithRegion(s.Region))
		}
		if s.Endpoint != "" {
			opts = append(opts, s3.WithEndpoint(s.Endpoint))
		}
		store, err := s3.New(ctx, s.Bucket, opts...)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", s.Backend)
	}
}
