// Package config reads gridraw configuration files.
//
// A configuration file is TOML. It configures the cache, the drawing store,
// the API server and batch runs. Batch jobs are listed as [[job]] tables or
// generated from a [batch.sweep] over sizes, seeds and algorithms; every
// job inherits unset fields from [defaults].
//
//	[output]
//	dir = "out"
//	formats = ["svg", "json"]
//
//	[cache]
//	backend = "badger"
//	dir = "/var/cache/gridraw"
//
//	[defaults]
//	algorithm = "a"
//	verify = true
//
//	[batch]
//	workers = 8
//
//	[batch.sweep]
//	vertices = [50, 100, 200]
//	seeds = { from = 1, count = 10 }
//	algorithms = ["shift", "a", "b"]
//
//	[[job]]
//	name = "reference"
//	source = "reference"
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/gridraw/pkg/cache"
	gerr "github.com/matzehuels/gridraw/pkg/errors"
	"github.com/matzehuels/gridraw/pkg/pipeline"
	"github.com/matzehuels/gridraw/pkg/store"
)

// Config is the root of a configuration file.
type Config struct {
	Output   OutputConfig       `toml:"output"`
	Cache    CacheConfig        `toml:"cache"`
	Store    StoreConfig        `toml:"store"`
	Server   ServerConfig       `toml:"server"`
	Batch    BatchConfig        `toml:"batch"`
	Defaults pipeline.Options   `toml:"defaults"`
	Job      []pipeline.Options `toml:"job"`
}

// OutputConfig says where batch artifacts go.
type OutputConfig struct {
	Dir     string   `toml:"dir"`
	Formats []string `toml:"formats"`
}

// CacheConfig selects the cache backend; see cache.Open.
type CacheConfig struct {
	Backend   string `toml:"backend"`
	Dir       string `toml:"dir"`
	RedisURL  string `toml:"redis_url"`
	RedisAddr string `toml:"redis_addr"`
}

// StoreConfig enables the MongoDB drawing store when MongoURI is set.
type StoreConfig struct {
	MongoURI   string `toml:"mongo_uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr    string `toml:"addr"`
	Metrics bool   `toml:"metrics"`
}

// BatchConfig configures batch runs.
type BatchConfig struct {
	Workers int          `toml:"workers"`
	Sweep   *SweepConfig `toml:"sweep"`
}

// SweepConfig generates one job per (vertices, seed, algorithm) triple.
type SweepConfig struct {
	Vertices   []int     `toml:"vertices"`
	Seeds      SeedRange `toml:"seeds"`
	Algorithms []string  `toml:"algorithms"`
}

// SeedRange is the seeds From, From+1, ..., From+Count-1.
type SeedRange struct {
	From  uint64 `toml:"from"`
	Count int    `toml:"count"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Output: OutputConfig{Dir: ".", Formats: []string{pipeline.FormatJSON}},
		Cache:  CacheConfig{Backend: cache.BackendFile},
		Server: ServerConfig{Addr: ":8080", Metrics: true},
	}
}

// ErrUnknownKey is returned by Load for keys that map to no field.
var ErrUnknownKey = errors.New("unknown configuration key")

// Load reads the TOML file at path on top of Default. Unknown keys are an
// error. Relative paths in the file are taken relative to its directory.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, gerr.Wrap(gerr.ErrCodeFileNotFound, err, "read config %s", path)
	}
	cfg, err := Parse(string(data))
	if err != nil {
		return Config{}, err
	}
	cfg.resolve(filepath.Dir(path))
	return cfg, nil
}

// resolve makes relative paths in c relative to dir.
func (c *Config) resolve(dir string) {
	abs := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(dir, p)
	}
	c.Output.Dir = abs(c.Output.Dir)
	c.Cache.Dir = abs(c.Cache.Dir)
	c.Defaults.Path = abs(c.Defaults.Path)
	for i := range c.Job {
		c.Job[i].Path = abs(c.Job[i].Path)
	}
}

// Parse decodes TOML text on top of Default.
func Parse(text string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(text, &cfg)
	if err != nil {
		return Config{}, gerr.Wrap(gerr.ErrCodeInvalidFormat, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, gerr.Wrap(gerr.ErrCodeInvalidFormat, ErrUnknownKey, "%s", strings.Join(keys, ", "))
	}
	return cfg, cfg.Validate()
}

// Validate checks values that the decoder cannot.
func (c Config) Validate() error {
	if err := pipeline.ValidateFormats(c.Output.Formats); err != nil {
		return err
	}
	if c.Batch.Workers < 0 {
		return gerr.New(gerr.ErrCodeInvalidInput, "batch.workers must not be negative")
	}
	if s := c.Batch.Sweep; s != nil {
		for _, alg := range s.Algorithms {
			if err := pipeline.ValidateAlgorithm(alg); err != nil {
				return err
			}
		}
		for _, n := range s.Vertices {
			if err := gerr.ValidateVertexCount(n); err != nil {
				return fmt.Errorf("batch.sweep.vertices: %w", err)
			}
		}
		if s.Seeds.Count < 0 {
			return gerr.New(gerr.ErrCodeInvalidInput, "batch.sweep.seeds.count must not be negative")
		}
	}
	return nil
}

// CacheOptions converts the cache section for cache.Open.
func (c Config) CacheOptions() cache.Config {
	return cache.Config{
		Backend:   c.Cache.Backend,
		Dir:       c.Cache.Dir,
		RedisURL:  c.Cache.RedisURL,
		RedisAddr: c.Cache.RedisAddr,
	}
}

// MongoOptions converts the store section. ok is false when no store is
// configured.
func (c Config) MongoOptions() (store.MongoConfig, bool) {
	if c.Store.MongoURI == "" {
		return store.MongoConfig{}, false
	}
	return store.MongoConfig{
		URI:        c.Store.MongoURI,
		Database:   c.Store.Database,
		Collection: c.Store.Collection,
	}, true
}

// Jobs expands the sweep and the [[job]] list, sweep first, and fills unset
// fields from Defaults and the output formats.
func (c Config) Jobs() []pipeline.Options {
	var jobs []pipeline.Options
	if s := c.Batch.Sweep; s != nil {
		algs := s.Algorithms
		if len(algs) == 0 {
			algs = []string{""}
		}
		count := max(s.Seeds.Count, 1)
		from := s.Seeds.From
		if from == 0 {
			from = pipeline.DefaultSeed
		}
		for _, n := range s.Vertices {
			for i := range count {
				for _, alg := range algs {
					jobs = append(jobs, pipeline.Options{
						Source:    pipeline.SourceGenerate,
						Vertices:  n,
						Seed:      from + uint64(i),
						Algorithm: alg,
					})
				}
			}
		}
	}
	jobs = append(jobs, c.Job...)

	def := c.Defaults
	if len(def.Formats) == 0 {
		def.Formats = c.Output.Formats
	}
	for i := range jobs {
		jobs[i] = inherit(jobs[i], def)
	}
	return jobs
}

// inherit fills the zero fields of job from def.
func inherit(job, def pipeline.Options) pipeline.Options {
	if job.Source == "" && job.Path == "" {
		job.Source = def.Source
		job.Path = def.Path
	}
	if job.Vertices == 0 {
		job.Vertices = def.Vertices
	}
	if job.Seed == 0 {
		job.Seed = def.Seed
	}
	if len(job.OuterFace) == 0 {
		job.OuterFace = def.OuterFace
	}
	if job.Algorithm == "" {
		job.Algorithm = def.Algorithm
	}
	if job.MaxIncrements == 0 {
		job.MaxIncrements = def.MaxIncrements
	}
	job.Verify = job.Verify || def.Verify
	job.Trace = job.Trace || def.Trace
	job.Refresh = job.Refresh || def.Refresh
	if len(job.Formats) == 0 {
		job.Formats = def.Formats
	}
	if job.Scale == 0 {
		job.Scale = def.Scale
	}
	job.Grid = job.Grid || def.Grid
	return job
}
