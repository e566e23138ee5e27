package hostcfg

import (
	"fmt"
	"math"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/wippyai/host-bridge/hostapi"
)

// Config is the declarative host setup: collector tuning plus the
// missing-value encoding table.
type Config struct {
	Host      *HostBlock      `hcl:"host,block"`
	Sentinels *SentinelsBlock `hcl:"sentinels,block"`
}

// HostBlock tunes the reference host.
type HostBlock struct {
	// GCEvery runs a collection every n allocations; zero disables
	// automatic collection.
	GCEvery int `hcl:"gc_every,optional"`
	// MaxObjects caps live objects; zero means unlimited.
	MaxObjects int `hcl:"max_objects,optional"`
}

// SentinelsBlock declares the missing-value encodings. Unset fields keep
// their defaults.
type SentinelsBlock struct {
	Integer     *int64  `hcl:"integer,optional"`
	Logical     *int64  `hcl:"logical,optional"`
	RealPayload *int64  `hcl:"real_payload,optional"`
	String      *string `hcl:"string,optional"`
}

// Default returns the configuration matching the built-in sentinel table
// with automatic collection disabled.
func Default() *Config {
	return &Config{}
}

// evalContext exposes the constants sentinel declarations usually want.
func evalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"min_int32":            cty.NumberIntVal(math.MinInt32),
			"max_int32":            cty.NumberIntVal(math.MaxInt32),
			"default_real_payload": cty.NumberIntVal(int64(hostapi.DefaultRealPayload)),
		},
	}
}

// Load parses and decodes an HCL configuration file.
func Load(path string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config file %s: %s", path, diags.Error())
	}
	return decode(file.Body, path)
}

// LoadBytes decodes an in-memory HCL configuration. filename only labels
// diagnostics.
func LoadBytes(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config %s: %s", filename, diags.Error())
	}
	return decode(file.Body, filename)
}

func decode(body hcl.Body, name string) (*Config, error) {
	var cfg Config
	diags := gohcl.DecodeBody(body, evalContext(), &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode config %s: %s", name, diags.Error())
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Host != nil {
		if c.Host.GCEvery < 0 {
			return fmt.Errorf("host.gc_every cannot be negative")
		}
		if c.Host.MaxObjects < 0 {
			return fmt.Errorf("host.max_objects cannot be negative")
		}
	}
	if s := c.Sentinels; s != nil {
		if s.Integer != nil && (*s.Integer < math.MinInt32 || *s.Integer > math.MaxInt32) {
			return fmt.Errorf("sentinels.integer outside int32 range")
		}
		if s.Logical != nil && (*s.Logical < math.MinInt32 || *s.Logical > math.MaxInt32) {
			return fmt.Errorf("sentinels.logical outside int32 range")
		}
		if s.RealPayload != nil && (*s.RealPayload < 0 || *s.RealPayload > math.MaxUint32) {
			return fmt.Errorf("sentinels.real_payload outside uint32 range")
		}
		if s.String != nil && *s.String == "" {
			return fmt.Errorf("sentinels.string cannot be empty")
		}
	}
	return nil
}

// SentinelTable resolves the configured encodings over the defaults.
func (c *Config) SentinelTable() hostapi.Sentinels {
	table := hostapi.Default()
	if c == nil || c.Sentinels == nil {
		return table
	}
	s := c.Sentinels
	if s.Integer != nil {
		table.Integer = int32(*s.Integer)
	}
	if s.Logical != nil {
		table.Logical = hostapi.Logical(*s.Logical)
	}
	if s.RealPayload != nil {
		table.RealPayload = uint32(*s.RealPayload)
	}
	if s.String != nil {
		table.String = *s.String
	}
	return table
}

// GCEvery returns the configured collection interval, zero when unset.
func (c *Config) GCEvery() int {
	if c == nil || c.Host == nil {
		return 0
	}
	return c.Host.GCEvery
}

// MaxObjects returns the configured object cap, zero when unset.
func (c *Config) MaxObjects() int {
	if c == nil || c.Host == nil {
		return 0
	}
	return c.Host.MaxObjects
}
