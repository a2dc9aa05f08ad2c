package config

import (
	"net/url"
	"slices"
	"strconv"
	"time"

	"github.com/trebuchet-org/chaincfg/internal/domain"
)

// GasPricingMode controls how a network prices transactions
type GasPricingMode string

const (
	GasPricingAuto  GasPricingMode = "auto"
	GasPricingFixed GasPricingMode = "fixed"
)

// GasSetting is either "auto" or a fixed per-transaction gas amount
type GasSetting struct {
	Auto  bool   `json:"auto" yaml:"auto"`
	Value uint64 `json:"value,omitempty" yaml:"value,omitempty"`
}

// AutoGas is the "auto" gas setting
var AutoGas = GasSetting{Auto: true}

func (g GasSetting) String() string {
	if g.Auto {
		return "auto"
	}
	return strconv.FormatUint(g.Value, 10)
}

// ForkingConfig describes the remote state a local network mirrors
type ForkingConfig struct {
	URL         string        `json:"url" yaml:"url"`
	BlockNumber *uint64       `json:"blockNumber,omitempty" yaml:"blockNumber,omitempty"` // nil forks at latest
	Timeout     time.Duration `json:"timeout" yaml:"timeout"`
}

// AtLatest reports whether the fork follows the latest block
func (f *ForkingConfig) AtLatest() bool {
	return f.BlockNumber == nil
}

// NetworkProfile is one resolved network target
type NetworkProfile struct {
	Name        string         `json:"name" yaml:"name"`
	URL         string         `json:"url,omitempty" yaml:"url,omitempty"`
	Credentials []string       `json:"credentials,omitempty" yaml:"credentials,omitempty"`
	ChainID     uint64         `json:"chainId,omitempty" yaml:"chainId,omitempty"`
	GasLimit    *uint64        `json:"blockGasLimit,omitempty" yaml:"blockGasLimit,omitempty"`
	Gas         GasSetting     `json:"gas" yaml:"gas"`
	GasPricing  GasPricingMode `json:"gasPricing" yaml:"gasPricing"`
	GasPrice    uint64         `json:"gasPrice,omitempty" yaml:"gasPrice,omitempty"` // only with GasPricingFixed
	Timeout     time.Duration  `json:"timeout" yaml:"timeout"`
	Forking     *ForkingConfig `json:"forking,omitempty" yaml:"forking,omitempty"`
	Local       bool           `json:"local" yaml:"local"`
}

// ReadOnly reports whether the profile has no signing credentials
func (n NetworkProfile) ReadOnly() bool {
	return len(n.Credentials) == 0
}

// Simulated reports whether the network runs in-process without an endpoint
func (n NetworkProfile) Simulated() bool {
	return n.URL == "" && n.Local
}

// Endpoint returns the URL a client should talk to: the profile's own
// endpoint, or the fork source for simulated networks.
func (n NetworkProfile) Endpoint() string {
	if n.URL == "" && n.Forking != nil {
		return n.Forking.URL
	}
	return n.URL
}

func (n NetworkProfile) clone() NetworkProfile {
	c := n
	c.Credentials = slices.Clone(n.Credentials)
	if n.GasLimit != nil {
		v := *n.GasLimit
		c.GasLimit = &v
	}
	if n.Forking != nil {
		f := *n.Forking
		if n.Forking.BlockNumber != nil {
			b := *n.Forking.BlockNumber
			f.BlockNumber = &b
		}
		c.Forking = &f
	}
	return c
}

// NetworkSet is an ordered collection of profiles with unique names
type NetworkSet struct {
	order    []string
	profiles map[string]NetworkProfile
}

// NewNetworkSet builds a set, failing on the first repeated name
func NewNetworkSet(profiles ...NetworkProfile) (NetworkSet, error) {
	set := NetworkSet{
		order:    make([]string, 0, len(profiles)),
		profiles: make(map[string]NetworkProfile, len(profiles)),
	}
	for _, p := range profiles {
		if _, exists := set.profiles[p.Name]; exists {
			return NetworkSet{}, &domain.DuplicateProfileError{Name: p.Name}
		}
		set.order = append(set.order, p.Name)
		set.profiles[p.Name] = p.clone()
	}
	return set, nil
}

// Get returns a copy of the named profile
func (s NetworkSet) Get(name string) (NetworkProfile, bool) {
	p, ok := s.profiles[name]
	if !ok {
		return NetworkProfile{}, false
	}
	return p.clone(), true
}

// Names returns profile names in declaration order
func (s NetworkSet) Names() []string {
	return slices.Clone(s.order)
}

// All returns copies of every profile in declaration order
func (s NetworkSet) All() []NetworkProfile {
	out := make([]NetworkProfile, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.profiles[name].clone())
	}
	return out
}

// Len returns the number of profiles
func (s NetworkSet) Len() int {
	return len(s.order)
}

// RedactURL strips credentials, path and query from an endpoint so it can
// be shown to operators. RPC providers commonly embed API keys in the path.
func RedactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	redacted := u.Scheme + "://" + u.Host
	if (u.Path != "" && u.Path != "/") || u.RawQuery != "" || u.User != nil {
		redacted += "/…"
	}
	return redacted
}
