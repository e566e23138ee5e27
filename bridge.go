package hostbridge

import (
	"github.com/wippyai/host-bridge/bind"
	"github.com/wippyai/host-bridge/hostapi"
	"github.com/wippyai/host-bridge/hostcfg"
	"github.com/wippyai/host-bridge/memhost"
	"github.com/wippyai/host-bridge/protect"
)

// Bridge bundles a running host with the protection registry rooted in it
// and a native function registry invoking through the boundary.
type Bridge struct {
	API     hostapi.API
	Protect *protect.Registry
	Funcs   *bind.Registry

	host *memhost.Host
}

// New starts an in-process reference host from the configuration and wires
// the registries to it.
func New(cfg *hostcfg.Config) (*Bridge, error) {
	if cfg == nil {
		cfg = hostcfg.Default()
	}

	host := memhost.New(
		memhost.WithSentinels(cfg.SentinelTable()),
		memhost.WithGCEvery(cfg.GCEvery()),
		memhost.WithMaxObjects(cfg.MaxObjects()),
	)

	preg := protect.NewRegistry()
	host.AddRoot(preg)

	return &Bridge{
		API:     host,
		Protect: preg,
		Funcs:   bind.NewRegistry(host, preg),
		host:    host,
	}, nil
}

// Host exposes the reference host for tuning and inspection. Nil when the
// bridge was built over an external API.
func (b *Bridge) Host() *memhost.Host {
	return b.host
}

// Close detaches the protection registry from the host. Outstanding handles
// no longer root anything; the next collection reclaims what they held.
func (b *Bridge) Close() error {
	if b.host != nil {
		b.host.RemoveRoot(b.Protect)
	}
	return nil
}
