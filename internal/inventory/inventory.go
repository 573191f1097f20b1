// Package inventory probes the local machine and describes it as a
// models.Host.
//
// Every probe is best effort: a failed CPU, memory or OS probe is logged
// and the matching field is left absent, which the report format allows.
// Only the hostname is mandatory.
package inventory

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/jaypipes/ghw"
	"go.uber.org/zap"

	"evalgo.org/fuzzreport/models"
)

// ErrNoHostname is returned when no hostname can be determined.
var ErrNoHostname = errors.New("hostname unavailable")

// Collector builds host inventory from hardware probes.
type Collector struct {
	logger   *zap.Logger
	override string

	hostname func() (string, error)
	cpu      func() (*ghw.CPUInfo, error)
	memory   func() (*ghw.MemoryInfo, error)
	system   func() (System, error)
}

// Option configures a Collector.
type Option func(*Collector)

// WithHostname reports name instead of the probed hostname.
func WithHostname(name string) Option {
	return func(c *Collector) {
		c.override = strings.TrimSpace(name)
	}
}

// New creates a Collector probing the running machine.
func New(logger *zap.Logger, opts ...Option) *Collector {
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Collector{
		logger:   logger,
		hostname: os.Hostname,
		cpu:      func() (*ghw.CPUInfo, error) { return ghw.CPU() },
		memory:   func() (*ghw.MemoryInfo, error) { return ghw.Memory() },
		system:   uname,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Report collects the local host and wraps it in a report stamped at now.
func (c *Collector) Report(ctx context.Context, now time.Time) (*models.Report, error) {
	host, err := c.Host(ctx)
	if err != nil {
		return nil, err
	}
	return models.NewReport(now, host), nil
}

// Host probes the local machine.
func (c *Collector) Host(ctx context.Context) (models.Host, error) {
	name, err := c.resolveHostname()
	if err != nil {
		return models.Host{}, err
	}
	host := models.Host{Hostname: name}

	if err := ctx.Err(); err != nil {
		return models.Host{}, err
	}
	sys, err := c.system()
	if err != nil {
		c.logger.Warn("os probe failed", zap.Error(err))
	} else {
		host.OS = models.Ptr(sys.String())
	}

	if err := ctx.Err(); err != nil {
		return models.Host{}, err
	}
	if info, err := c.cpu(); err != nil {
		c.logger.Warn("cpu probe failed", zap.Error(err))
	} else {
		host.Cpus = cpuGroups(info, architecture(sys))
	}

	if err := ctx.Err(); err != nil {
		return models.Host{}, err
	}
	if info, err := c.memory(); err != nil {
		c.logger.Warn("memory probe failed", zap.Error(err))
	} else if mem, ok := memorySegment(info); ok {
		host.Memory = []models.Memory{mem}
	}

	c.logger.Debug("host collected",
		zap.String("hostname", host.Hostname),
		zap.Int("cpu_groups", len(host.Cpus)),
		zap.Int("memory_segments", len(host.Memory)),
	)
	return host, nil
}

func (c *Collector) resolveHostname() (string, error) {
	if c.override != "" {
		return c.override, nil
	}

	name, err := c.hostname()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoHostname, err)
	}
	if name = strings.TrimSpace(name); name == "" {
		return "", ErrNoHostname
	}
	return name, nil
}

// cpuGroups merges processors sharing a vendor and model into one Cpu.
func cpuGroups(info *ghw.CPUInfo, arch string) []models.Cpu {
	if info == nil || len(info.Processors) == 0 {
		return nil
	}

	type group struct {
		model   string
		cores   uint32
		threads uint32
	}
	groups := map[string]*group{}
	var order []string

	for _, p := range info.Processors {
		if p == nil {
			continue
		}
		model := strings.TrimSpace(strings.TrimSpace(p.Vendor) + " " + strings.TrimSpace(p.Model))
		g, ok := groups[model]
		if !ok {
			g = &group{model: model}
			groups[model] = g
			order = append(order, model)
		}
		g.cores += p.NumCores
		g.threads += p.NumThreads
	}
	sort.Strings(order)

	cpus := make([]models.Cpu, 0, len(order))
	for _, key := range order {
		g := groups[key]
		cpu := models.Cpu{}
		if arch != "" {
			cpu.Architecture = models.Ptr(arch)
		}
		if g.model != "" {
			cpu.Model = models.Ptr(g.model)
		}
		if g.cores > 0 {
			cpu.Cores = models.Ptr(g.cores)
		}
		if g.threads > 0 {
			cpu.Threads = models.Ptr(g.threads)
		}
		cpus = append(cpus, cpu)
	}
	return cpus
}

// memorySegment reports physical memory in bytes, falling back to usable
// memory when the physical total is unknown.
func memorySegment(info *ghw.MemoryInfo) (models.Memory, bool) {
	if info == nil {
		return models.Memory{}, false
	}

	total := info.TotalPhysicalBytes
	if total <= 0 {
		total = info.TotalUsableBytes
	}
	if total <= 0 {
		return models.Memory{}, false
	}

	return models.Memory{
		Total: models.Ptr(uint64(total)),
		Unit:  models.Ptr("B"),
	}, true
}

func architecture(sys System) string {
	if sys.Machine != "" {
		return sys.Machine
	}
	return runtime.GOARCH
}
