package config

import (
	"os"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"slack-archiver/internal/domain"
	"slack-archiver/pkg/log"
)

const defaultReloadInterval = 10 * time.Second

// FeatureProfile holds the default feature flags and reloads them when the
// file changes on disk.
type FeatureProfile struct {
	mu          sync.RWMutex
	flags       domain.FeatureFlags
	lastModTime time.Time
	filePath    string

	interval time.Duration
	stop     chan struct{}
	stopOnce sync.Once
}

// rawProfile represents the YAML structure.
type rawProfile struct {
	Fetch struct {
		Users   bool `yaml:"users"`
		Channel bool `yaml:"channel"`
		Team    bool `yaml:"team"`
		Files   bool `yaml:"files"`
	} `yaml:"fetch"`
}

// LoadFeatureProfile reads the profile at filePath and starts watching it.
func LoadFeatureProfile(filePath string) (*FeatureProfile, error) {
	return loadFeatureProfile(filePath, defaultReloadInterval)
}

func loadFeatureProfile(filePath string, interval time.Duration) (*FeatureProfile, error) {
	p := &FeatureProfile{
		filePath: filePath,
		interval: interval,
		stop:     make(chan struct{}),
	}
	if err := p.reload(); err != nil {
		return nil, err
	}

	go p.watch()

	return p, nil
}

// StaticFeatureProfile returns a profile that never reloads.
func StaticFeatureProfile(flags domain.FeatureFlags) *FeatureProfile {
	return &FeatureProfile{flags: flags, stop: make(chan struct{})}
}

func (p *FeatureProfile) reload() error {
	info, err := os.Stat(p.filePath)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(p.filePath)
	if err != nil {
		return err
	}

	var raw rawProfile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.flags = domain.FeatureFlags{
		FetchUsers:   raw.Fetch.Users,
		FetchChannel: raw.Fetch.Channel,
		FetchTeam:    raw.Fetch.Team,
		FetchFiles:   raw.Fetch.Files,
	}
	p.lastModTime = info.ModTime()

	return nil
}

// watch polls the file mtime. A broken file keeps the last good flags.
func (p *FeatureProfile) watch() {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.stop:
			return
		case <-ticker.C:
			info, err := os.Stat(p.filePath)
			if err != nil {
				continue
			}
			p.mu.RLock()
			changed := info.ModTime().After(p.lastModTime)
			p.mu.RUnlock()
			if !changed {
				continue
			}
			if err := p.reload(); err != nil {
				log.GlobalWarn("feature profile reload failed", "path", p.filePath, "error", err)
				continue
			}
			log.GlobalInfo("feature profile reloaded", "path", p.filePath, "flags", p.Flags().String())
		}
	}
}

// Flags returns the current default flags.
func (p *FeatureProfile) Flags() domain.FeatureFlags {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.flags
}

// Close stops the watcher.
func (p *FeatureProfile) Close() {
	p.stopOnce.Do(func() { close(p.stop) })
}
