package model

// Cache backends understood by AppConfig.CacheBackend.
const (
	CacheNone  = "none"
	CacheFile  = "file"
	CacheRedis = "redis"
)

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Defaults applied to new packings
	DefaultStripWidth     float64 `toml:"default_strip_width"`
	DefaultMaxStripLength float64 `toml:"default_max_strip_length"`
	DefaultPadding        float64 `toml:"default_padding"`
	DefaultAllowRotation  bool    `toml:"default_allow_rotation"`
	DefaultRoll           string  `toml:"default_roll"` // roll catalog ID or name, optional

	// Result cache
	CacheBackend    string `toml:"cache_backend"` // "none", "file", "redis"
	CacheTTLMinutes int    `toml:"cache_ttl_minutes"`
	RedisAddr       string `toml:"redis_addr"`
	RedisDB         int    `toml:"redis_db"`

	// HTTP API
	ListenAddr    string `toml:"listen_addr"`
	MaxConcurrent int    `toml:"max_concurrent"` // simultaneous pack requests, 0 = unlimited

	RecentProjects []string `toml:"recent_projects"`
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching the values from DefaultPackingOptions().
func DefaultAppConfig() AppConfig {
	defaults := DefaultPackingOptions()
	return AppConfig{
		DefaultStripWidth:     defaults.StripWidth,
		DefaultMaxStripLength: defaults.MaxStripLength,
		DefaultPadding:        defaults.Padding,
		DefaultAllowRotation:  defaults.AllowRotation,
		CacheBackend:          CacheFile,
		CacheTTLMinutes:       60,
		RedisAddr:             "localhost:6379",
		ListenAddr:            ":8080",
		MaxConcurrent:         8,
		RecentProjects:        []string{},
	}
}

// PackingOptions builds the default PackingOptions described by this config.
func (c AppConfig) PackingOptions() PackingOptions {
	opts := PackingOptions{
		StripWidth:     c.DefaultStripWidth,
		MaxStripLength: c.DefaultMaxStripLength,
		AllowRotation:  c.DefaultAllowRotation,
		Padding:        c.DefaultPadding,
	}
	if opts.StripWidth <= 0 {
		opts.StripWidth = DefaultStripWidth
	}
	return opts.WithDefaults()
}

// AddRecentProject moves path to the front of the recent list, keeping at most 10 entries.
func (c *AppConfig) AddRecentProject(path string) {
	recent := []string{path}
	for _, p := range c.RecentProjects {
		if p != path && len(recent) < 10 {
			recent = append(recent, p)
		}
	}
	c.RecentProjects = recent
}
