package config

import "strings"

// City maps a selectable city name to the dataset that backs it.
// - Name: lower-case name the user types at the prompt (e.g., "new york city").
// - File: dataset path, relative to DataDir unless absolute. May be compressed.
// - URL: optional download location used by `bikeshare fetch`.
type City struct {
	Name string `yaml:"name"`
	File string `yaml:"file"`
	URL  string `yaml:"url,omitempty"`
}

// Config is the top-level structure returned after loading config.yaml.
type Config struct {
	DataDir   string `yaml:"data_dir"`
	PageSize  int    `yaml:"page_size"`  // Raw rows shown per page
	CacheSize int    `yaml:"cache_size"` // Number of loaded city tables kept in memory
	Cities    []City `yaml:"cities"`
}

// CityNames returns the configured city names in configuration order.
func (c Config) CityNames() []string {
	names := make([]string, 0, len(c.Cities))
	for _, city := range c.Cities {
		names = append(names, city.Name)
	}
	return names
}

// Lookup returns the city with the given name, ignoring case and
// surrounding whitespace.
func (c Config) Lookup(name string) (City, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, city := range c.Cities {
		if city.Name == name {
			return city, true
		}
	}
	return City{}, false
}
