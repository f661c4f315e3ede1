package domain

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// AllRegions is the filter value that disables region filtering.
const AllRegions = "All regions"

//go:embed regions.yaml
var defaultRegionsYAML []byte

// Region is one selectable region and the spellings the backend uses for it.
type Region struct {
	Name    string   `yaml:"name" json:"name"`
	Aliases []string `yaml:"aliases" json:"aliases,omitempty"`
}

// RegionCatalog is the list of regions offered by the region filter.
type RegionCatalog struct {
	Regions []Region `yaml:"regions" json:"regions"`
}

// DefaultRegionCatalog returns the embedded catalog.
func DefaultRegionCatalog() *RegionCatalog {
	c, err := ParseRegionCatalog(defaultRegionsYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded region catalog: %v", err))
	}
	return c
}

// LoadRegionCatalog reads a catalog from a YAML file. An empty path returns
// the embedded default.
func LoadRegionCatalog(path string) (*RegionCatalog, error) {
	if path == "" {
		return DefaultRegionCatalog(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read region catalog: %w", err)
	}
	return ParseRegionCatalog(data)
}

// ParseRegionCatalog decodes a YAML catalog.
func ParseRegionCatalog(data []byte) (*RegionCatalog, error) {
	var c RegionCatalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse region catalog: %w", err)
	}
	for i, r := range c.Regions {
		if strings.TrimSpace(r.Name) == "" {
			return nil, fmt.Errorf("parse region catalog: region %d has no name", i)
		}
	}
	return &c, nil
}

// Lookup finds the catalog region that name refers to, by name or alias.
func (c *RegionCatalog) Lookup(name string) (Region, bool) {
	if c == nil {
		return Region{}, false
	}
	for _, r := range c.Regions {
		if r.matches(name) {
			return r, true
		}
	}
	return Region{}, false
}

func (r Region) matches(value string) bool {
	v := strings.TrimSpace(value)
	if strings.EqualFold(v, r.Name) {
		return true
	}
	for _, a := range r.Aliases {
		if strings.EqualFold(v, a) {
			return true
		}
	}
	return false
}

// FilterByRegion keeps the projects located in region. An empty region or
// AllRegions keeps everything. A region missing from the catalog is matched
// against project region names directly.
func (c *RegionCatalog) FilterByRegion(projects []Project, region string) []Project {
	region = strings.TrimSpace(region)
	if region == "" || strings.EqualFold(region, AllRegions) {
		return projects
	}

	target, ok := c.Lookup(region)
	if !ok {
		target = Region{Name: region}
	}

	out := make([]Project, 0)
	for _, p := range projects {
		if target.matches(p.Location.Region) {
			out = append(out, p)
		}
	}
	return out
}
