/*
 mcsalloc, allocates gdxsv match servers on GCE and Hetzner Cloud.
 Copyright (C) 2025 The gdxsv mcsalloc authors

 This program is free software: you can redistribute it and/or modify
 it under the terms of the GNU Affero General Public License as published by
 the Free Software Foundation, either version 3 of the License, or
 (at your option) any later version.

 This program is distributed in the hope that it will be useful,
 but WITHOUT ANY WARRANTY; without even the implied warranty of
 MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 GNU Affero General Public License for more details.

 You should have received a copy of the GNU Affero General Public License
 along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

package allocation

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"
)

// Region is a single entry of the region catalog. Zones are suffixes and
// their order is the order in which creation is attempted.
type Region struct {
	Code     string   `yaml:"code" json:"-"`
	Zones    []string `yaml:"zones" json:"zones"`
	Location string   `yaml:"location" json:"location"`
	Group    string   `yaml:"group,omitempty" json:"group,omitempty"`
}

// ZoneStyle controls how zone suffixes are turned into provider zone names.
type ZoneStyle string

const (
	// ZoneStyleSuffixed produces "<region>-<suffix>", e.g. us-west1-a.
	ZoneStyleSuffixed ZoneStyle = "suffixed"
	// ZoneStyleBare uses the suffix as the zone name, e.g. fsn1.
	ZoneStyleBare ZoneStyle = "bare"
)

// Catalog is the immutable set of regions the controller allocates in.
type Catalog struct {
	style   ZoneStyle
	regions map[string]Region
	zones   map[string]string
}

func NewCatalog(style ZoneStyle, regions []Region) (Catalog, error) {
	c := Catalog{
		style:   style,
		regions: make(map[string]Region, len(regions)),
		zones:   make(map[string]string),
	}

	for _, r := range regions {
		if r.Code == "" {
			return Catalog{}, fmt.Errorf("region without code")
		}
		if len(r.Zones) == 0 {
			return Catalog{}, fmt.Errorf("region %s has no zones", r.Code)
		}
		if _, ok := c.regions[r.Code]; ok {
			return Catalog{}, fmt.Errorf("duplicate region %s", r.Code)
		}

		// copy so callers cannot change the catalog through their slice
		r.Zones = slices.Clone(r.Zones)
		c.regions[r.Code] = r

		for _, z := range r.Zones {
			c.zones[c.zoneName(r.Code, z)] = r.Code
		}
	}

	return c, nil
}

// Validate returns the region for code, or false if the code is unknown.
func (c Catalog) Validate(code string) (Region, bool) {
	r, ok := c.regions[code]
	if !ok {
		return Region{}, false
	}
	r.Zones = slices.Clone(r.Zones)
	return r, true
}

// Regions returns all regions sorted by code.
func (c Catalog) Regions() []Region {
	ret := make([]Region, 0, len(c.regions))
	for _, r := range c.regions {
		r.Zones = slices.Clone(r.Zones)
		ret = append(ret, r)
	}
	slices.SortFunc(ret, func(a, b Region) int {
		return strings.Compare(a.Code, b.Code)
	})
	return ret
}

// ZoneNames returns the provider zone names of a region in catalog order.
func (c Catalog) ZoneNames(r Region) []string {
	ret := make([]string, 0, len(r.Zones))
	for _, z := range r.Zones {
		ret = append(ret, c.zoneName(r.Code, z))
	}
	return ret
}

// RegionOfZone resolves a provider zone name back to its region code.
func (c Catalog) RegionOfZone(zone string) (string, bool) {
	r, ok := c.zones[zone]
	return r, ok
}

func (c Catalog) zoneName(region, suffix string) string {
	if c.style == ZoneStyleBare {
		return suffix
	}
	return region + "-" + suffix
}

type catalogFile struct {
	ZoneStyle ZoneStyle `yaml:"zoneStyle"`
	Regions   []Region  `yaml:"regions"`
}

// LoadCatalog reads a catalog from a YAML file of the form
//
//	zoneStyle: suffixed
//	regions:
//	  - code: asia-northeast1
//	    zones: [a, b, c]
//	    location: Tokyo, Japan
func LoadCatalog(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read catalog: %w", err)
	}

	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Catalog{}, fmt.Errorf("parse catalog: %w", err)
	}

	if f.ZoneStyle == "" {
		f.ZoneStyle = ZoneStyleSuffixed
	}

	return NewCatalog(f.ZoneStyle, f.Regions)
}

// https://cloud.google.com/compute/docs/regions-zones
var gceRegions = []Region{
	{Code: "asia-east1", Zones: []string{"a", "b", "c"}, Location: "Changhua County, Taiwan", Group: "asia-east"},
	{Code: "asia-east2", Zones: []string{"a", "b", "c"}, Location: "Hong Kong", Group: "asia-east"},
	{Code: "asia-northeast1", Zones: []string{"a", "b", "c"}, Location: "Tokyo, Japan", Group: "asia-northeast"},
	{Code: "asia-northeast2", Zones: []string{"a", "b", "c"}, Location: "Osaka, Japan", Group: "asia-northeast"},
	{Code: "asia-northeast3", Zones: []string{"a", "b", "c"}, Location: "Seoul, South Korea", Group: "asia-northeast"},
	{Code: "asia-south1", Zones: []string{"a", "b", "c"}, Location: "Mumbai, India", Group: "asia-south"},
	{Code: "asia-southeast1", Zones: []string{"a", "b", "c"}, Location: "Jurong West, Singapore", Group: "asia-southeast"},
	{Code: "australia-southeast1", Zones: []string{"a", "b", "c"}, Location: "Sydney, Australia", Group: "australia-southeast"},
	{Code: "europe-north1", Zones: []string{"a", "b", "c"}, Location: "Hamina, Finland", Group: "europe-north"},
	{Code: "europe-west1", Zones: []string{"b", "c", "d"}, Location: "St. Ghislain, Belgium", Group: "europe-west"},
	{Code: "europe-west2", Zones: []string{"a", "b", "c"}, Location: "London, England, UK", Group: "europe-west"},
	{Code: "europe-west3", Zones: []string{"a", "b", "c"}, Location: "Frankfurt, Germany", Group: "europe-west"},
	{Code: "europe-west4", Zones: []string{"a", "b", "c"}, Location: "Eemshaven, Netherlands", Group: "europe-west"},
	{Code: "europe-west6", Zones: []string{"a", "b", "c"}, Location: "Zurich, Switzerland", Group: "europe-west"},
	{Code: "northamerica-northeast1", Zones: []string{"a", "b", "c"}, Location: "Montreal, Quebec, Canada", Group: "northamerica-northeast"}, //nolint:lll
	{Code: "southamerica-east1", Zones: []string{"a", "b", "c"}, Location: "Osasco (Sao Paulo), Brazil", Group: "southamerica-east"}, //nolint:lll
	{Code: "us-central1", Zones: []string{"a", "b", "c", "f"}, Location: "Council Bluffs, Iowa, USA", Group: "us-central"},
	{Code: "us-east1", Zones: []string{"b", "c", "d"}, Location: "Moncks Corner, South Carolina, USA", Group: "us-east"},
	{Code: "us-east4", Zones: []string{"a", "b", "c"}, Location: "Ashburn, Northern Virginia, USA", Group: "us-east"},
	{Code: "us-west1", Zones: []string{"a", "b", "c"}, Location: "The Dalles, Oregon, USA", Group: "us-west"},
	{Code: "us-west2", Zones: []string{"a", "b", "c"}, Location: "Los Angeles, California, USA", Group: "us-west"},
	{Code: "us-west3", Zones: []string{"a", "b", "c"}, Location: "Salt Lake City, Utah, USA", Group: "us-west"},
}

// Hetzner network zones and the locations inside them.
var hetznerRegions = []Region{
	{Code: "eu-central", Zones: []string{"fsn1", "nbg1", "hel1"}, Location: "Falkenstein/Nuremberg, Germany; Helsinki, Finland", Group: "europe"}, //nolint:lll
	{Code: "us-east", Zones: []string{"ash"}, Location: "Ashburn, Virginia, USA", Group: "us"},
	{Code: "us-west", Zones: []string{"hil"}, Location: "Hillsboro, Oregon, USA", Group: "us"},
	{Code: "ap-southeast", Zones: []string{"sin"}, Location: "Singapore", Group: "asia"},
}

func GCECatalog() Catalog {
	c, err := NewCatalog(ZoneStyleSuffixed, gceRegions)
	if err != nil {
		panic(err)
	}
	return c
}

func HetznerCatalog() Catalog {
	c, err := NewCatalog(ZoneStyleBare, hetznerRegions)
	if err != nil {
		panic(err)
	}
	return c
}
