// Package mapsconfig contributes the geo-location processor panel to the
// settings page.
package mapsconfig

import (
	"fmt"
	"strings"

	"github.com/muurk/logconsole/internal/panels"
	"github.com/muurk/logconsole/internal/plugin"
)

// ConfigType is the cluster config key of the geo-location resolver.
const ConfigType = "org.graylog.plugins.map.config.GeoIpResolverConfig"

// Database types accepted by the resolver.
const (
	DBTypeCity = "MAXMIND_CITY"
	DBTypeASN  = "MAXMIND_ASN"
)

var dbTypes = []string{DBTypeCity, DBTypeASN}

type panel struct {
	*panels.ConfigPanel
}

// NewPanel creates the geo-location panel.
func NewPanel(props plugin.Props) plugin.Panel {
	return panel{panels.New("Geo-Location Processor", []panels.Field{
		{Name: "enabled", Label: "Enabled", Kind: panels.KindBool},
		{Name: "db_type", Label: "Database type"},
		{Name: "db_path", Label: "Database path"},
		{Name: "run_before_extractors", Label: "Run before extractors", Kind: panels.KindBool},
	}, props)}
}

// Edit rejects database types the resolver cannot load.
func (p panel) Edit(name, raw string) error {
	if name == "db_type" {
		v := strings.ToUpper(strings.TrimSpace(raw))
		if v != DBTypeCity && v != DBTypeASN {
			return fmt.Errorf("database type must be one of %s", strings.Join(dbTypes, ", "))
		}
		raw = v
	}
	return p.ConfigPanel.Edit(name, raw)
}

// Register adds the panel to the settings extension point.
func Register(reg *plugin.Registry) {
	reg.Register(plugin.SystemConfigurations, plugin.Contribution{
		ConfigType: ConfigType,
		Factory:    NewPanel,
	})
}
