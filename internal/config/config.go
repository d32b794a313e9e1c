// Package config loads the permission.Flags the core's Expansion/export layer
// runs with. Nothing in package permission imports viper; this loader exists
// only for the demo CLI, following pkg/config's init()+viper.SetDefault
// pattern of keeping default wiring in one place.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/lattice-run/permix/permission"
)

func init() {
	viper.SetDefault("flags.applyWildcards", true)
	viper.SetDefault("flags.applyShorthand", true)
	viper.SetDefault("flags.applyingRegex", false)
	viper.SetDefault("flags.includingGlobalPerms", true)
}

// File is the on-disk shape of the flags section of a permix config file.
type File struct {
	Flags struct {
		ApplyWildcards       bool `mapstructure:"applyWildcards"`
		ApplyShorthand       bool `mapstructure:"applyShorthand"`
		ApplyingRegex        bool `mapstructure:"applyingRegex"`
		IncludingGlobalPerms bool `mapstructure:"includingGlobalPerms"`
	} `mapstructure:"flags"`
}

// Load reads the flags section from the already-configured viper instance
// (callers are expected to have called viper.SetConfigFile/ReadInConfig, or
// to rely on the defaults registered in init) and returns the resolved
// permission.Flags.
func Load(v *viper.Viper) (permission.Flags, error) {
	if v == nil {
		v = viper.GetViper()
	}
	var f File
	if err := v.Unmarshal(&f); err != nil {
		return permission.Flags{}, fmt.Errorf("config: unmarshal flags: %w", err)
	}
	return permission.Flags{
		ApplyWildcards:       f.Flags.ApplyWildcards,
		ApplyShorthand:       f.Flags.ApplyShorthand,
		ApplyingRegex:        f.Flags.ApplyingRegex,
		IncludingGlobalPerms: f.Flags.IncludingGlobalPerms,
	}, nil
}
