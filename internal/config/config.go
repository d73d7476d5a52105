// Package config is for run wide settings that are unmarshalled
// from Viper: built-in defaults, an optional settings file, then flags.
package config

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"telogc/internal/fasta"
	"telogc/internal/gc"
	"telogc/internal/motif"
	"telogc/internal/trf"
)

// Setting keys. Flags use the same names.
const (
	KeyConfig      = "config"
	KeyWindow      = "window"
	KeyRepeat      = "repeat"
	KeyRoundDigits = "round-digits"
	KeyOrphans     = "orphans"
	KeyDuplicates  = "duplicates"
	KeyLogLevel    = "log-level"
	KeyQuiet       = "quiet"
)

// Config is the root-level settings struct and is a mix of settings
// available in a settings file and those available from the command line.
type Config struct {
	// GC window size in bp
	Window int `mapstructure:"window"`

	// telomeric repeat unit the motif set is built from
	Repeat string `mapstructure:"repeat"`

	// decimals kept in Relative Start / Relative End
	RoundDigits int `mapstructure:"round-digits"`

	// FASTA parser policies
	Orphans    string `mapstructure:"orphans"`
	Duplicates string `mapstructure:"duplicates"`

	// logging
	LogLevel string `mapstructure:"log-level"`
	Quiet    bool   `mapstructure:"quiet"`
}

// Defaults returns a viper instance with every default set.
func Defaults() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyWindow, gc.DefaultWindow)
	v.SetDefault(KeyRepeat, motif.TelomereRepeat)
	v.SetDefault(KeyRoundDigits, trf.DefaultDigits)
	v.SetDefault(KeyOrphans, string(fasta.OrphanReject))
	v.SetDefault(KeyDuplicates, string(fasta.DuplicateLastWins))
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyQuiet, false)
	return v
}

// Load reads the settings file named by the --config flag (if any), binds
// every known flag present in fs, and unmarshals the result.
// Precedence: changed flag > settings file > default.
func Load(fs *pflag.FlagSet) (Config, error) {
	v := Defaults()
	bound := map[string]bool{}
	for _, key := range []string{KeyWindow, KeyRepeat, KeyRoundDigits, KeyOrphans, KeyDuplicates, KeyLogLevel, KeyQuiet} {
		if f := fs.Lookup(key); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return Config{}, err
			}
			bound[key] = true
		}
	}
	if f := fs.Lookup(KeyConfig); f != nil && f.Value.String() != "" {
		v.SetConfigFile(f.Value.String())
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", f.Value.String(), err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unable to decode config: %w", err)
	}
	return c, c.validate(bound)
}

// Validate checks value ranges of every setting.
func (c Config) Validate() error {
	return c.validate(nil)
}

// validate checks the settings named in keys, or all of them when keys is nil.
// A shared settings file may carry keys the running tool has no flag for.
func (c Config) validate(keys map[string]bool) error {
	has := func(k string) bool { return keys == nil || keys[k] }
	if has(KeyWindow) && c.Window < 1 {
		return fmt.Errorf("--window must be ≥ 1 (got %d)", c.Window)
	}
	if has(KeyRoundDigits) && (c.RoundDigits < 0 || c.RoundDigits > 15) {
		return fmt.Errorf("--round-digits must be between 0 and 15 (got %d)", c.RoundDigits)
	}
	if _, err := c.FastaOptions(); err != nil {
		return err
	}
	return nil
}

// FastaOptions converts the parser policy names.
func (c Config) FastaOptions() (fasta.Options, error) {
	o, err := fasta.ParseOrphanPolicy(c.Orphans)
	if err != nil {
		return fasta.Options{}, err
	}
	d, err := fasta.ParseDuplicatePolicy(c.Duplicates)
	if err != nil {
		return fasta.Options{}, err
	}
	return fasta.Options{Orphans: o, Duplicates: d}, nil
}

// MotifSet builds the motif set for Repeat, reusing the precomputed
// telomeric set for the default repeat.
func (c Config) MotifSet() (motif.Set, error) {
	if c.Repeat == motif.TelomereRepeat {
		return motif.Telomeric, nil
	}
	s, err := motif.NewSet(c.Repeat)
	if err != nil {
		return motif.Set{}, fmt.Errorf("--repeat %q: %w", c.Repeat, err)
	}
	return s, nil
}
