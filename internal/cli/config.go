package cli

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	errs "github.com/matzehuels/colfit/pkg/errors"
	"github.com/matzehuels/colfit/pkg/table"
)

// Config keys, shared by flags, the config file and COLFIT_* variables.
const (
	keyWidth     = "width"
	keySeparator = "separator"
	keyMaxOut    = "maxout"
	keyNoWrap    = "nowrap"
	keyASCII     = "ascii"
	keyANSI      = "ansi"
)

var layoutKeys = []string{keyWidth, keySeparator, keyMaxOut, keyNoWrap, keyASCII, keyANSI}

// layoutFlags are the table settings every command accepts. Each one
// overrides the table file only when it is given on the command line, in
// the environment or in the config file.
type layoutFlags struct {
	flags *pflag.FlagSet
}

func (f *layoutFlags) register(fs *pflag.FlagSet) {
	fs.Int(keyWidth, 0, "target width (0: the table file's, else the terminal's)")
	fs.String(keySeparator, " ", "column separator")
	fs.Bool(keyMaxOut, false, "widen columns until the target width is used up")
	fs.Bool(keyNoWrap, false, "hide or cut trailing columns instead of overflowing")
	fs.Bool(keyASCII, false, "use ASCII tree and group symbols")
	fs.Bool(keyANSI, false, "ignore terminal escape sequences when measuring cells")
	f.flags = fs
}

// settings are the layout settings resolved for one run. Nil pointers and
// zero values leave the table file's own settings in place.
type settings struct {
	width     int
	separator *string
	maxOut    *bool
	noWrap    *bool
	ascii     bool
	ansi      bool
}

// load layers the config file, COLFIT_* variables and flags.
// A config file named by COLFIT_CONFIG must exist; the default one may not.
func (f *layoutFlags) load() (*settings, error) {
	v := viper.New()
	v.SetConfigType("toml")

	explicit := os.Getenv("COLFIT_CONFIG")
	if explicit != "" {
		v.SetConfigFile(explicit)
	} else if dir, err := configDir(); err == nil {
		v.AddConfigPath(dir)
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("COLFIT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit != "" || !errors.As(err, &notFound) {
			return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "read config")
		}
	}
	for _, key := range layoutKeys {
		if fl := f.flags.Lookup(key); fl != nil {
			if err := v.BindPFlag(key, fl); err != nil {
				return nil, errs.Wrap(errs.ErrCodeInternal, err, "bind flag %s", key)
			}
		}
	}
	return resolve(v)
}

// resolve reads every layout key out of v once, so the result can be shared
// between goroutines.
func resolve(v *viper.Viper) (*settings, error) {
	s := &settings{
		ascii: v.GetBool(keyASCII),
		ansi:  v.GetBool(keyANSI),
	}
	if v.IsSet(keyWidth) {
		s.width = v.GetInt(keyWidth)
		if s.width < 0 {
			return nil, errs.New(errs.ErrCodeInvalidInput, "negative width %d", s.width)
		}
	}
	if v.IsSet(keySeparator) {
		sep := v.GetString(keySeparator)
		s.separator = &sep
	}
	if v.IsSet(keyMaxOut) {
		b := v.GetBool(keyMaxOut)
		s.maxOut = &b
	}
	if v.IsSet(keyNoWrap) {
		b := v.GetBool(keyNoWrap)
		s.noWrap = &b
	}
	return s, nil
}

// configDir returns $XDG_CONFIG_HOME/colfit or ~/.config/colfit.
func configDir() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// apply overrides tb's settings with every explicitly set value and wraps
// the measurer in a cache.
func (s *settings) apply(tb *table.Table) error {
	if s.width > 0 {
		tb.TermWidth = s.width
		tb.Interactive = true
	}
	if s.separator != nil {
		tb.Separator = *s.separator
	}
	if s.maxOut != nil {
		tb.MaxOut = *s.maxOut
	}
	if s.noWrap != nil {
		tb.NoWrap = *s.noWrap
	}
	if s.ascii {
		tb.Symbols = table.ASCIISymbols
	}

	measurer := table.RuneWidth
	if s.ansi {
		measurer = table.ANSIWidth
	}
	cached, err := table.NewCachedMeasurer(measurer, measureCacheSize)
	if err != nil {
		return errs.Wrap(errs.ErrCodeInternal, err, "measure cache")
	}
	tb.Measurer = cached
	return nil
}

// terminalWidth returns the width of the terminal on stdout, or 0.
func terminalWidth() int {
	fd := os.Stdout.Fd()
	if !term.IsTerminal(fd) {
		return 0
	}
	w, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return w
}

// fitTerminal targets the terminal when no width was configured.
func fitTerminal(tb *table.Table) {
	if tb.TermWidth > 0 {
		return
	}
	if w := terminalWidth(); w > 0 {
		tb.TermWidth = w
		tb.Interactive = true
	}
}
