// Package flagx lets several components read their own flags from one
// command line. Each component parses only the flags it defines and ignores
// the rest, so the config file flag can be read before the main flag set
// exists.
package flagx

import (
	"flag"
	"io"
	"os"
	"strings"
)

// FilterArgs returns the arguments that belong to allowedFlags, keeping
// their values. "-c conf.json" and "--config=conf.json" are both recognised.
// A separate value is taken only when the next argument does not start with
// a dash.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]bool, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = false
	}
	return filter(args, allowed)
}

// filter keeps flags present in known. known maps a flag, dashes included,
// to whether it is boolean; boolean flags never consume the next argument.
func filter(args []string, known map[string]bool) []string {
	out := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			continue
		}

		if name, _, ok := strings.Cut(arg, "="); ok {
			if _, ok := known[name]; ok {
				out = append(out, arg)
			}
			continue
		}

		isBool, ok := known[arg]
		if !ok {
			continue
		}
		out = append(out, arg)
		if !isBool && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			out = append(out, args[i+1])
			i++
		}
	}

	return out
}

type boolFlag interface {
	IsBoolFlag() bool
}

// ParseKnown parses into fs only the flags fs defines, in one or two dash
// form, and skips every other argument.
func ParseKnown(fs *flag.FlagSet, args []string) error {
	known := map[string]bool{}
	fs.VisitAll(func(f *flag.Flag) {
		bf, ok := f.Value.(boolFlag)
		isBool := ok && bf.IsBoolFlag()
		known["-"+f.Name] = isBool
		known["--"+f.Name] = isBool
	})
	return fs.Parse(filter(args, known))
}

// ConfigFileFlag extracts the config file path given with -c or -config and
// ignores every other argument, so it can run before the application defines
// its own flags. The file may be JSON or YAML. Returns "" when neither flag is
// present.
func ConfigFileFlag() string {
	return ConfigFileFlagFrom(os.Args[1:])
}

// ConfigFileFlagFrom is ConfigFileFlag over an explicit argument list.
func ConfigFileFlagFrom(args []string) string {
	var config string

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&config, "config", "", "Path to config file (JSON or YAML)")
	fs.StringVar(&config, "c", "", "Path to config file (short)")
	_ = ParseKnown(fs, args)

	return config
}
