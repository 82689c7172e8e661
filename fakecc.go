package fakecc

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"
)

// ProgName is the name the argument parser reports itself as. It differs
// from the banner's g++ on purpose: g++ is a front end for gcc.
const ProgName = "gcc"

// Banner is what the real g++ prints first on --version, trimmed down to the
// two lines compiler detection looks at.
const Banner = "g++ 1.0\nCopyright (C) 2019 Free Software Foundation, Inc\n"

const (
	ExitOK    = 0
	ExitUsage = 2
)

// Options holds the parsed flag table.
type Options struct {
	Version bool
	Help    bool
}

// UsageError is returned when the command line can't be parsed.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string {
	return e.Msg
}

func (e *UsageError) ExitCode() int {
	return ExitUsage
}

func newFlagSet(opts *Options) *pflag.FlagSet {
	fs := pflag.NewFlagSet(ProgName, pflag.ContinueOnError)
	fs.SortFlags = false
	fs.SetOutput(io.Discard)

	fs.BoolVarP(&opts.Help, "help", "h", false, "show this help message and exit")
	fs.BoolVar(&opts.Version, "version", false, "print the version banner and exit")
	return fs
}

// Parse parses args (without the program name). Any error it returns is a
// *UsageError.
func Parse(args []string) (Options, error) {
	opts, uErr := parse(args)
	if uErr != nil {
		return Options{}, uErr
	}
	return opts, nil
}

func parse(args []string) (Options, *UsageError) {
	opts := Options{}
	fs := newFlagSet(&opts)

	known, extras, uErr := resolve(fs, args)
	if uErr != nil {
		return Options{}, uErr
	}

	if err := fs.Parse(known); err != nil {
		return Options{}, &UsageError{Msg: err.Error()}
	}

	// Help exits as soon as it is seen, before leftovers are reported.
	if opts.Help {
		return Options{Help: true}, nil
	}

	if len(extras) > 0 {
		return Options{}, &UsageError{Msg: "unrecognized arguments: " + strings.Join(extras, " ")}
	}

	return opts, nil
}

// resolve maps args onto the flags in fs the way a conventional parser does:
// long options may be abbreviated to any unique prefix, switches take no
// value, and everything that matches no flag is collected in extras. known
// holds the canonical --name of every matched flag, in order.
func resolve(fs *pflag.FlagSet, args []string) (known []string, extras []string, uErr *UsageError) {
	for i, arg := range args {
		var (
			flag     *pflag.Flag
			explicit string
			hasValue bool
		)

		switch {
		case arg == "--":
			return known, append(extras, args[i+1:]...), nil
		case strings.HasPrefix(arg, "--"):
			name, value, found := strings.Cut(arg[2:], "=")
			if name == "" {
				extras = append(extras, arg)
				continue
			}

			matches := lookupPrefix(fs, name)
			if len(matches) > 1 {
				return nil, nil, &UsageError{Msg: fmt.Sprintf(
					"ambiguous option: --%s could match %s", name, strings.Join(matches, ", "),
				)}
			}
			if len(matches) == 0 {
				extras = append(extras, arg)
				continue
			}

			flag = fs.Lookup(strings.TrimPrefix(matches[0], "--"))
			explicit, hasValue = value, found
		case len(arg) > 1 && arg[0] == '-':
			flag = fs.ShorthandLookup(arg[1:2])
			if flag == nil {
				extras = append(extras, arg)
				continue
			}

			if rest := arg[2:]; rest != "" {
				explicit, hasValue = strings.TrimPrefix(rest, "="), true
			}
		default:
			extras = append(extras, arg)
			continue
		}

		if hasValue {
			return nil, nil, &UsageError{Msg: fmt.Sprintf(
				"argument %s: ignored explicit argument '%s'", displayName(flag), explicit,
			)}
		}

		known = append(known, "--"+flag.Name)
		if flag.Name == "help" {
			break
		}
	}

	return known, extras, nil
}

// lookupPrefix returns the long flags named prefix, or starting with it when
// there is no exact match.
func lookupPrefix(fs *pflag.FlagSet, prefix string) []string {
	if fs.Lookup(prefix) != nil {
		return []string{"--" + prefix}
	}

	var matches []string
	fs.VisitAll(func(f *pflag.Flag) {
		if strings.HasPrefix(f.Name, prefix) {
			matches = append(matches, "--"+f.Name)
		}
	})
	return matches
}

func displayName(f *pflag.Flag) string {
	if f.Shorthand != "" {
		return "-" + f.Shorthand + "/--" + f.Name
	}
	return "--" + f.Name
}

// Run executes the fixture and returns the process exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	opts, uErr := parse(args)
	if uErr != nil {
		WriteUsage(stderr)
		_, _ = fmt.Fprintf(stderr, "%s: error: %s\n", ProgName, uErr.Msg)
		return uErr.ExitCode()
	}

	switch {
	case opts.Help:
		WriteHelp(stdout)
	case opts.Version:
		_ = WriteBanner(stdout)
	}

	return ExitOK
}

// WriteBanner writes the version banner to w.
func WriteBanner(w io.Writer) error {
	_, err := io.WriteString(w, Banner)
	return err
}

// WriteUsage writes the one line usage summary to w.
func WriteUsage(w io.Writer) {
	_, _ = fmt.Fprintf(w, "usage: %s [-h] [--version]\n", ProgName)
}

// WriteHelp writes the usage line followed by the flag descriptions to w.
func WriteHelp(w io.Writer) {
	WriteUsage(w)
	_, _ = fmt.Fprintf(w, "\noptions:\n%s", newFlagSet(&Options{}).FlagUsages())
}
