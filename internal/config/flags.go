package config

import (
	"flag"
	"strings"
)

// parseFlags overlays the short flags:
//
//	-a string   HTTP bind address (e.g. ":8000")
//	-d string   PostgreSQL DSN
//	-r string   Redis address (empty keeps sessions in memory)
//
// Unknown arguments are ignored so test binaries and wrappers can pass their own.
func parseFlags(c *Config, args []string) error {
	args = filterArgs(args, []string{"-a", "-d", "-r"})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.StringVar(&c.HTTPAddr, "a", c.HTTPAddr, "address and port to serve HTTP on")
	fs.StringVar(&c.DatabaseDSN, "d", c.DatabaseDSN, "database DSN")
	fs.StringVar(&c.RedisAddr, "r", c.RedisAddr, "redis address")

	return fs.Parse(args)
}

// filterArgs keeps only the allowed flags and their values. Both "-f value" and "-f=value"
// forms are recognised.
func filterArgs(args []string, allowed []string) []string {
	keep := make(map[string]struct{}, len(allowed))
	for _, f := range allowed {
		keep[f] = struct{}{}
	}

	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name := strings.SplitN(arg, "=", 2)[0]
			if _, ok := keep[name]; ok {
				out = append(out, arg)
			}
			continue
		}

		if _, ok := keep[arg]; ok {
			out = append(out, arg)
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				out = append(out, args[i+1])
				i++
			}
		}
	}
	return out
}
