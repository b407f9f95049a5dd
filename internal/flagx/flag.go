// Package flagx helps packages parse their own command-line flags without
// tripping over flags owned by other packages.
package flagx

import "strings"

// FilterArgs returns only the arguments belonging to the allowed flags,
// preserving order. Two flag forms are recognized:
//
//  1. flag and value as separate arguments:  -a http://localhost:8000
//  2. flag and value joined with '=':        --api-url=http://localhost:8000
//
// args is usually os.Args[1:]; allowedFlags lists the flag names to keep
// (e.g. []string{"-a", "--api-url"}). Anything else is dropped, so a
// flag.FlagSet parsing the result never sees unknown flags.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		// "--flag=value" form: keep the whole argument when the name matches.
		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name := strings.SplitN(arg, "=", 2)[0]
			if _, ok := allowed[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		// "-flag value" form: keep the flag and, when the next argument does
		// not look like another flag, its value too.
		if _, ok := allowed[arg]; ok {
			filtered = append(filtered, arg)
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				filtered = append(filtered, args[i+1])
				i++
			}
		}
	}

	return filtered
}
