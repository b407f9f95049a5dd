package config

import (
	"flag"
	"os"

	"github.com/rmoreira/quizforge/internal/flagx"
)

// parseFlags overlays selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   backend API base URL (overrides env and dev-mode resolution)
//	-d string   path to the local credential database
//	-e string   directory export artifacts are written to
//	-l string   log level (debug|info|warn|error)
//
// os.Args is filtered with flagx.FilterArgs so flags owned by other
// components (e.g. the test runner) are ignored.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-e", "-l"})

	fs := flag.NewFlagSet("quizforge", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "backend API base URL")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "path to the local credential database")
	fs.StringVar(&cfg.ExportDir, "e", cfg.ExportDir, "export output directory")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
