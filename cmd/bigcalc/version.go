package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"bigcalc/internal/version"
)

const versionTagline = "nine digits at a time"

// versionPayload is the --format=json output of "bigcalc version".
type versionPayload struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	Tagline   string `json:"tagline"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
}

func newVersionCmd() *cobra.Command {
	var (
		format     string
		hash, date bool
		full       bool
	)
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show bigcalc build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p := versionPayload{Tool: "bigcalc", Version: orDefault(version.Version, "dev"), Tagline: versionTagline}
			if hash || full {
				p.GitCommit = orDefault(version.GitCommit, "unknown")
			}
			if date || full {
				p.BuildDate = orDefault(version.BuildDate, "unknown")
			}

			out := cmd.OutOrStdout()
			switch strings.ToLower(format) {
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(p)
			case "pretty":
				fmt.Fprintf(out, "bigcalc %s (%s)\n", version.Pretty(), p.Tagline)
				if p.GitCommit != "" {
					fmt.Fprintf(out, "commit: %s\n", p.GitCommit)
				}
				if p.BuildDate != "" {
					fmt.Fprintf(out, "built:  %s\n", p.BuildDate)
				}
				return nil
			}
			return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
		},
	}
	cmd.Flags().BoolVar(&hash, "hash", false, "include git commit hash")
	cmd.Flags().BoolVar(&date, "date", false, "include build timestamp")
	cmd.Flags().BoolVar(&full, "full", false, "include every recorded build detail")
	cmd.Flags().StringVar(&format, "format", "pretty", "output format (pretty|json)")
	return cmd
}

func orDefault(s, def string) string {
	if s = strings.TrimSpace(s); s == "" {
		return def
	}
	return s
}
