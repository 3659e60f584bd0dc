package main

import (
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v3/host"
	"github.com/spf13/cobra"

	"smartinfo/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version and platform information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "smartinfo v%s\n", version.GetVersion())
			if version.BuildTime != "" {
				fmt.Fprintf(w, "Build Time: %s\n", version.BuildTime)
			}
			if version.GitCommit != "" {
				fmt.Fprintf(w, "Git Commit: %s\n", version.GitCommit)
			}
			fmt.Fprintf(w, "System: %s | Go %s\n", platform(cmd), version.GoVersion())
		},
	}
}

// platform describes the host, falling back to GOOS/GOARCH when gopsutil
// cannot read it.
func platform(cmd *cobra.Command) string {
	info, err := host.InfoWithContext(cmd.Context())
	if err != nil || info.Platform == "" {
		return fmt.Sprintf("%s (%s)", runtime.GOOS, runtime.GOARCH)
	}
	return fmt.Sprintf("%s %s, kernel %s (%s)",
		info.Platform, info.PlatformVersion, info.KernelVersion, info.KernelArch)
}
