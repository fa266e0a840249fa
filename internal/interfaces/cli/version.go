package cli

import (
	"runtime"

	"github.com/spf13/cobra"
)

type versionView struct {
	BuildInfo
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

func (v versionView) String() string {
	return v.BuildInfo.String() + " " + v.GoVersion + " " + v.Platform
}

// NewVersionCmd builds `polygraph version`.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return PrintResult(cmd, versionView{
				BuildInfo: CurrentBuildInfo(),
				GoVersion: runtime.Version(),
				Platform:  runtime.GOOS + "/" + runtime.GOARCH,
			})
		},
	}
}

//Personal.AI order the ending
