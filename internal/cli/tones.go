package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/glamlens/glamlens/internal/config"
	"github.com/glamlens/glamlens/internal/container"
	"github.com/glamlens/glamlens/pkg/models"
	"github.com/spf13/cobra"
)

func newTonesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tones [tone]",
		Short: "List tone categories or show the recommendations for one",
		Example: `  glamlens tones
  glamlens tones medium warm
  glamlens tones deep-cool --json`,
		RunE: runTones,
	}
	cmd.Flags().Bool("json", false, "Print as JSON")
	return cmd
}

func runTones(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return err
	}
	c, err := container.NewContainer(cfg, container.WithoutEventLogging())
	if err != nil {
		return err
	}
	svc := c.Service()
	out := cmd.OutOrStdout()
	jsonOut := mustGetBool(cmd, "json")

	if len(args) == 0 {
		tones := svc.Tones()
		if jsonOut {
			return json.NewEncoder(out).Encode(models.ToneListResponse{Tones: tones})
		}
		for _, tone := range tones {
			fmt.Fprintln(out, tone)
		}
		return nil
	}

	resp, err := svc.Recommendations(strings.Join(args, " "))
	if err != nil {
		return fmt.Errorf("%s", describeError(err))
	}
	if jsonOut {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}
	fmt.Fprintln(out, resp.Tone)
	writeBundle(out, resp.Recommendations)
	return nil
}
