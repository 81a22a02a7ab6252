package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/mod/semver"
	"golang.org/x/sync/errgroup"

	"github.com/headlessly/hly/internal/rpc"
)

// statusProbeLimit caps concurrent gateway probes.
const statusProbeLimit = 4

// statusCmd probes every service domain.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check gateway and service reachability",
	Long: `Probe each platform service domain through the gateway and report
reachability and latency. Also warns when the gateway requires a newer CLI
version than the one installed.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

type probeResult struct {
	domain  string
	info    *rpc.HealthInfo
	latency time.Duration
	err     error
}

func runStatus(cmd *cobra.Command, _ []string) error {
	c := app.caller()

	results := make([]probeResult, len(rpc.Domains))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(statusProbeLimit)

	for i, domain := range rpc.Domains {
		i, domain := i, domain
		g.Go(func() error {
			start := time.Now()
			info, err := rpc.Ping(ctx, c, domain)
			results[i] = probeResult{domain: domain, info: info, latency: time.Since(start), err: err}
			return nil
		})
	}
	// Probes record their own failures; the group never errors.
	_ = g.Wait()

	w := cmd.OutOrStdout()
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	dim := color.New(color.Faint)

	_, _ = fmt.Fprintf(w, "gateway  %s\n\n", app.gatewayURL())

	up := 0
	var minCLI string
	for _, r := range results {
		if r.err != nil {
			_, _ = fmt.Fprintf(w, "  %s %-10s %s\n", red.Sprint("down"), r.domain, dim.Sprintf("(%v)", r.err))
			continue
		}
		up++
		_, _ = fmt.Fprintf(w, "  %s   %-10s %s\n", green.Sprint("up"), r.domain, dim.Sprintf("(%s)", r.latency.Round(time.Millisecond)))
		if minCLI == "" && r.info.MinCLIVersion != "" {
			minCLI = r.info.MinCLIVersion
		}
	}

	if msg := versionWarning(Version, minCLI); msg != "" {
		_, _ = fmt.Fprintf(w, "\n%s\n", color.New(color.FgYellow).Sprint(msg))
	}

	if up == 0 {
		return exitError(ExitGateway, "hly: no services reachable at %s", app.gatewayURL())
	}
	return nil
}

// versionWarning reports when the gateway requires a newer CLI than the
// one running. Non-semver local versions (dev builds) are never warned on.
func versionWarning(current, minimum string) string {
	if minimum == "" {
		return ""
	}
	cur := current
	if !strings.HasPrefix(cur, "v") {
		cur = "v" + cur
	}
	if !semver.IsValid(cur) || !semver.IsValid(minimum) {
		return ""
	}
	if semver.Compare(cur, minimum) < 0 {
		return fmt.Sprintf("hly %s is older than the gateway's minimum %s; please upgrade", current, minimum)
	}
	return ""
}
