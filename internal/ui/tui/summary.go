package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/chris-milsted/lkeup/internal/linode"
	"github.com/chris-milsted/lkeup/internal/model"
	"github.com/chris-milsted/lkeup/internal/statestore"
)

// Summary is the operator-facing result of a successful apply.
type Summary struct {
	ClusterID      int
	ClusterLabel   string
	Region         string
	APIEndpoint    string
	KubeconfigPath string
	Namespace      string
	AppURL         string
}

// RenderApplySummary renders the block printed once apply finishes.
func RenderApplySummary(s Summary) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("cluster %s is ready", s.ClusterLabel)))
	b.WriteString("\n\n")

	rows := []struct{ label, value string }{
		{"cluster id", fmt.Sprintf("%d", s.ClusterID)},
		{"region", s.Region},
		{"api endpoint", s.APIEndpoint},
		{"kubeconfig", s.KubeconfigPath},
		{"namespace", s.Namespace},
		{"app url", s.AppURL},
	}
	for _, row := range rows {
		if row.value == "" {
			continue
		}
		fmt.Fprintf(&b, "  %s %s\n", dimStyle.Render(fmt.Sprintf("%-14s", row.label)), row.value)
	}
	return b.String()
}

// StatusView is everything the status command gathers: the live provider
// view plus the journaled run history.
type StatusView struct {
	ClusterLabel string
	Region       string

	Found     bool
	ClusterID int
	Endpoint  string
	Pools     []linode.PoolStatus

	Run         *statestore.Run
	Transitions []statestore.Transition
}

// RenderStatus renders the status command output.
func RenderStatus(v StatusView) string {
	var b strings.Builder

	title := fmt.Sprintf("lkeup: %s", v.ClusterLabel)
	if v.Region != "" {
		title += fmt.Sprintf(" (%s)", v.Region)
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("  Cluster"))
	b.WriteString("\n")
	if !v.Found {
		fmt.Fprintf(&b, "    %s %s\n", dimStyle.Render(pending), dimStyle.Render("not provisioned"))
	} else {
		fmt.Fprintf(&b, "    %s id %d  %s\n", readyStyle.Render(checkMark), v.ClusterID, dimStyle.Render(v.Endpoint))
		for _, pool := range v.Pools {
			icon, style := statusIcon(pool.Ready == pool.Count && pool.Count > 0)
			fmt.Fprintf(&b, "    %s %-16s %d/%d nodes\n", style(icon), pool.Type, pool.Ready, pool.Count)
		}
	}

	if v.Run != nil {
		b.WriteString(sectionStyle.Render("  Last Run"))
		b.WriteString("\n")

		phaseStyle := warningStyle
		switch v.Run.Phase {
		case model.PhaseFailed:
			phaseStyle = failedStyle
		case model.PhaseEndpointAssigned, model.PhaseDestroyed:
			phaseStyle = readyStyle
		}
		fmt.Fprintf(&b, "    %s  %s\n",
			phaseStyle.Render(string(v.Run.Phase)),
			dimStyle.Render("started "+v.Run.StartedAt.Format(time.RFC3339)))
		if v.Run.Error != "" {
			fmt.Fprintf(&b, "    %s %s\n", failedStyle.Render(crossMark), dimStyle.Render(v.Run.Error))
		}
		for _, tr := range v.Transitions {
			fmt.Fprintf(&b, "    %s %s -> %s\n",
				dimStyle.Render(tr.At.Format("15:04:05")),
				dimStyle.Render(string(tr.From)), string(tr.To))
		}
	}

	return b.String()
}
