package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/go-i2p/pki-upgrade/lib/upgrade"
)

var (
	versionStyle = lipgloss.NewStyle().Bold(true)
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

func renderReport(w io.Writer, report *upgrade.Report) {
	if report == nil {
		return
	}
	version := ""
	for _, s := range report.Steps {
		if s.Version != version {
			version = s.Version
			fmt.Fprintln(w, versionStyle.Render(version))
		}
		status := okStyle.Render("ok")
		if s.Err != nil {
			status = failStyle.Render("FAILED")
		}
		fmt.Fprintf(w, "  %02d %s [%s] %s\n", s.Index, s.Message, s.Instance, status)
		if s.Err != nil {
			fmt.Fprintf(w, "     %s\n", s.Err)
			fmt.Fprintf(w, "     %s\n", dimStyle.Render("backup: "+s.BackupDir))
		}
	}
}
