package main

import (
	"fmt"
	"os"
	"time"

	"github.com/404wolf/mdvalidate"
	"github.com/404wolf/mdvalidate/internal/clilog"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"
)

func newWatchCommand(logCfg *clilog.Config) *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch <schema> <input>",
		Short: "Re-validate input against schema as the input file changes",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := clilog.New(cmd.ErrOrStderr(), *logCfg)
			m := &watchModel{
				schemaPath: args[0],
				inputPath:  args[1],
				interval:   interval,
				log:        log,
			}
			p := tea.NewProgram(m)
			_, err := p.Run()
			return err
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 500*time.Millisecond, "how often to re-read and re-validate the input file")
	return cmd
}

type tickMsg time.Time

// stableTicksForEOF is how many consecutive unchanged poll ticks it takes
// before watch treats the input file as having reached EOF (spec §5's
// got_eof). Until then, a validation attempt that fails only because the
// schema isn't satisfied yet is reported Incomplete rather than a hard
// failure, since the file may still be mid-append.
const stableTicksForEOF = 2

type watchModel struct {
	schemaPath, inputPath string
	interval              time.Duration
	log                   interface {
		Debug(string, ...any)
	}

	report         *mdvalidate.Report
	lastMod        time.Time
	lastSize       int64
	unchangedTicks int
	finalized      bool
	width          int
	height         int
	err            error
}

func (m *watchModel) Init() (tea.Model, tea.Cmd) {
	return m, tick(m.interval)
}

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
		return m, nil

	case tickMsg:
		m.reload()
		return m, tick(m.interval)
	}
	return m, nil
}

func (m *watchModel) reload() {
	info, err := os.Stat(m.inputPath)
	if err != nil {
		m.err = err
		return
	}

	changed := !info.ModTime().Equal(m.lastMod) || info.Size() != m.lastSize
	if changed {
		m.unchangedTicks = 0
		m.finalized = false
	} else {
		m.unchangedTicks++
	}
	if !changed && m.finalized {
		return
	}
	m.lastMod = info.ModTime()
	m.lastSize = info.Size()

	schemaSrc, err := os.ReadFile(m.schemaPath)
	if err != nil {
		m.err = err
		return
	}
	inputSrc, err := os.ReadFile(m.inputPath)
	if err != nil {
		m.err = err
		return
	}
	m.err = nil

	eof := m.unchangedTicks >= stableTicksForEOF
	m.report = mdvalidate.Validate(schemaSrc, inputSrc, eof)
	if eof {
		m.finalized = true
	}
	m.log.Debug("re-validated", "ok", m.report.OK, "incomplete", m.report.Incomplete, "errors", len(m.report.Errors))
}

var (
	okStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	failStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	dimStyle  = lipgloss.NewStyle().Faint(true)
)

func (m *watchModel) View() tea.View {
	if m.err != nil {
		return tea.NewView(failStyle.Render(fmt.Sprintf("error: %s", m.err)) + "\n" + dimStyle.Render("press q to quit"))
	}
	if m.report == nil {
		return tea.NewView(dimStyle.Render("waiting for " + m.inputPath + " ..."))
	}

	var status string
	switch {
	case m.report.OK:
		status = okStyle.Render("VALID")
	case m.report.Incomplete:
		status = dimStyle.Render("INCOMPLETE (needs more input)")
	default:
		status = failStyle.Render(fmt.Sprintf("INVALID (%d error(s))", len(m.report.Errors)))
	}

	out := status + "\n"
	for i, e := range m.report.Errors {
		if i >= 10 {
			out += dimStyle.Render(fmt.Sprintf("... %d more", len(m.report.Errors)-i)) + "\n"
			break
		}
		out += "  " + e.Error() + "\n"
	}
	out += dimStyle.Render("watching " + m.inputPath + " -- press q to quit")
	return tea.NewView(out)
}
