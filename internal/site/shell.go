package site

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/starford/folio/internal/view"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

const shellHelp = `commands:
  #/<route>            navigate (also: go <route>)
  do <action> [value]  dispatch a user event to the top-most surface
  quick <id>           open the quick look for a project
  esc                  close the top-most overlay
  wait                 wait for background content loads
  show                 print the main region and open overlays
  where                print the current route and scroll position
  help                 this text
  quit                 exit`

// Shell drives a site from line commands. It is the terminal stand-in
// for a browser: fragments navigate, actions play the role of clicks.
type Shell struct {
	Site *Site
	Out  io.Writer
	// Echo prints the affected regions after every command.
	Echo bool
}

// Run reads commands from in until EOF, quit or ctx is done.
func (sh *Shell) Run(ctx context.Context, in io.Reader) error {
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		quit, err := sh.Exec(line)
		if err != nil {
			fmt.Fprintln(sh.Out, errorStyle.Render("error: "+err.Error()))
		}
		if quit {
			return nil
		}
	}
	return sc.Err()
}

// Exec runs a single command line and reports whether the shell should
// stop.
func (sh *Shell) Exec(line string) (bool, error) {
	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch {
	case strings.HasPrefix(cmd, "#"):
		return false, sh.navigate(line)
	case cmd == "go":
		return false, sh.navigate(rest)
	case cmd == "do":
		action, value, _ := strings.Cut(rest, " ")
		if action == "" {
			return false, errors.New("do: missing action")
		}
		err := sh.Site.Dispatch(view.Event{Action: action, Value: strings.TrimSpace(value)})
		sh.echo()
		return false, err
	case cmd == "quick":
		err := sh.Site.OpenQuickLook(rest)
		sh.echo()
		return false, err
	case cmd == "esc":
		if !sh.Site.Escape() {
			fmt.Fprintln(sh.Out, mutedStyle.Render("(no overlay open)"))
		}
		sh.echo()
	case cmd == "wait":
		sh.Site.Wait()
		sh.echo()
	case cmd == "show":
		sh.Show()
	case cmd == "where":
		in, ok := sh.Site.Current()
		if !ok {
			fmt.Fprintln(sh.Out, mutedStyle.Render("(nowhere yet)"))
			return false, nil
		}
		pos := sh.Site.Viewport().Position()
		if pos == "" {
			pos = "top"
		}
		fmt.Fprintf(sh.Out, "%s  scroll=%s\n", in.Fragment(), pos)
	case cmd == "help":
		fmt.Fprintln(sh.Out, shellHelp)
	case cmd == "quit", cmd == "exit":
		return true, nil
	default:
		return false, fmt.Errorf("unknown command %q (try help)", cmd)
	}
	return false, nil
}

func (sh *Shell) navigate(fragment string) error {
	_, err := sh.Site.Navigate(fragment)
	sh.echo()
	return err
}

func (sh *Shell) echo() {
	if sh.Echo {
		sh.Show()
	}
}

// Show prints the main region followed by any open overlay.
func (sh *Shell) Show() {
	regions := append([]view.Region{sh.Site.Main()}, sh.Site.Overlays()...)
	for _, r := range regions {
		fmt.Fprintln(sh.Out, headerStyle.Render(fmt.Sprintf("== %s (#%d) ==", r.Name(), r.Token())))
		fmt.Fprintln(sh.Out, strings.TrimSpace(r.Markup()))
	}
}
