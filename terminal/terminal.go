/*
Package terminal detects which Linux terminal emulator is available and
builds the command line needed to run a console program in it.

Detection walks a fixed priority list of known desktop environments and
generic terminals and stops at the first match. A custom command sentinel
sits at the end of the list and always matches; a "$" argument in the
custom command marks where the launched program's arguments are inserted,
otherwise they are appended.
*/
package terminal

import (
	"os"
	"os/exec"
	"strings"
)

// Env is one detectable terminal environment.
type Env struct {
	Name    string
	detect  func() bool
	command func() []string
}

// CommandLine returns the command prefix used to launch a program in this
// terminal.
func (e Env) CommandLine() []string {
	return e.command()
}

// Command builds the full command line launching argv in this terminal.
// It returns nil when the environment has no usable launcher, which only
// happens for an empty custom command.
func (e Env) Command(argv []string) []string {
	prefix := e.command()
	if len(prefix) == 0 {
		return nil
	}

	for i, arg := range prefix {
		if arg == "$" {
			cmd := make([]string, 0, len(prefix)-1+len(argv))
			cmd = append(cmd, prefix[:i]...)
			cmd = append(cmd, argv...)
			cmd = append(cmd, prefix[i+1:]...)
			return cmd
		}
	}
	return append(append([]string{}, prefix...), argv...)
}

func have(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// output runs a probe command and returns its trimmed stdout.
func output(name string, args ...string) string {
	out, err := exec.Command(name, args...).Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

func sessionManagerRunning(name string) bool {
	return exec.Command(
		"dbus-send", "--print-reply", "--dest=org.freedesktop.DBus",
		"/org/freedesktop/DBus", "org.freedesktop.DBus.GetNameOwner",
		"string:"+name,
	).Run() == nil
}

func kde() Env {
	return Env{
		Name: "KDE",
		detect: func() bool {
			return os.Getenv("KDE_FULL_SESSION") == "true"
		},
		command: func() []string {
			term := output("kreadconfig", "--file", "kdeglobals",
				"--group", "General", "--key", "TerminalApplication",
				"--default", "konsole")
			if term == "" {
				term = "konsole"
			}
			return []string{"nohup", term, "-e"}
		},
	}
}

func gnome() Env {
	return Env{
		Name: "GNOME",
		detect: func() bool {
			if os.Getenv("GNOME_DESKTOP_SESSION_ID") != "" {
				return true
			}
			return sessionManagerRunning("org.gnome.SessionManager")
		},
		command: func() []string {
			term := output("gconftool-2", "--get",
				"/desktop/gnome/applications/terminal/exec")
			arg := output("gconftool-2", "--get",
				"/desktop/gnome/applications/terminal/exec_arg")
			if term == "" {
				term, arg = "gnome-terminal", "-x"
			}
			return []string{"nohup", term, arg}
		},
	}
}

func xfce() Env {
	return Env{
		Name: "Xfce",
		detect: func() bool {
			return strings.Contains(output("ps", "-eo", "comm="), "xfce")
		},
		command: func() []string {
			return []string{"nohup", "exo-open", "--launch", "TerminalEmulator"}
		},
	}
}

func lxde() Env {
	return Env{
		Name: "LXDE",
		detect: func() bool {
			return os.Getenv("DESKTOP_SESSION") == "LXDE" && have("lxterminal")
		},
		command: func() []string {
			return []string{"nohup", "lxterminal", "-e"}
		},
	}
}

func mate() Env {
	return Env{
		Name: "MATE",
		detect: func() bool {
			if os.Getenv("MATE_DESKTOP_SESSION_ID") != "" {
				return true
			}
			return sessionManagerRunning("org.mate.SessionManager")
		},
		command: func() []string {
			return []string{"nohup", "mate-terminal", "-e"}
		},
	}
}

func i3() Env {
	return Env{
		Name: "i3",
		detect: func() bool {
			return strings.HasPrefix(os.Getenv("DESKTOP_STARTUP_ID"), "i3/")
		},
		command: func() []string {
			return []string{"nohup", "i3-sensible-terminal", "-e"}
		},
	}
}

func rxvt() Env {
	exe := "urxvt"
	return Env{
		Name: "rxvt/urxvt",
		detect: func() bool {
			if have("urxvt") {
				return true
			}
			if have("rxvt") {
				exe = "rxvt"
				return true
			}
			return false
		},
		command: func() []string {
			return []string{"nohup", exe, "-e"}
		},
	}
}

func xterm() Env {
	return Env{
		Name: "xterm",
		detect: func() bool {
			return have("xterm")
		},
		command: func() []string {
			return []string{"nohup", "xterm", "-e"}
		},
	}
}

func custom(cmd string) Env {
	return Env{
		Name: "Custom command",
		detect: func() bool {
			return true
		},
		command: func() []string {
			if cmd == "" {
				return nil
			}
			return strings.Split(cmd, " ")
		},
	}
}

// All returns every known environment in detection priority order, ending
// with the custom command sentinel built from cmd.
func All(cmd string) []Env {
	return []Env{
		kde(), gnome(), xfce(), lxde(), mate(), i3(),
		rxvt(), xterm(), custom(cmd),
	}
}

// Detect returns the first available terminal environment. It always
// succeeds because the custom command sentinel matches unconditionally.
func Detect(cmd string) Env {
	envs := All(cmd)
	for _, e := range envs {
		if e.detect() {
			return e
		}
	}
	return envs[len(envs)-1]
}
