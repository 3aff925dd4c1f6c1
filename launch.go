package lnp

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/dfort/lnp/terminal"
)

// process is one program started by RunProgram. done is closed once the
// program has exited.
type process struct {
	cmd  *exec.Cmd
	done chan struct{}
}

// dfExecutable works out which file inside the game directory starts the
// game and whether it needs its own terminal.
func (l *LNP) dfExecutable() (string, bool) {
	if l.cfg.DfExecutable != "" {
		return l.cfg.DfExecutable, false
	}

	switch runtime.GOOS {
	case "windows":
		return "Dwarf Fortress.exe", false
	case "darwin":
		return "df", false
	default:
		// Run DFHack when it is present
		if _, err := os.Stat(filepath.Join(l.paths.Df, "dfhack")); err == nil {
			return "dfhack", true
		}
		return "df", false
	}
}

// RunDF launches the game.
func (l *LNP) RunDF() error {
	name, spawnTerminal := l.dfExecutable()
	return l.RunProgram(filepath.Join(l.paths.Df, name), spawnTerminal)
}

// RunProgram starts an external program without waiting for it. JAR files
// are run through java, and spawnTerminal wraps the command in the
// detected terminal emulator on Linux.
func (l *LNP) RunProgram(path string, spawnTerminal bool) error {
	path, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	if l.ProgramRunning(path) {
		l.logger.Printf("%s is already running\n", path)
		return nil
	}

	workdir := filepath.Dir(path)

	var argv []string
	switch {
	case spawnTerminal && runtime.GOOS == "linux":
		argv = terminal.Detect(l.cfg.Terminal).Command([]string{path})
		if len(argv) == 0 {
			return errors.New("no terminal launcher available")
		}
	case strings.HasSuffix(path, ".jar"):
		argv = []string{"java", "-jar", filepath.Base(path)}
	case strings.HasSuffix(path, ".app") && runtime.GOOS == "darwin":
		argv = []string{"open", path}
		workdir = path
	default:
		argv = []string{path}
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = workdir

	if err := cmd.Start(); err != nil {
		return err
	}

	p := &process{cmd: cmd, done: make(chan struct{})}
	l.mu.Lock()
	l.running[path] = p
	l.mu.Unlock()
	l.logger.Printf("started %s (pid %d)\n", path, cmd.Process.Pid)

	go func() {
		cmd.Wait()
		close(p.done)
	}()

	return nil
}

// ProgramRunning reports whether a program previously started with
// RunProgram is still running.
func (l *LNP) ProgramRunning(path string) bool {
	l.mu.Lock()
	p, ok := l.running[path]
	l.mu.Unlock()
	if !ok {
		return false
	}

	select {
	case <-p.done:
		return false
	default:
		return true
	}
}

// RunUtilities starts each named utility from the pack's utilities
// directory.
func (l *LNP) RunUtilities(names ...string) error {
	for _, name := range names {
		path := filepath.Join(l.paths.Utilities, name)
		if _, err := os.Stat(path); err != nil {
			l.logger.Printf("skipping missing utility %s\n", path)
			continue
		}
		if err := l.RunProgram(path, false); err != nil {
			return err
		}
	}
	return nil
}

// OpenFile opens a file or folder with the system default handler.
func OpenFile(path string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", "--", path).Run()
	case "windows":
		return exec.Command("cmd", "/c", "start", "", path).Run()
	default:
		return exec.Command("xdg-open", path).Run()
	}
}

// OpenURL opens a URL in the default browser.
func OpenURL(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Run()
	case "windows":
		return exec.Command("cmd", "/c", "start", "", url).Run()
	default:
		return exec.Command("xdg-open", url).Run()
	}
}

// OpenSavegames opens the game's save folder.
func (l *LNP) OpenSavegames() error {
	return OpenFile(l.paths.Save)
}
