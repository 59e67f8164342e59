// Package probe reads the version of an installed JDK by running its launcher.
package probe

import (
	"bufio"
	"bytes"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/OpenGG/jdksw/internal/jdksw/domain"
	"github.com/OpenGG/jdksw/internal/jdksw/pathenv"
)

// Output is what a launcher wrote while running.
type Output struct {
	Stdout []byte
	Stderr []byte
}

// Runner starts a short-lived process and waits for it.
type Runner func(name string, args ...string) (Output, error)

// ExecRunner runs the command with os/exec.
func ExecRunner(name string, args ...string) (Output, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.Command(name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return Output{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}, err
}

// Prober extracts version strings from `java -version`.
type Prober struct {
	run    Runner
	logger zerolog.Logger
}

// New creates a Prober. A nil runner uses ExecRunner.
func New(run Runner, logger zerolog.Logger) *Prober {
	if run == nil {
		run = ExecRunner
	}
	return &Prober{run: run, logger: logger}
}

// LauncherPath returns the launcher expected under installRoot.
func LauncherPath(installRoot string) string {
	return filepath.Join(installRoot, "bin", pathenv.LauncherName)
}

// Probe returns the version of the JDK installed at installRoot.
func (p *Prober) Probe(installRoot string) (string, error) {
	return p.ProbeLauncher(LauncherPath(installRoot))
}

// ProbeLauncher runs launcher with -version and parses its diagnostic output.
func (p *Prober) ProbeLauncher(launcher string) (string, error) {
	out, err := p.run(launcher, "-version")
	if err != nil {
		p.logger.Debug().Err(err).Str("launcher", launcher).Msg("launcher did not run")
		return "", fmt.Errorf("%w: cannot run %s: %v", domain.ErrLauncherProbe, launcher, err)
	}
	version, ok := ParseVersion(out.Stderr)
	if !ok {
		// Some launchers report on stdout.
		version, ok = ParseVersion(out.Stdout)
	}
	if !ok {
		return "", fmt.Errorf("%w: no quoted version in output of %s", domain.ErrLauncherProbe, launcher)
	}
	p.logger.Debug().Str("launcher", launcher).Str("version", version).Msg("jdk version probed")
	return version, nil
}

// ParseVersion finds the quoted version on the first line of `java -version`
// output, e.g. `openjdk version "17.0.2" 2022-01-18` yields 17.0.2. JVM notices
// such as "Picked up JAVA_TOOL_OPTIONS" are skipped.
func ParseVersion(output []byte) (string, bool) {
	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "Picked up ") {
			continue
		}
		return quotedToken(line)
	}
	return "", false
}

func quotedToken(line string) (string, bool) {
	start := strings.IndexByte(line, '"')
	if start < 0 {
		return "", false
	}
	end := strings.IndexByte(line[start+1:], '"')
	if end <= 0 {
		return "", false
	}
	return line[start+1 : start+1+end], true
}
