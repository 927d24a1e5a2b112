// Package toolenv resolves lint commands from an isolated tool
// environment. The environment is an explicit value handed to callers
// rather than ambient process state, so resolution is testable and a
// run never mutates the parent's environment.
package toolenv

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Env describes a resolved tool environment. A zero Env resolves
// commands from the host PATH only.
type Env struct {
	// Dir is the environment root (e.g. a virtualenv directory).
	// Its bin subdirectory is searched before the host PATH.
	Dir string
}

// New returns an Env rooted at dir, resolved against root when dir is
// relative. An empty dir yields a zero Env (host PATH only).
func New(root, dir string) Env {
	if dir == "" {
		return Env{}
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(root, dir)
	}
	return Env{Dir: dir}
}

// Resolve returns the absolute path of the named tool. The environment's
// bin directory takes precedence over the host PATH. Returns
// ErrToolUnavailable when the tool cannot be found in either.
func (e Env) Resolve(name string) (string, error) {
	if e.Dir != "" {
		p := filepath.Join(e.Dir, "bin", name)
		if isExecutable(p) {
			return p, nil
		}
	}

	p, err := exec.LookPath(name)
	if err == nil {
		return p, nil
	}

	return "", NewErrToolUnavailable(name)
}

// Environ returns the child-process environment: the parent environment
// with the env bin directory prepended to PATH and VIRTUAL_ENV set.
// With no Dir it returns nil, letting the child inherit as-is.
func (e Env) Environ() []string {
	if e.Dir == "" {
		return nil
	}

	bin := filepath.Join(e.Dir, "bin")
	env := os.Environ()
	out := make([]string, 0, len(env)+1)
	pathSet := false
	for _, kv := range env {
		switch {
		case strings.HasPrefix(kv, "PATH="):
			out = append(out, "PATH="+bin+string(os.PathListSeparator)+strings.TrimPrefix(kv, "PATH="))
			pathSet = true
		case strings.HasPrefix(kv, "VIRTUAL_ENV="):
			// Replaced below.
		default:
			out = append(out, kv)
		}
	}
	if !pathSet {
		out = append(out, "PATH="+bin)
	}
	out = append(out, "VIRTUAL_ENV="+e.Dir)
	return out
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	return info.Mode()&0o111 != 0
}

// toolInfo holds install metadata for a known lint tool.
type toolInfo struct {
	// Install is a suggested install command.
	Install string
	// AltInstall is an alternative install URL or instruction.
	AltInstall string
}

// knownTools maps lint command names to their install metadata.
var knownTools = map[string]toolInfo{
	"flake8":        {Install: "pip install flake8"},
	"ruff":          {Install: "pip install ruff"},
	"pylint":        {Install: "pip install pylint"},
	"golangci-lint": {AltInstall: "https://golangci-lint.run/welcome/install/"},
	"staticcheck":   {Install: "go install honnef.co/go/tools/cmd/staticcheck@latest"},
	"shellcheck":    {AltInstall: "https://www.shellcheck.net/ (distribution packages available)"},
	"eslint":        {Install: "npm install -g eslint"},
}

// ErrToolUnavailable is returned when the lint command is not present in
// the tool environment or on the PATH. It includes actionable install
// instructions when the tool is known.
type ErrToolUnavailable struct {
	Name string
	Info *toolInfo
}

func NewErrToolUnavailable(name string) ErrToolUnavailable {
	e := ErrToolUnavailable{Name: name}
	if info, ok := knownTools[name]; ok {
		e.Info = &info
	}
	return e
}

func (e ErrToolUnavailable) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s is required but not installed.", e.Name)

	if e.Info == nil {
		return b.String()
	}

	if e.Info.Install != "" {
		fmt.Fprintf(&b, "\nInstall: %s", e.Info.Install)
	} else if e.Info.AltInstall != "" {
		fmt.Fprintf(&b, "\nInstall: %s", e.Info.AltInstall)
	}

	return b.String()
}
