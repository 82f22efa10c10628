// Package provenance detects the enclosing workspace root of an analyzed
// input, mirroring viant/linager's inspector/repository.Detector. It
// exists purely to annotate verbose warnings with context ("input found
// under workspace rooted at ..."); nothing in the call-graph core depends
// on it.
package provenance

import (
	"os"
	"path/filepath"

	"golang.org/x/mod/modfile"
)

// Kind names the marker that identified a workspace root.
type Kind string

const (
	Go      Kind = "go"
	Maven   Kind = "maven"
	Gradle  Kind = "gradle"
	Git     Kind = "git"
	Unknown Kind = "unknown"
)

// Workspace describes the project root enclosing an analyzed path.
type Workspace struct {
	Root string
	Kind Kind
	Name string
}

type marker struct {
	file string
	kind Kind
}

// Detector walks upward from a path looking for project-root markers.
type Detector struct {
	markers []marker
}

// New returns a Detector configured with the markers viant/linager's
// repository.Detector recognizes, restricted to the kinds relevant here.
func New() *Detector {
	return &Detector{
		markers: []marker{
			{"go.mod", Go},
			{"pom.xml", Maven},
			{"build.gradle", Gradle},
			{".git", Git},
		},
	}
}

// Detect walks up from path (or its parent directory, if path names a
// file) looking for the first marker present. It returns ok=false if no
// marker is found before reaching the filesystem root.
func (d *Detector) Detect(path string) (Workspace, bool) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Workspace{}, false
	}

	dir := abs
	if info, err := os.Stat(abs); err == nil && !info.IsDir() {
		dir = filepath.Dir(abs)
	}

	for {
		for _, m := range d.markers {
			if _, err := os.Stat(filepath.Join(dir, m.file)); err == nil {
				ws := Workspace{Root: dir, Kind: m.kind}
				ws.Name = d.projectName(dir, m)
				return ws, true
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return Workspace{}, false
		}
		dir = parent
	}
}

func (d *Detector) projectName(root string, m marker) string {
	if m.kind != Go {
		return ""
	}
	data, err := os.ReadFile(filepath.Join(root, "go.mod"))
	if err != nil {
		return ""
	}
	mf, err := modfile.Parse("go.mod", data, nil)
	if err != nil || mf.Module == nil {
		return ""
	}
	return mf.Module.Mod.Path
}
