// Package render turns the output of a generation pass into the files of a
// firmware project: main.cpp, defines.h and the build.toml manifest.
package render

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/specialistvlad/firmgen/internal/ctxlog"
	"github.com/specialistvlad/firmgen/internal/engine"
	"github.com/specialistvlad/firmgen/internal/errors"
)

// File names written by Write.
const (
	MainFile    = "main.cpp"
	DefinesFile = "defines.h"
	BuildFile   = "build.toml"
)

const header = "// Auto generated code by firmgen\n// Do not edit; changes are overwritten on the next run.\n"

// File is one rendered output file.
type File struct {
	Name    string
	Content []byte
}

// Render renders every output file. It does not touch the file system.
func Render(out *engine.Output) ([]File, error) {
	build, err := BuildManifest(out)
	if err != nil {
		return nil, err
	}
	return []File{
		{Name: MainFile, Content: MainCPP(out)},
		{Name: DefinesFile, Content: DefinesH(out)},
		{Name: BuildFile, Content: build},
	}, nil
}

// Write renders every file and writes them into dir, creating it if needed.
// Files are staged in a temporary directory inside dir and moved into place
// once all of them are written. On error none of the new files are left in
// dir.
func Write(ctx context.Context, dir string, out *engine.Output) ([]string, error) {
	logger := ctxlog.FromContext(ctx)
	files, err := Render(out)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "creating output directory %s", dir)
	}
	stage, err := os.MkdirTemp(dir, ".firmgen-")
	if err != nil {
		return nil, errors.Wrapf(err, "creating staging directory in %s", dir)
	}
	defer os.RemoveAll(stage)

	for _, f := range files {
		path := filepath.Join(stage, f.Name)
		if err := os.WriteFile(path, f.Content, 0o644); err != nil {
			return nil, errors.Wrapf(err, "writing %s", filepath.Join(dir, f.Name))
		}
	}

	paths := make([]string, 0, len(files))
	for _, f := range files {
		path := filepath.Join(dir, f.Name)
		if err := os.Rename(filepath.Join(stage, f.Name), path); err != nil {
			for _, p := range paths {
				_ = os.Remove(p)
			}
			return nil, errors.Wrapf(err, "writing %s", path)
		}
		logger.Debug("Wrote output file.", "path", path, "bytes", len(f.Content))
		paths = append(paths, path)
	}
	return paths, nil
}

// MainCPP renders main.cpp: global declarations, then setup() with the pass
// statements in emission order.
func MainCPP(out *engine.Output) []byte {
	var b bytes.Buffer
	b.WriteString(header)
	b.WriteString("#include \"" + DefinesFile + "\"\n")
	b.WriteString("#include \"esphome.h\"\n\n")
	b.WriteString("using namespace esphome;\n\n")

	if len(out.Globals.Declarations) > 0 {
		for _, d := range out.Globals.Declarations {
			b.WriteString(d)
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}

	b.WriteString("void setup() {\n")
	for _, s := range out.Statements {
		for _, line := range strings.Split(s.Text, "\n") {
			b.WriteString("  " + line + "\n")
		}
	}
	b.WriteString("  App.setup();\n}\n\n")
	b.WriteString("void loop() {\n  App.loop();\n}\n")
	return b.Bytes()
}

// DefinesH renders the preprocessor definitions.
func DefinesH(out *engine.Output) []byte {
	var b bytes.Buffer
	b.WriteString(header)
	b.WriteString("#pragma once\n")
	for _, d := range out.Globals.Defines {
		b.WriteString("#define " + d.Name)
		if d.Value != "" {
			b.WriteString(" " + d.Value)
		}
		b.WriteByte('\n')
	}
	return b.Bytes()
}

type manifest struct {
	Libraries       []library         `toml:"libraries"`
	BuildFlags      []string          `toml:"build_flags"`
	PlatformOptions map[string]string `toml:"platform_options"`
}

type library struct {
	Name       string `toml:"name"`
	Version    string `toml:"version,omitempty"`
	Repository string `toml:"repository,omitempty"`
}

// BuildManifest renders build.toml: libraries, build flags and platform
// options for the build tool.
func BuildManifest(out *engine.Output) ([]byte, error) {
	m := manifest{
		BuildFlags:      out.Globals.BuildFlags,
		PlatformOptions: make(map[string]string, len(out.Globals.PlatformOptions)),
	}
	for _, l := range out.Globals.Libraries {
		m.Libraries = append(m.Libraries, library{Name: l.Name, Version: l.Version, Repository: l.Repository})
	}
	for _, o := range out.Globals.PlatformOptions {
		m.PlatformOptions[o.Key] = o.Value
	}

	var b bytes.Buffer
	b.WriteString("# Auto generated by firmgen\n")
	if err := toml.NewEncoder(&b).Encode(m); err != nil {
		return nil, errors.Wrap(err, "encoding build manifest")
	}
	return b.Bytes(), nil
}
