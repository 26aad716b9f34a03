package taxonomy

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/poiesic/taxonomist/core"
)

// WriteJSON writes the machine-readable taxonomy with two-space indentation.
func WriteJSON(w io.Writer, tax *core.Taxonomy) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(tax)
}

// WriteMarkdown writes the compact human-readable summary: one section per
// domain listing its groups, families and standalone tables, with
// Miscellaneous subgroups one level deeper.
func WriteMarkdown(w io.Writer, tax *core.Taxonomy) error {
	var b strings.Builder
	b.WriteString("# Taxonomy Summary\n")
	for _, d := range tax.Domains {
		fmt.Fprintf(&b, "\n## %s\n", d.Name)
		for _, g := range d.Groups {
			fmt.Fprintf(&b, "- %s: %s\n", g.Name, g.Description)
			writeListing(&b, "  ", g.TableFamilies, g.Tables)
			for _, sg := range g.Subgroups {
				fmt.Fprintf(&b, "  - %s: %s\n", sg.Name, sg.Description)
				writeListing(&b, "    ", sg.TableFamilies, sg.Tables)
			}
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeListing(b *strings.Builder, indent string, families []core.FamilyView, tables []core.TableView) {
	for _, f := range families {
		fmt.Fprintf(b, "%s- Family: %s -> %s\n", indent, f.Family, strings.Join(f.Variants, ", "))
	}
	if len(tables) == 0 {
		return
	}
	names := make([]string, 0, len(tables))
	for _, t := range tables {
		names = append(names, t.Table)
	}
	fmt.Fprintf(b, "%s- Tables: %s\n", indent, strings.Join(names, ", "))
}

// WriteArtifacts writes taxonomy.json and taxonomy.md style outputs. Both are
// rendered to temporary files next to their destinations and renamed into
// place only after both succeeded. An empty path skips that artifact.
func WriteArtifacts(tax *core.Taxonomy, jsonPath, markdownPath string) error {
	type artifact struct {
		path   string
		render func(io.Writer, *core.Taxonomy) error
		tmp    string
	}
	artifacts := []*artifact{
		{path: jsonPath, render: WriteJSON},
		{path: markdownPath, render: WriteMarkdown},
	}

	cleanup := func() {
		for _, a := range artifacts {
			if a.tmp != "" {
				os.Remove(a.tmp)
			}
		}
	}

	for _, a := range artifacts {
		if a.path == "" {
			continue
		}
		var buf bytes.Buffer
		if err := a.render(&buf, tax); err != nil {
			cleanup()
			return fmt.Errorf("%w: rendering %s: %w", ErrWriteArtifacts, a.path, err)
		}
		tmp, err := writeTemp(a.path, buf.Bytes())
		if err != nil {
			cleanup()
			return fmt.Errorf("%w: %w", ErrWriteArtifacts, err)
		}
		a.tmp = tmp
	}

	for _, a := range artifacts {
		if a.tmp == "" {
			continue
		}
		if err := os.Rename(a.tmp, a.path); err != nil {
			cleanup()
			return fmt.Errorf("%w: %w", ErrWriteArtifacts, err)
		}
		a.tmp = ""
	}
	return nil
}

func writeTemp(path string, data []byte) (string, error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return "", err
	}
	if err := f.Chmod(0o644); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}
