package render

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/net/html"
)

// Converter turns markup source into an HTML fragment. Implementations must
// be safe to call repeatedly within one build.
type Converter interface {
	// Name identifies the converter for the site manifest.
	Name() string
	Convert(src []byte) ([]byte, error)
}

// NewConverter picks the converter for the build: the built-in goldmark
// pipeline, or an external command when the template config names one.
func NewConverter(command []string) Converter {
	if len(command) > 0 {
		return &execConverter{command: command}
	}
	return newGoldmarkConverter()
}

type goldmarkConverter struct {
	md goldmark.Markdown
}

func newGoldmarkConverter() *goldmarkConverter {
	return &goldmarkConverter{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
		),
	}
}

func (c *goldmarkConverter) Name() string { return "goldmark" }

func (c *goldmarkConverter) Convert(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.md.Convert(src, &buf); err != nil {
		return nil, fmt.Errorf("goldmark convert: %w", err)
	}
	return buf.Bytes(), nil
}

// execConverter runs one fresh subprocess per conversion so a failing or
// state-mutating converter run cannot leak into the next item. The source is
// handed over via a temporary file that is removed on every exit path.
type execConverter struct {
	command []string
}

func (c *execConverter) Name() string { return c.command[0] }

func (c *execConverter) Convert(src []byte) ([]byte, error) {
	tmp, err := os.CreateTemp("", "pkgdown-md-*.md")
	if err != nil {
		return nil, fmt.Errorf("create converter input: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(src); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write converter input: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("close converter input: %w", err)
	}

	args := append(append([]string{}, c.command[1:]...), tmp.Name())
	cmd := exec.Command(c.command[0], args...)
	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("converter %s failed: %w: %s", c.command[0], err, strings.TrimSpace(errBuf.String()))
	}

	// Structural sanity check before the fragment is written anywhere.
	if _, err := html.Parse(bytes.NewReader(out.Bytes())); err != nil {
		return nil, fmt.Errorf("converter %s produced unparseable HTML: %w", c.command[0], err)
	}
	return out.Bytes(), nil
}
