// Package render converts assembled newsletter content into the output
// formats written per run: Markdown, inline-styled HTML, templated HTML, and
// JSON.
package render

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/nivcodes/ainews/internal/core"
	"github.com/nivcodes/ainews/internal/logger"
)

// Renderer converts newsletter content into one output format.
type Renderer interface {
	// Name identifies the format in logs and result maps.
	Name() string
	// Filename is the artifact name inside the output directory.
	Filename() string
	Render(content *core.NewsletterContent) (string, error)
}

// DefaultRenderers returns the full renderer set used for a normal run.
func DefaultRenderers() []Renderer {
	return []Renderer{
		MarkdownRenderer{},
		InlineHTMLRenderer{},
		TemplateHTMLRenderer{},
		JSONRenderer{},
	}
}

// WriteAll renders content through each renderer and writes the artifacts
// into outputDir. It returns format name -> written path. A renderer failure
// fails the whole call: losing an output format is a configuration bug, not a
// per-item hiccup.
func WriteAll(content *core.NewsletterContent, outputDir string, renderers []Renderer) (map[string]string, error) {
	if outputDir == "" {
		outputDir = "output"
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}

	files := make(map[string]string, len(renderers))
	for _, r := range renderers {
		rendered, err := r.Render(content)
		if err != nil {
			return nil, fmt.Errorf("failed to render %s: %w", r.Name(), err)
		}
		path := filepath.Join(outputDir, r.Filename())
		if err := os.WriteFile(path, []byte(rendered), 0644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", path, err)
		}
		files[r.Name()] = path
		logger.Info("💾 Wrote newsletter artifact", "format", r.Name(), "path", path)
	}
	return files, nil
}
