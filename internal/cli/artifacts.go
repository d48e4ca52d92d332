package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/layerscope/layerscope/pkg/pipeline"
)

// artifactWriteParams bundles everything needed to write rendered outputs.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string // source name, used to derive default output paths
	output    string // explicit output path or base path, may be empty
}

// writeArtifacts writes each rendered format to disk. With a single format
// and an explicit output, the file is written exactly there; otherwise each
// format lands at <base>.<format>, where base derives from the output flag
// or the input name.
func writeArtifacts(p artifactWriteParams) error {
	if len(p.formats) == 1 && p.output != "" {
		return writeArtifact(p.output, p.artifacts[p.formats[0]])
	}

	base := basePath(p.output, p.input)
	for _, format := range p.formats {
		data, ok := p.artifacts[format]
		if !ok {
			continue
		}
		if err := writeArtifact(base+"."+format, data); err != nil {
			return err
		}
	}
	return nil
}

func writeArtifact(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	printFile(path)
	return nil
}

// basePath derives the base output path from the output and input paths.
// If output is empty, it strips the extension from input (sheet IDs have
// none and pass through unchanged). If output ends in a known format
// extension, that extension is stripped.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
