// pre_processor.go implements the WGSL shader pre-processor. It scans shader
// source code for @include:<name> lines and replaces them with registered WGSL
// fragments. The shadow pipeline set registers shared fragments (the frame
// uniform struct, the Poisson sampling table, common visibility helpers) so a
// single canonical definition feeds every technique's program.
package shader

import (
	"fmt"
	"strings"
)

// includePrefix marks a line as an include directive: "@include:frame_uniforms".
const includePrefix = "@include:"

// preProcessor is the implementation of the PreProcessor interface.
type preProcessor struct {
	// includes maps include names to their WGSL fragment source.
	includes map[string]string
}

// PreProcessor processes raw WGSL shader source, replacing @include:<name>
// directives with registered source fragments.
type PreProcessor interface {
	// Register adds or replaces a named include fragment.
	//
	// Parameters:
	//   - name: the include key referenced by @include:<name> lines
	//   - source: the WGSL fragment to inject
	Register(name, source string)

	// Process takes raw WGSL shader source and replaces every @include:<name>
	// line with the registered fragment of that name. Unknown include names
	// are an error: a program referencing a fragment that was never registered
	// cannot compile, and failing here names the missing piece.
	//
	// Parameters:
	//   - source: the raw WGSL shader source code
	//
	// Returns:
	//   - string: the source with all includes expanded
	//   - error: an error naming any unknown include
	Process(source string) (string, error)
}

var _ PreProcessor = &preProcessor{}

// NewPreProcessor creates an empty PreProcessor. Fragments are registered by
// the shader owner (see shader.WithInclude) before Process runs.
//
// Returns:
//   - PreProcessor: a ready-to-use pre-processor instance
func NewPreProcessor() PreProcessor {
	return &preProcessor{
		includes: make(map[string]string),
	}
}

func (p *preProcessor) Register(name, source string) {
	p.includes[name] = source
}

func (p *preProcessor) Process(source string) (string, error) {
	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, includePrefix) {
			out = append(out, line)
			continue
		}

		name := strings.TrimSpace(strings.TrimPrefix(trimmed, includePrefix))
		fragment, ok := p.includes[name]
		if !ok {
			return "", fmt.Errorf("line %d: unknown include %q", i+1, name)
		}
		out = append(out, fragment)
	}
	return strings.Join(out, "\n"), nil
}
