package condactx

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Markers delimiting the context block in the markers format
const (
	BeginMarker = ">>> MAMBA CONTEXT <<<"
	EndMarker   = ">>> END MAMBA CONTEXT <<<"
)

// Format selects how a Context is rendered
type Format string

const (
	FormatJSON    Format = "json"
	FormatMarkers Format = "markers"
)

// Render writes c to w in the requested format
func Render(w io.Writer, c *Context, format Format) error {
	switch format {
	case FormatJSON, "":
		if err := EncodeJSON(w, c); err != nil {
			return fmt.Errorf("failed to marshal context: %w", err)
		}
		return nil
	case FormatMarkers:
		data, err := yaml.Marshal(c)
		if err != nil {
			return fmt.Errorf("failed to marshal context: %w", err)
		}
		_, err = fmt.Fprintf(w, "%s\n%s%s\n", BeginMarker, data, EndMarker)
		return err
	default:
		return fmt.Errorf("unknown context format %q", format)
	}
}

// RenderConfig writes the configuration subset of c as YAML
func RenderConfig(w io.Writer, c *Context) error {
	data, err := yaml.Marshal(c.Config())
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// EncodeJSON writes v as indented JSON followed by a newline. Strings are
// not HTML-escaped so values such as <false> print as the installer does.
func EncodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
