package pathtracer

import "fmt"

// ConfigError wraps a problem with the scene JSON itself: malformed
// syntax, an unknown node/material type, a nonpositive image dimension,
// or an unparseable transform entry. Setup errors are fatal.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("config error in %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("config error: %v", e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// AssetError wraps a missing or unreadable OBJ/glTF mesh or texture file.
type AssetError struct {
	Path string
	Err  error
}

func (e *AssetError) Error() string {
	return fmt.Sprintf("asset error loading %s: %v", e.Path, e.Err)
}

func (e *AssetError) Unwrap() error { return e.Err }

// RenderError marks a numerical issue inside the integrator (a NaN or Inf
// reached the pixel accumulator). The driver substitutes black for any
// such sample; it does not construct, return or log a RenderError.
type RenderError struct {
	X, Y int
	Err  error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render error at pixel (%d,%d): %v", e.X, e.Y, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// OutputError wraps an image-encoder or window-display failure.
type OutputError struct {
	Path string
	Err  error
}

func (e *OutputError) Error() string {
	return fmt.Sprintf("output error writing %s: %v", e.Path, e.Err)
}

func (e *OutputError) Unwrap() error { return e.Err }
