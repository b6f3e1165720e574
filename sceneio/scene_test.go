package sceneio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	pathtracer "github.com/swordkee/pathtracer"
)

const minimalScene = `{
  "width": 8,
  "height": 8,
  "max_depth": 2,
  "gamma": 2.2,
  "camera": {"position": [0, 0, 5], "target": [0, 0, 0], "fov": 60},
  "lights": [
    {"type": "ambient", "color": [0.1, 0.1, 0.1]},
    {"type": "point", "position": [0, 10, 0], "color": [1, 1, 1], "intensity": 1}
  ],
  "objects": {
    "type": "group",
    "children": [
      {
        "type": "sphere",
        "radius": 1,
        "transform": [{"translate": [0, 0, 0]}],
        "material": {"type": "phong", "color": [1, 0, 0]}
      },
      {
        "type": "plane",
        "normal": [0, 1, 0],
        "point": [0, -1, 0],
        "material": {"type": "physical", "color": [1, 1, 1], "metalness": 0.2, "roughness": 0.8}
      }
    ]
  }
}`

func TestLoadMinimalScene(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.json")
	require.NoError(t, os.WriteFile(path, []byte(minimalScene), 0o644))

	scene, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 8, scene.Width)
	require.Equal(t, 8, scene.Height)
	require.Len(t, scene.Primitives, 2)
	require.Len(t, scene.Lights, 2)
}

func TestLoadRejectsBadDimensions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"width":0,"height":8,"camera":{},"objects":{"type":"group"}}`), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	var cfgErr *pathtracer.ConfigError
	require.ErrorAs(t, err, &cfgErr)
}

func TestLoadRejectsUnknownNodeType(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"width":4,"height":4,"camera":{},"objects":{"type":"nonsense"}}`), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"width":4,"height":4,"camera":{},"objects":{"type":"group"},"bogus":true}`), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}
