package meshio

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadGLTFMissingFile(t *testing.T) {
	_, err := LoadGLTF("/nonexistent/path/does-not-exist.gltf")
	require.Error(t, err)
}
