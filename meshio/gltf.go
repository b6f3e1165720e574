// Package meshio loads external mesh assets (OBJ, glTF/GLB) into
// pathtracer.Mesh values for the "mesh" scene node kind.
package meshio

import (
	"fmt"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	pathtracer "github.com/swordkee/pathtracer"
)

// LoadGLTF opens a .gltf or .glb file and returns a single Mesh
// concatenating every primitive of every mesh in the document, each in
// its mesh's own coordinates: the document's scenes and node transforms
// are not read.
// Per-primitive materials are not carried: a scene node's material is
// always assigned at the scene-JSON level, same as for a sphere or cube
// node, so a mesh node's glTF material data is intentionally ignored
// here — only geometry is read. Grounded on the real
// github.com/qmuntal/gltf + gltf/modeler API surface demonstrated in
// sibling pack repo mrigankad-gorenderengine's scene/gltf_loader.go,
// trimmed to geometry only (no texture/material extraction) since this
// package's Mesh carries no per-triangle material.
func LoadGLTF(path string) (*pathtracer.Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, &pathtracer.AssetError{Path: path, Err: err}
	}

	var triangles []*pathtracer.Triangle
	for mi, gm := range doc.Meshes {
		for pi, prim := range gm.Primitives {
			ts, err := loadGLTFPrimitive(doc, prim)
			if err != nil {
				return nil, fmt.Errorf("gltf %s: mesh %d prim %d: %w", filepath.Base(path), mi, pi, err)
			}
			triangles = append(triangles, ts...)
		}
	}
	if len(triangles) == 0 {
		return nil, fmt.Errorf("gltf %s: no triangles found", filepath.Base(path))
	}
	return pathtracer.NewTriangleMesh(triangles), nil
}

// loadGLTFPrimitive reads one primitive's POSITION/NORMAL/TEXCOORD_0
// accessors plus its index buffer (or, if unindexed, positions taken
// three at a time) and returns its triangles.
func loadGLTFPrimitive(doc *gltf.Document, prim *gltf.Primitive) ([]*pathtracer.Triangle, error) {
	posIdx, ok := prim.Attributes["POSITION"]
	if !ok {
		return nil, fmt.Errorf("no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, fmt.Errorf("positions: %w", err)
	}

	var normals [][3]float32
	var uvs [][2]float32
	if idx, ok := prim.Attributes["NORMAL"]; ok {
		normals, _ = modeler.ReadNormal(doc, doc.Accessors[idx], nil)
	}
	if idx, ok := prim.Attributes["TEXCOORD_0"]; ok {
		uvs, _ = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil)
	}

	verts := make([]pathtracer.Vertex, len(positions))
	for i, p := range positions {
		v := pathtracer.Vertex{
			Position: pathtracer.Vector{X: float64(p[0]), Y: float64(p[1]), Z: float64(p[2])},
		}
		if i < len(normals) {
			n := normals[i]
			v.Normal = pathtracer.Vector{X: float64(n[0]), Y: float64(n[1]), Z: float64(n[2])}
		}
		if i < len(uvs) {
			uv := uvs[i]
			v.Texture = pathtracer.Vector{X: float64(uv[0]), Y: float64(uv[1])}
		}
		verts[i] = v
	}

	var indices []uint32
	if prim.Indices != nil {
		indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return nil, fmt.Errorf("indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(verts))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	triangles := make([]*pathtracer.Triangle, 0, len(indices)/3)
	for i := 0; i+2 < len(indices); i += 3 {
		v1, v2, v3 := verts[indices[i]], verts[indices[i+1]], verts[indices[i+2]]
		triangles = append(triangles, pathtracer.NewTriangle(v1, v2, v3))
	}
	return triangles, nil
}
