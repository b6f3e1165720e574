package meshio

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	pathtracer "github.com/swordkee/pathtracer"
)

// LoadOBJ parses a Wavefront .obj file into a Mesh, triangulating any
// polygonal face with a fan from its first vertex. Only v/vt/vn/f
// records are recognized; everything else (groups, materials, smoothing
// groups) is ignored; only geometry is extracted here, since material
// always comes from the scene JSON rather than the mesh file.
// Stdlib bufio.Scanner only: no OBJ parsing library appears anywhere in
// the retrieval pack to adopt instead.
func LoadOBJ(path string) (*pathtracer.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &pathtracer.AssetError{Path: path, Err: err}
	}
	defer f.Close()

	var positions []pathtracer.Vector
	var normals []pathtracer.Vector
	var texcoords []pathtracer.Vector
	var triangles []*pathtracer.Triangle

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			v, err := parseVector3(fields[1:])
			if err != nil {
				return nil, &pathtracer.AssetError{Path: path, Err: fmt.Errorf("line %d: %w", lineNo, err)}
			}
			positions = append(positions, v)
		case "vn":
			v, err := parseVector3(fields[1:])
			if err != nil {
				return nil, &pathtracer.AssetError{Path: path, Err: fmt.Errorf("line %d: %w", lineNo, err)}
			}
			normals = append(normals, v)
		case "vt":
			u, v0 := 0.0, 0.0
			if len(fields) > 1 {
				u, _ = strconv.ParseFloat(fields[1], 64)
			}
			if len(fields) > 2 {
				v0, _ = strconv.ParseFloat(fields[2], 64)
			}
			texcoords = append(texcoords, pathtracer.Vector{X: u, Y: v0})
		case "f":
			verts := make([]pathtracer.Vertex, 0, len(fields)-1)
			for _, tok := range fields[1:] {
				vert, err := resolveOBJVertex(tok, positions, normals, texcoords)
				if err != nil {
					return nil, &pathtracer.AssetError{Path: path, Err: fmt.Errorf("line %d: %w", lineNo, err)}
				}
				verts = append(verts, vert)
			}
			for i := 1; i+1 < len(verts); i++ {
				triangles = append(triangles, pathtracer.NewTriangle(verts[0], verts[i], verts[i+1]))
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &pathtracer.AssetError{Path: path, Err: err}
	}
	if len(triangles) == 0 {
		return nil, &pathtracer.AssetError{Path: path, Err: fmt.Errorf("no faces found")}
	}
	return pathtracer.NewTriangleMesh(triangles), nil
}

func parseVector3(fields []string) (pathtracer.Vector, error) {
	if len(fields) < 3 {
		return pathtracer.Vector{}, fmt.Errorf("expected 3 components, got %d", len(fields))
	}
	x, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return pathtracer.Vector{}, err
	}
	y, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return pathtracer.Vector{}, err
	}
	z, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return pathtracer.Vector{}, err
	}
	return pathtracer.Vector{X: x, Y: y, Z: z}, nil
}

// resolveOBJVertex parses one face-record token ("v", "v/vt", "v//vn",
// or "v/vt/vn") and looks up the referenced 1-based (or negative,
// relative-to-end) indices into the accumulated position/normal/texture
// slices.
func resolveOBJVertex(tok string, positions, normals, texcoords []pathtracer.Vector) (pathtracer.Vertex, error) {
	parts := strings.Split(tok, "/")
	idx := func(s string, n int) (int, bool, error) {
		if s == "" {
			return 0, false, nil
		}
		i, err := strconv.Atoi(s)
		if err != nil {
			return 0, false, err
		}
		if i < 0 {
			i = n + i + 1
		}
		return i - 1, true, nil
	}

	pi, ok, err := idx(parts[0], len(positions))
	if err != nil || !ok || pi < 0 || pi >= len(positions) {
		return pathtracer.Vertex{}, fmt.Errorf("bad vertex index in %q", tok)
	}
	v := pathtracer.Vertex{Position: positions[pi]}

	if len(parts) > 1 {
		if ti, ok, err := idx(parts[1], len(texcoords)); err == nil && ok && ti >= 0 && ti < len(texcoords) {
			v.Texture = texcoords[ti]
		}
	}
	if len(parts) > 2 {
		if ni, ok, err := idx(parts[2], len(normals)); err == nil && ok && ni >= 0 && ni < len(normals) {
			v.Normal = normals[ni]
		}
	}
	return v, nil
}
