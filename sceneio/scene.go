// Package sceneio decodes the scene JSON format into a
// pathtracer.Scene ready for Render.
package sceneio

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	pathtracer "github.com/swordkee/pathtracer"
	"github.com/swordkee/pathtracer/meshio"
)

type sceneFile struct {
	Width               int             `json:"width"`
	Height              int             `json:"height"`
	MaxDepth            *int            `json:"max_depth"`
	MaxOcclusionDistance *float64       `json:"max_occlusion_distance"`
	SkipDenoisePass     bool            `json:"skip_denoise_pass"`
	Gamma               *float64        `json:"gamma"`
	Camera              cameraFile      `json:"camera"`
	Lights              []lightFile     `json:"lights"`
	Objects             nodeFile        `json:"objects"`
}

type cameraFile struct {
	Position [3]float64  `json:"position"`
	Target   [3]float64  `json:"target"`
	Up       *[3]float64 `json:"up"`
	FOV      *float64    `json:"fov"`
}

type lightFile struct {
	Type      string     `json:"type"`
	Color     [3]float64 `json:"color"`
	Position  [3]float64 `json:"position"`
	Intensity *float64   `json:"intensity"`
}

type transformOpFile struct {
	Translate *[3]float64  `json:"translate"`
	Scale     *[3]float64  `json:"scale"`
	Rotate    *rotateEntry `json:"rotate"`
}

// rotateEntry unmarshals the two-element `[[ax,ay,az], deg]` array form
// of a rotate transform op.
type rotateEntry struct {
	Axis [3]float64
	Deg  float64
}

func (r *rotateEntry) UnmarshalJSON(data []byte) error {
	var raw [2]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if err := json.Unmarshal(raw[0], &r.Axis); err != nil {
		return err
	}
	return json.Unmarshal(raw[1], &r.Deg)
}

type materialFile struct {
	Type            string      `json:"type"`
	Color           *[3]float64 `json:"color"`
	Emissive        *[3]float64 `json:"emissive"`
	Opacity         *float64    `json:"opacity"`
	RefractiveIndex *float64    `json:"refractive_index"`
	AlbedoTexture   string      `json:"albedo_texture"`
	Specular        *[3]float64 `json:"specular"`
	Shininess       *float64    `json:"shininess"`
	Reflectivity    *float64    `json:"reflectivity"`
	Metalness       *float64    `json:"metalness"`
	Roughness       *float64    `json:"roughness"`
	Side            string      `json:"side"`
}

type simplifyFile struct {
	Factor float64 `json:"factor"`
}

type nodeFile struct {
	Type      string            `json:"type"`
	Transform []transformOpFile `json:"transform"`
	Material  *materialFile     `json:"material"`
	Children  []nodeFile        `json:"children"`

	// sphere
	Radius float64 `json:"radius"`
	// cube
	HalfExtent float64 `json:"half_extent"`
	// plane
	Normal *[3]float64 `json:"normal"`
	Point  *[3]float64 `json:"point"`
	// triangle
	V0      *[3]float64    `json:"v0"`
	V1      *[3]float64    `json:"v1"`
	V2      *[3]float64    `json:"v2"`
	Normals *[3][3]float64 `json:"normals"`
	UVs     *[3][2]float64 `json:"uvs"`
	// mesh
	File     string        `json:"file"`
	Format   string        `json:"format"`
	Simplify *simplifyFile `json:"simplify"`
}

// Load reads and decodes a scene JSON file at path into a ready-to-render
// Scene, resolving "mesh" nodes (OBJ or glTF) and textures relative to
// the scene file's own directory.
func Load(path string) (*pathtracer.Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &pathtracer.ConfigError{Path: path, Err: err}
	}

	var sf sceneFile
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&sf); err != nil {
		return nil, &pathtracer.ConfigError{Path: path, Err: fmt.Errorf("parse scene: %w", err)}
	}
	if sf.Width <= 0 || sf.Height <= 0 {
		return nil, &pathtracer.ConfigError{Path: path, Err: fmt.Errorf("width/height must be positive")}
	}

	dir := filepath.Dir(path)

	root, err := buildNode(sf.Objects, dir)
	if err != nil {
		var assetErr *pathtracer.AssetError
		if errors.As(err, &assetErr) {
			return nil, assetErr
		}
		return nil, &pathtracer.ConfigError{Path: path, Err: err}
	}

	lights := make([]pathtracer.Light, 0, len(sf.Lights))
	for i, lf := range sf.Lights {
		light, err := buildLight(lf)
		if err != nil {
			return nil, &pathtracer.ConfigError{Path: path, Err: fmt.Errorf("light %d: %w", i, err)}
		}
		lights = append(lights, light)
	}

	up := pathtracer.Vector{X: 0, Y: 1, Z: 0}
	if sf.Camera.Up != nil {
		up = vec(*sf.Camera.Up)
	}
	fov := 60.0
	if sf.Camera.FOV != nil {
		fov = *sf.Camera.FOV
	}
	aspect := float64(sf.Width) / float64(sf.Height)
	camera := pathtracer.NewCamera(vec(sf.Camera.Position), vec(sf.Camera.Target), up, radians(fov), aspect)

	maxDepth := 3
	if sf.MaxDepth != nil {
		maxDepth = *sf.MaxDepth
	}
	gamma := 2.2
	if sf.Gamma != nil {
		gamma = *sf.Gamma
	}

	scene := pathtracer.NewScene(sf.Width, sf.Height, maxDepth, sf.MaxOcclusionDistance, gamma, camera, lights, root)
	scene.SkipDenoisePass = sf.SkipDenoisePass
	return scene, nil
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

func vec(a [3]float64) pathtracer.Vector { return pathtracer.Vector{X: a[0], Y: a[1], Z: a[2]} }

func buildLight(lf lightFile) (pathtracer.Light, error) {
	color := pathtracer.Color{R: lf.Color[0], G: lf.Color[1], B: lf.Color[2], A: 1}
	switch lf.Type {
	case "ambient":
		return pathtracer.NewAmbientLight(color), nil
	case "point":
		intensity := 1.0
		if lf.Intensity != nil {
			intensity = *lf.Intensity
		}
		return pathtracer.NewPointLight(vec(lf.Position), color, intensity), nil
	default:
		return pathtracer.Light{}, fmt.Errorf("unknown light type %q", lf.Type)
	}
}

func buildTransform(ops []transformOpFile) []pathtracer.TransformOp {
	out := make([]pathtracer.TransformOp, 0, len(ops))
	for _, op := range ops {
		switch {
		case op.Translate != nil:
			out = append(out, pathtracer.TranslateOp(vec(*op.Translate)))
		case op.Scale != nil:
			out = append(out, pathtracer.ScaleOp(vec(*op.Scale)))
		case op.Rotate != nil:
			out = append(out, pathtracer.RotateOp(vec(op.Rotate.Axis), op.Rotate.Deg))
		}
	}
	return out
}

func buildMaterial(mf *materialFile, dir string) (*pathtracer.Material, error) {
	if mf == nil {
		return nil, nil
	}
	color := pathtracer.Color{R: 1, G: 1, B: 1, A: 1}
	if mf.Color != nil {
		color = pathtracer.Color{R: mf.Color[0], G: mf.Color[1], B: mf.Color[2], A: 1}
	}

	var mat *pathtracer.Material
	switch mf.Type {
	case "", "phong":
		specular := pathtracer.Color{R: 1, G: 1, B: 1, A: 1}
		if mf.Specular != nil {
			specular = pathtracer.Color{R: mf.Specular[0], G: mf.Specular[1], B: mf.Specular[2], A: 1}
		}
		shininess := 32.0
		if mf.Shininess != nil {
			shininess = *mf.Shininess
		}
		mat = pathtracer.NewPhongMaterial(color, specular, shininess)
		if mf.Reflectivity != nil {
			mat.Reflectivity = *mf.Reflectivity
		}
	case "physical":
		metalness, roughness := 0.0, 0.5
		if mf.Metalness != nil {
			metalness = *mf.Metalness
		}
		if mf.Roughness != nil {
			roughness = *mf.Roughness
		}
		mat = pathtracer.NewPhysicalMaterial(color, metalness, roughness)
	default:
		return nil, fmt.Errorf("unknown material type %q", mf.Type)
	}

	if mf.Emissive != nil {
		mat.Emissive = pathtracer.Color{R: mf.Emissive[0], G: mf.Emissive[1], B: mf.Emissive[2], A: 1}
	}
	if mf.Opacity != nil {
		mat.Opacity = *mf.Opacity
	} else {
		mat.Opacity = 1
	}
	if mf.RefractiveIndex != nil {
		mat.RefractiveIndex = *mf.RefractiveIndex
	} else if mat.RefractiveIndex == 0 {
		mat.RefractiveIndex = 1
	}
	switch mf.Side {
	case "", "front":
		mat.Side = pathtracer.Front
	case "back":
		mat.Side = pathtracer.Back
	case "both":
		mat.Side = pathtracer.Both
	default:
		return nil, fmt.Errorf("unknown side %q", mf.Side)
	}
	if mf.AlbedoTexture != "" {
		tex, err := pathtracer.LoadTexture(filepath.Join(dir, mf.AlbedoTexture))
		if err != nil {
			return nil, err
		}
		mat.AlbedoTexture = tex
	}
	return mat, nil
}

func buildNode(nf nodeFile, dir string) (*pathtracer.Node, error) {
	mat, err := buildMaterial(nf.Material, dir)
	if err != nil {
		return nil, err
	}
	n := &pathtracer.Node{
		Ops:      buildTransform(nf.Transform),
		Material: mat,
	}

	switch nf.Type {
	case "group":
		n.Kind = pathtracer.GroupNode
	case "sphere":
		n.Kind = pathtracer.SphereNode
		n.Sphere = pathtracer.Sphere{Radius: nf.Radius}
	case "cube":
		n.Kind = pathtracer.CubeNode
		n.Cube = pathtracer.Cube{HalfExtent: nf.HalfExtent}
	case "plane":
		n.Kind = pathtracer.PlaneNode
		normal := pathtracer.Vector{X: 0, Y: 1, Z: 0}
		if nf.Normal != nil {
			normal = vec(*nf.Normal)
		}
		var point pathtracer.Vector
		if nf.Point != nil {
			point = vec(*nf.Point)
		}
		n.Plane = pathtracer.Plane{Normal: normal.Normalize(), Point: point}
	case "triangle":
		n.Kind = pathtracer.TriangleNode
		tri, err := buildTriangle(nf)
		if err != nil {
			return nil, err
		}
		n.Triangle = tri
	case "mesh":
		n.Kind = pathtracer.MeshNode
		mesh, err := loadMesh(nf, dir)
		if err != nil {
			return nil, err
		}
		n.Mesh = mesh
	default:
		return nil, fmt.Errorf("unknown node type %q", nf.Type)
	}

	for _, c := range nf.Children {
		child, err := buildNode(c, dir)
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, child)
	}
	return n, nil
}

func buildTriangle(nf nodeFile) (*pathtracer.Triangle, error) {
	if nf.V0 == nil || nf.V1 == nil || nf.V2 == nil {
		return nil, fmt.Errorf("triangle node missing v0/v1/v2")
	}
	v1 := pathtracer.Vertex{Position: vec(*nf.V0)}
	v2 := pathtracer.Vertex{Position: vec(*nf.V1)}
	v3 := pathtracer.Vertex{Position: vec(*nf.V2)}
	if nf.Normals != nil {
		v1.Normal = vec(nf.Normals[0])
		v2.Normal = vec(nf.Normals[1])
		v3.Normal = vec(nf.Normals[2])
	}
	if nf.UVs != nil {
		v1.Texture = pathtracer.Vector{X: nf.UVs[0][0], Y: nf.UVs[0][1]}
		v2.Texture = pathtracer.Vector{X: nf.UVs[1][0], Y: nf.UVs[1][1]}
		v3.Texture = pathtracer.Vector{X: nf.UVs[2][0], Y: nf.UVs[2][1]}
	}
	return pathtracer.NewTriangle(v1, v2, v3), nil
}

func loadMesh(nf nodeFile, dir string) (*pathtracer.Mesh, error) {
	path := filepath.Join(dir, nf.File)
	var mesh *pathtracer.Mesh
	var err error
	switch nf.Format {
	case "", "obj":
		mesh, err = meshio.LoadOBJ(path)
	case "gltf":
		mesh, err = meshio.LoadGLTF(path)
	default:
		return nil, fmt.Errorf("unknown mesh format %q", nf.Format)
	}
	if err != nil {
		return nil, err
	}
	if nf.Simplify != nil {
		mesh.Simplify(nf.Simplify.Factor)
	}
	return mesh, nil
}
