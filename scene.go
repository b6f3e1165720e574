package pathtracer

import "math"

// Scene is the top-level, immutable-once-built render target:
// image dimensions, recursion/AO limits, camera, lights, and a BVH over
// the flattened world-primitive array. Trimmed from scene.go, which
// carried string-keyed Materials/Textures/Meshes registries and an
// Animations/Skins/MorphTargets/Extensions surface — none of that is
// needed here, since Flatten already resolves every primitive's
// material and transform once, up front.
type Scene struct {
	Width, Height        int
	MaxDepth             int
	MaxOcclusionDistance float64
	SkipDenoisePass      bool
	Gamma                float64

	Camera *Camera
	Lights []Light
	BVH    *BVH

	Primitives []*Primitive
}

// NewScene builds the BVH over root's flattened primitives and applies
// the default field values (max_depth=3, gamma=2.2) when left at their
// zero value. maxOcclusionDistance is a pointer so that an explicit 0
// ("AO disabled") survives: nil means "absent", defaulting to +Inf
// (AO over the whole scene), while a non-nil 0 is honored as-is.
func NewScene(width, height int, maxDepth int, maxOcclusionDistance *float64, gamma float64, camera *Camera, lights []Light, root *Node) *Scene {
	if maxDepth == 0 {
		maxDepth = 3
	}
	occlusion := math.Inf(1)
	if maxOcclusionDistance != nil {
		occlusion = *maxOcclusionDistance
	}
	if gamma == 0 {
		gamma = 2.2
	}
	primitives := Flatten(root)
	return &Scene{
		Width:                width,
		Height:               height,
		MaxDepth:             maxDepth,
		MaxOcclusionDistance: occlusion,
		Gamma:                gamma,
		Camera:               camera,
		Lights:               lights,
		Primitives:           primitives,
		BVH:                  BuildBVH(primitives),
	}
}

// Bounds is the world AABB enclosing every primitive in the scene,
// computed as a brute-force union over Primitives.
func (s *Scene) Bounds() Box {
	box := EmptyBox
	for _, p := range s.Primitives {
		box = box.Extend(p.WorldBounds)
	}
	return box
}
