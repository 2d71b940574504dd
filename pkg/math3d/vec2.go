package math3d

// Vec2 is a texel coordinate. W tracks the owning vertex's clip-space w so
// the rasterizer can interpolate u/w, v/w and 1/w linearly in screen space.
type Vec2 struct {
	U, V, W float64
}

// V2 creates a texel coordinate with W = 1.
func V2(u, v float64) Vec2 {
	return Vec2{u, v, 1}
}

// Lerp interpolates all three components by t.
func (a Vec2) Lerp(b Vec2, t float64) Vec2 {
	return Vec2{
		U: a.U + (b.U-a.U)*t,
		V: a.V + (b.V-a.V)*t,
		W: a.W + (b.W-a.W)*t,
	}
}
