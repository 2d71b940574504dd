package render

// DrawTriangleOutline draws the edges of a screen-space triangle (y = 0 at
// the bottom). Lines ignore the depth buffer.
func (fb *Framebuffer) DrawTriangleOutline(tri Triangle, c Color) {
	for i := range tri.P {
		a := tri.P[i]
		b := tri.P[(i+1)%3]
		fb.DrawLine(
			int(a.X), fb.Height-int(a.Y)-1,
			int(b.X), fb.Height-int(b.Y)-1,
			c,
		)
	}
}
