// Package comicbubble overlays comic speech bubbles onto raster images.
//
// A bubble is a rounded rectangle with a triangular tail pointing at an anchor
// given in fractional image coordinates. Its text is wrapped and sized to fit
// the bubble interior. Renderer ties the pieces together:
//
//	r := comicbubble.New()
//	out, err := r.Overlay(img,
//		comicbubble.BubbleSpec{Text: "Mavọ?", Anchor: comicbubble.Anchor{X: 0.28, Y: 0.45}, Side: comicbubble.SideLeft},
//		comicbubble.BubbleSpec{Text: "Merọ", Anchor: comicbubble.Anchor{X: 0.72, Y: 0.40}, Side: comicbubble.SideRight},
//	)
//
// BuildGeometry, Fit and Composite are exported for callers that want to drive
// the stages themselves.
package comicbubble
