// Package geom provides the small amount of page geometry the tooltip engine
// needs: points, sizes and rects in page coordinates, alignment specs of the
// form "tl-bl?" and viewport constraint.
//
// # Alignment Specs
//
// An alignment spec names a corner of the floating box and a corner of the
// reference box, joined by a dash. A trailing "?" keeps the result inside the
// viewport:
//
//	a, _ := geom.ParseAlign("tl-bl?")
//	xy := geom.AlignToXY(targetRect, panelSize, a, geom.Point{}, viewport)
//
// Corners are tl, t, tr, l, c, r, bl, b and br.
package geom
