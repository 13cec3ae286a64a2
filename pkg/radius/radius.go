// Package radius derives the corner radii of nested shapes.
//
// A child shape sitting inside a padded container stays visually concentric
// with it only when its radius shrinks by the container's padding. The
// functions here encode that rule for the four layers the viewer renders.
package radius

import "math"

// Circular is the sentinel radius for fully rounded (pill or circle) shapes.
// Any radius at or above it is treated as circular and is never reduced by
// padding.
const Circular = 9999.0

// IsCircular reports whether r is the circular sentinel (or larger).
func IsCircular(r float64) bool {
	return r >= Circular
}

// InnerRadius returns the radius of a shape nested inside a container with
// the given radius and padding: max(0, radius-padding). A circular container
// yields a circular child.
func InnerRadius(radius, padding float64) float64 {
	if IsCircular(radius) {
		return Circular
	}
	return math.Max(0, radius-padding)
}

// InnerContainerRadius applies InnerRadius twice, once for the container's
// padding and once for the child's own padding. The clamp is applied at each
// step, so a radius that reached zero stays at zero.
func InnerContainerRadius(radius, padding, childPadding float64) float64 {
	return InnerRadius(InnerRadius(radius, padding), childPadding)
}

// OuterRadius returns the radius of a container wrapped around a shape with
// the given radius, separated by outerPadding. It only grows and is not
// clamped.
func OuterRadius(radius, outerPadding float64) float64 {
	if IsCircular(radius) {
		return Circular
	}
	return radius + outerPadding
}
