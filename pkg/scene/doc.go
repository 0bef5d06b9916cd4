// Package scene holds the per-frame state of an animated word cloud.
//
// A [Scene] owns one [Primitive] per laid-out word plus an [OrbitCamera]. The
// frame loop calls [Scene.Tick] once per frame with the time elapsed since the
// loop started, then [Scene.Frame] to project the primitives into a
// depth-sorted list of [Label] values that a sink can draw.
//
// The layout itself lives in package cloud and is never modified here: ticks
// only touch each primitive's spin and vertical drift, and the camera.
//
// # Replacing words
//
// [Scene.Load] swaps in a new layout. Primitives are keyed by index: surviving
// indices keep their spin but jump to their new position, surplus primitives
// are dropped and new ones start fresh. The camera is left untouched so the
// viewing angle carries over between analyses.
package scene
