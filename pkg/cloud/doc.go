// Package cloud computes the spherical layout of a weighted word cloud.
//
// # Overview
//
// [Layout] maps an ordered sequence of [WordItem] values to an ordered
// sequence of [VisualWord] values. Each word gets:
//
//   - a position on a sphere of radius [Options.Radius], from a Fibonacci
//     (golden-angle spiral) distribution keyed by index,
//   - a font size that grows linearly with its normalized weight,
//   - an HSL color whose hue falls from violet towards green as weight grows.
//
// The function is pure and total: empty input yields an empty result, an
// all-zero weight set renders every word at the minimum size and coolest hue,
// and negative weights are clamped to zero.
//
// # Determinism
//
// Positions depend only on the index i and the count N. Size and color depend
// only on weight / maxWeight. Calling [Layout] twice with the same input yields
// bit-identical output.
//
// # Snapshots
//
// A computed layout can be serialized with [MarshalSnapshot] and read back with
// [UnmarshalSnapshot], which is the format written by the `layout` command and
// consumed by `visualize`.
package cloud
