// Package math3 provides small fixed-size 3D math types for the
// transform stage: a float32 3-component vector and a 4x4 matrix with
// the constructors the quad pipeline needs (identity, axis-angle
// rotation, translation, orthographic and perspective projection).
//
// Matrices use column-vector convention: TransformPoint computes M*p,
// and A.Mul(B) applies B first, then A. All angles are radians unless
// a function name says otherwise.
package math3
