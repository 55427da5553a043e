// Package build turns an element into a disposable scene graph.
//
// Three models are available:
//
//   - Atom: a nucleus, three orthogonal rings per electron shell and one
//     orbiting sphere per electron. Animate moves the electrons.
//   - Molecule: the representative molecule resolved from modeldata, with
//     sphere atoms, symbol labels and cylinder bonds.
//   - Crystal: a unit cell of the element's lattice with its wireframe.
//
// Builders never share nodes between calls. The caller owns the returned
// tree and is expected to release it through scene.Resources.
package build
