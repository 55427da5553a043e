// Package modeldata holds the display data behind the 3D views: per-symbol
// colours and radii, the representative molecule for each element and the
// crystal lattice each element is drawn in.
//
// Every table carries an explicit default. Default descriptors use the
// placeholder symbol X, which the Resolver replaces with the symbol of the
// element being shown:
//
//	r, _ := modeldata.NewResolver(tables, 64)
//	mol, _ := r.ResolveMolecule(118, "Og") // Diatomic Molecule, atoms Og-Og
//
// Descriptors returned by the Resolver are deep copies and may be mutated.
package modeldata
