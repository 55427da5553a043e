// Package chem holds the element reference data used by every other part of
// periodix.
//
// The catalog is decoded once from an embedded YAML table and is read-only
// afterwards:
//
//   - [Element]: one record per element, optional properties as pointers
//   - [Catalog]: lookup by number, symbol or name, plus [Catalog.Search]
//   - [Position]: placement on the 18-column periodic grid
//   - [Property]: numeric properties with gradient and bar helpers
//   - [Diagram]: the hybrid orbital diagram drawn for an element
//
// # Example
//
//	cat, err := chem.Load()
//	if err != nil {
//		return err
//	}
//	carbon, _ := cat.ByNumber(6)
//	fmt.Println(carbon.Symbol, carbon.Shells)
package chem
