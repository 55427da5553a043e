// Package render flattens scene graphs into depth-sorted 2D primitives and
// draws them on a braille terminal canvas.
//
// Each terminal cell holds a 2x4 braille dot matrix, so a w by h cell
// surface offers a (2w) by (4h) dot grid with roughly square dots.
//
//	t := render.NewTerminal(60, 24)
//	sess := session.New(session.Config{Surface: t, ...})
//	fmt.Print(t.Frame())
package render
