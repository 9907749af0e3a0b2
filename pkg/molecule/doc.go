// Package molecule holds the diagram source a picture is drawn from: atoms,
// bonds, optional 2D coordinates and an optional pre-rendered base diagram.
//
// # Overview
//
// xenopict does not interpret chemistry. A [Molecule] is a graph of
// labelled atoms joined by bonds, plus whatever drawing information the
// caller already has. Missing coordinates are generated by the layout
// package; a missing base diagram is produced by the depict package.
//
// # JSON Format
//
//	{
//	  "name": "ethanol",
//	  "atoms": [
//	    {"symbol": "C", "x": 0, "y": 0},
//	    {"symbol": "C", "x": 1.5, "y": 0},
//	    {"symbol": "O", "x": 2.25, "y": 1.3}
//	  ],
//	  "bonds": [
//	    {"begin": 0, "end": 1},
//	    {"begin": 1, "end": 2, "order": 1}
//	  ],
//	  "svg": "<svg ...>...</svg>"
//	}
//
// Coordinates are all-or-none: either every atom has both x and y, or no
// atom has either. Bond order defaults to 1 and may be 1, 2 or 3. When
// "svg" is present, bonds and labels must carry class="atom-<i> ..." tags
// so that filtering can identify their atoms.
//
// # Import and Export
//
// Use [ImportJSON] to read a molecule from a file path, or [ReadJSON] to
// read from any io.Reader. Both validate the result with
// [Molecule.Validate] and return coded errors from pkg/errors:
//
//	mol, err := molecule.ImportJSON("ethanol.json")
//	if err != nil {
//	    return err
//	}
//
// [WriteJSON] and [ExportJSON] produce the same format, so generated
// coordinates can be saved and reused.
package molecule
