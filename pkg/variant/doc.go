// Package variant turns one rendered token into the family of perturbed
// images written to the dataset.
//
// Every (font, token) pair is trimmed first. The trimmed raster is saved as
// the "trim" variant and kept in memory; each enabled perturbation is then
// derived from it independently, never chained onto another variant:
//
//	trim                        always
//	rot_ccw, rot_cw             Flags.Rotate
//	skew_r, skew_l              Flags.Skew
//	blur                        Flags.Blur
//	ul                          Flags.Underline
//	skew_r_blur, skew_l_blur    Flags.Complex
//
// A token that renders blank has nothing to trim and produces no files.
package variant
