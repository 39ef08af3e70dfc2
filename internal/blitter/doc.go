// Package blitter implements the area mode of the blitter.
//
// The blitter combines up to three source channels (A, B and C) through a
// logic function and writes the result to the destination channel (D). A job
// is a rectangle of words. Each Tick processes one word:
//
//   - the enabled sources are fetched, the others use their data register
//   - A is masked with the first/last word masks at the edges of a row
//   - A and B are shifted, the bits shifted out carry into the next word
//   - the minterm combines A, B and C into D
//   - D is optionally filled, then written if the D channel is enabled
//
// At the end of each row the modulo registers are added to the pointers. When
// the job completes the pointers are written back to their registers and the
// BLIT interrupt is requested.
//
// Line mode is recognised but not implemented: a line mode job never
// advances.
package blitter
