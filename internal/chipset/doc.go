// Package chipset decodes the custom chip and CIA register windows into calls
// on the chips. The pages here are created by the page fault handler of the
// machine.
package chipset
