// Package textutil prepares subtitle text for character counting.
//
// Strip removes inline override blocks ({...}) and HTML-style tags, drops
// line breaks (hard "\N", soft "\n", and real CR/LF), turns "\h" into a
// space, and normalizes the result to NFC so a precomposed and a decomposed
// accent count as one character. CharCount then counts code points.
package textutil
