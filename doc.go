// Package huffcodec implements a byte-oriented Huffman compressor and
// decompressor.
//
// A compressed stream is self-describing: it starts with the code tree in
// preorder (bit 1 for an internal node, bit 0 followed by the 8-bit symbol
// for a leaf), followed by the original byte count as a 64-bit big-endian
// field, followed by the payload codes, zero-padded to a byte boundary.
//
// References:
//
//     <https://en.wikipedia.org/wiki/Huffman_coding>
//
package huffcodec
