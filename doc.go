// Package huffman implements a Huffman file compressor.
//
// Compress counts the bytes of a file, builds a Huffman tree from those
// counts, and writes "<path>.huf": the serialized frequency table followed by
// the bit-packed codes of every byte and of the PseudoEOF terminator.
// Decompress reverses this, turning "report.txt.huf" into "report_unc.txt".
//
// References:
//
//     <https://en.wikipedia.org/wiki/Huffman_coding>
//
package huffman
