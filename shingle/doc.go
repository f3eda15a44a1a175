// Package shingle splits texts into overlapping word windows ("shingles").
//
// A shingle of length k is a run of k consecutive whitespace-separated words
// joined by a single space. Texts with fewer than k words produce exactly one
// shingle (the whole normalized text); empty texts produce none.
//
// # Usage
//
//	for s := range shingle.Extract("the cat sat on the mat", 2) {
//	    fmt.Println(s) // "the cat", "cat sat", "sat on", ...
//	}
//
// The sequence returned by Extract is lazy and restartable: ranging over it a
// second time yields the same shingles again.
package shingle
