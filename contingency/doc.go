// Package contingency scores a cluster assignment against ground-truth
// categories.
//
// Score walks the categories in first-seen order and greedily gives each one
// the not yet used cluster holding most of its items. The result is a
// category x category agreement matrix: row r, column c is the fraction of
// category r's items that landed in the cluster assigned to category c.
//
// The assignment is greedy and order dependent. When categories outnumber
// clusters, the late categories choose among clusters that are already taken,
// and their rows can show little or no agreement.
package contingency
