// Package prose implements nlp.Pipeline with the prose NLP library.
//
// prose supplies tokens, Penn Treebank tags, named entities and sentence
// boundaries. Tags are mapped to the coarse universal tag set, stopword
// flags come from an embedded English list, and the document polarity is
// the VADER compound score in [-1, 1].
package prose
