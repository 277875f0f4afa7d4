package prose

// pennToUniversal maps Penn Treebank tags to the coarse universal
// part-of-speech tag set.
var pennToUniversal = map[string]string{
	"CC":    "CCONJ",
	"CD":    "NUM",
	"DT":    "DET",
	"EX":    "PRON",
	"FW":    "X",
	"IN":    "ADP",
	"JJ":    "ADJ",
	"JJR":   "ADJ",
	"JJS":   "ADJ",
	"LS":    "X",
	"MD":    "AUX",
	"NN":    "NOUN",
	"NNS":   "NOUN",
	"NNP":   "PROPN",
	"NNPS":  "PROPN",
	"PDT":   "DET",
	"POS":   "PART",
	"PRP":   "PRON",
	"PRP$":  "PRON",
	"RB":    "ADV",
	"RBR":   "ADV",
	"RBS":   "ADV",
	"RP":    "ADP",
	"SYM":   "SYM",
	"TO":    "PART",
	"UH":    "INTJ",
	"VB":    "VERB",
	"VBD":   "VERB",
	"VBG":   "VERB",
	"VBN":   "VERB",
	"VBP":   "VERB",
	"VBZ":   "VERB",
	"WDT":   "DET",
	"WP":    "PRON",
	"WP$":   "PRON",
	"WRB":   "ADV",
	".":     "PUNCT",
	",":     "PUNCT",
	":":     "PUNCT",
	"(":     "PUNCT",
	")":     "PUNCT",
	"``":    "PUNCT",
	"''":    "PUNCT",
	"\"":    "PUNCT",
	"#":     "SYM",
	"$":     "SYM",
	"-LRB-": "PUNCT",
	"-RRB-": "PUNCT",
	"NFP":   "PUNCT",
	"HYPH":  "PUNCT",
	"AFX":   "ADJ",
	"ADD":   "X",
	"GW":    "X",
	"XX":    "X",
}

// coarseTag returns the universal tag for a Penn Treebank tag, X when unknown.
func coarseTag(penn string) string {
	if tag, ok := pennToUniversal[penn]; ok {
		return tag
	}
	return "X"
}
