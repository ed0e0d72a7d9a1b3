package ml

import (
	"math"
	"sort"
)

// MaxFeatures caps the vocabulary size to keep models small.
const MaxFeatures = 5000

// Vectorizer maps text into an L2-normalized TF-IDF space. A vectorizer is
// fit fresh on each training batch; its vocabulary is never updated
// incrementally, so it always matches the classifier trained alongside it.
type Vectorizer struct {
	Vocabulary map[string]int `json:"vocabulary"`
	IDF        []float64      `json:"idf"`
}

// FitVectorizer builds the vocabulary and IDF weights from the corpus. When
// more than MaxFeatures distinct terms exist, the most document-frequent
// terms win, with lexicographic order breaking ties so a given corpus always
// produces the same vocabulary.
func FitVectorizer(texts []string) *Vectorizer {
	docFreq := make(map[string]int)
	for _, text := range texts {
		seen := make(map[string]bool)
		for _, tok := range Tokenize(text) {
			if !seen[tok] {
				seen[tok] = true
				docFreq[tok]++
			}
		}
	}

	terms := make([]string, 0, len(docFreq))
	for term := range docFreq {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if docFreq[terms[i]] != docFreq[terms[j]] {
			return docFreq[terms[i]] > docFreq[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > MaxFeatures {
		terms = terms[:MaxFeatures]
	}

	// Index assignment is alphabetical over the selected terms.
	sort.Strings(terms)

	v := &Vectorizer{
		Vocabulary: make(map[string]int, len(terms)),
		IDF:        make([]float64, len(terms)),
	}

	n := float64(len(texts))
	for i, term := range terms {
		v.Vocabulary[term] = i
		// smoothed idf, as if one extra document held every term
		v.IDF[i] = math.Log((1+n)/(1+float64(docFreq[term]))) + 1
	}

	return v
}

// Transform maps one text to its sparse TF-IDF vector. Terms outside the
// vocabulary are dropped.
func (v *Vectorizer) Transform(text string) map[int]float64 {
	counts := make(map[int]float64)
	for _, tok := range Tokenize(text) {
		if idx, ok := v.Vocabulary[tok]; ok {
			counts[idx]++
		}
	}

	var sumSquares float64
	for idx, tf := range counts {
		w := tf * v.IDF[idx]
		counts[idx] = w
		sumSquares += w * w
	}

	if sumSquares > 0 {
		norm := math.Sqrt(sumSquares)
		for idx := range counts {
			counts[idx] /= norm
		}
	}

	return counts
}

// Dim returns the vector space dimensionality.
func (v *Vectorizer) Dim() int {
	return len(v.IDF)
}
