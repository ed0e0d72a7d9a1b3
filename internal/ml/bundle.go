package ml

import (
	"encoding/json"
	"fmt"
	"time"
)

// Bundle pairs a fitted vectorizer with the classifier trained on its
// output. The two are only ever created, serialized and replaced together.
type Bundle struct {
	Vectorizer *Vectorizer `json:"vectorizer"`
	Classifier *Classifier `json:"classifier"`
	LabelCount int         `json:"label_count"`
	TrainedAt  time.Time   `json:"trained_at"`
}

// Train fits a fresh vectorizer and classifier on the full batch. Callers
// must ensure both label classes are present; with a single class logistic
// regression has nothing to separate.
func Train(texts []string, labels []int) *Bundle {
	vectorizer := FitVectorizer(texts)

	samples := make([]map[int]float64, len(texts))
	for i, text := range texts {
		samples[i] = vectorizer.Transform(text)
	}

	classifier := TrainClassifier(samples, labels, vectorizer.Dim())

	return &Bundle{
		Vectorizer: vectorizer,
		Classifier: classifier,
		LabelCount: len(texts),
		TrainedAt:  time.Now(),
	}
}

// Score returns P(mash) for one resume text. Out-of-vocabulary terms are
// dropped by the transform, so any text scores without error.
func (b *Bundle) Score(text string) float64 {
	return b.Classifier.PredictProba(b.Vectorizer.Transform(text))
}

// Encode serializes the bundle for storage.
func (b *Bundle) Encode() ([]byte, error) {
	data, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("encode bundle: %w", err)
	}
	return data, nil
}

// Decode deserializes a stored bundle.
func Decode(data []byte) (*Bundle, error) {
	var b Bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("decode bundle: %w", err)
	}
	if b.Vectorizer == nil || b.Classifier == nil {
		return nil, fmt.Errorf("decode bundle: missing vectorizer or classifier")
	}
	return &b, nil
}
