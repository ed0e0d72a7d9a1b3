package ml

import "math"

const (
	trainEpochs  = 400
	learningRate = 0.5
	l2Penalty    = 1e-4
)

// Classifier is a binary logistic regression over sparse vectors. The
// positive class is an accepted ("mash") resume.
type Classifier struct {
	Weights []float64 `json:"weights"`
	Bias    float64   `json:"bias"`
}

// TrainClassifier fits weights by full-batch gradient descent. Samples are
// weighted inversely to their class frequency, so a lopsided pass/mash split
// does not drown out the rarer class. Weights start at zero and the
// gradient is accumulated over the whole batch each epoch, so training is
// deterministic for a given sample set.
func TrainClassifier(samples []map[int]float64, labels []int, dim int) *Classifier {
	n := len(samples)

	var positives int
	for _, y := range labels {
		if y == 1 {
			positives++
		}
	}
	negatives := n - positives

	// balanced class weights: n / (2 * count(class))
	posWeight := float64(n) / (2 * float64(positives))
	negWeight := float64(n) / (2 * float64(negatives))

	c := &Classifier{
		Weights: make([]float64, dim),
	}

	grad := make([]float64, dim)
	for epoch := 0; epoch < trainEpochs; epoch++ {
		for i := range grad {
			grad[i] = 0
		}
		var biasGrad float64

		for i, x := range samples {
			p := c.PredictProba(x)
			y := float64(labels[i])

			w := negWeight
			if labels[i] == 1 {
				w = posWeight
			}

			err := w * (p - y)
			for idx, val := range x {
				grad[idx] += err * val
			}
			biasGrad += err
		}

		scale := learningRate / float64(n)
		for i := range c.Weights {
			c.Weights[i] -= scale * (grad[i] + l2Penalty*c.Weights[i])
		}
		c.Bias -= scale * biasGrad
	}

	return c
}

// PredictProba returns P(label == 1) for one sparse vector.
func (c *Classifier) PredictProba(x map[int]float64) float64 {
	z := c.Bias
	for idx, val := range x {
		if idx < len(c.Weights) {
			z += c.Weights[idx] * val
		}
	}
	return sigmoid(z)
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}
