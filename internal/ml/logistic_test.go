package ml

import "testing"

var (
	strongTexts = []string{
		"led migration to kubernetes cut deploy time by 80 percent",
		"built streaming pipeline handling millions of events daily",
		"shipped payment platform serving enterprise customers",
		"designed distributed cache reducing latency significantly",
		"mentored engineers while delivering search infrastructure",
	}
	weakTexts = []string{
		"responsible for various duties",
		"worked on stuff at company",
		"helped with tasks as assigned",
		"did things for the team",
	}
)

func trainTestBundle() *Bundle {
	texts := append(append([]string{}, strongTexts...), weakTexts...)
	labels := make([]int, 0, len(texts))
	for range strongTexts {
		labels = append(labels, 1)
	}
	for range weakTexts {
		labels = append(labels, 0)
	}
	return Train(texts, labels)
}

func TestClassifierSeparatesClasses(t *testing.T) {
	bundle := trainTestBundle()

	strong := bundle.Score("led kubernetes migration and built streaming pipeline")
	weak := bundle.Score("responsible for various duties as assigned")

	if strong < 0 || strong > 1 || weak < 0 || weak > 1 {
		t.Fatalf("scores outside [0,1]: strong=%v weak=%v", strong, weak)
	}
	if strong <= 0.5 {
		t.Fatalf("expected strong resume to score above 0.5, got %v", strong)
	}
	if weak >= 0.5 {
		t.Fatalf("expected weak resume to score below 0.5, got %v", weak)
	}
}

func TestScoreIsDeterministic(t *testing.T) {
	bundle := trainTestBundle()

	text := "built streaming pipeline on kubernetes"
	first := bundle.Score(text)
	second := bundle.Score(text)

	if first != second {
		t.Fatalf("same text scored differently against one bundle: %v vs %v", first, second)
	}
}

func TestBundleSurvivesSerialization(t *testing.T) {
	bundle := trainTestBundle()
	text := "shipped payment platform and mentored engineers"
	before := bundle.Score(text)

	data, err := bundle.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	decoded, err := Decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if decoded.LabelCount != bundle.LabelCount {
		t.Fatalf("label count lost in roundtrip: %d vs %d", decoded.LabelCount, bundle.LabelCount)
	}

	after := decoded.Score(text)
	if before != after {
		t.Fatalf("score changed across serialization: %v vs %v", before, after)
	}
}

func TestDecodeRejectsPartialBundle(t *testing.T) {
	if _, err := Decode([]byte(`{"label_count": 10}`)); err == nil {
		t.Fatalf("expected error for bundle missing vectorizer and classifier")
	}
}

func TestBalancedWeightsHandleSkewedClasses(t *testing.T) {
	// 8 passes against 2 mashes; without balancing the minority class
	// would be drowned out and everything would score near zero.
	texts := append(append([]string{}, weakTexts...), weakTexts...)
	texts = append(texts, strongTexts[0], strongTexts[1])
	labels := make([]int, len(texts))
	labels[len(labels)-1] = 1
	labels[len(labels)-2] = 1

	bundle := Train(texts, labels)

	score := bundle.Score(strongTexts[0])
	if score <= 0.5 {
		t.Fatalf("expected minority-class text to still score above 0.5, got %v", score)
	}
}
