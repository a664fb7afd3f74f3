package schedule

import (
	"testing"
)

func TestClassifyLineKinds(t *testing.T) {
	classifier := NewClassifier(DefaultRules())

	tests := []struct {
		text string
		kind Kind
	}{
		{"", KindNoise},
		{"Schedule", KindNoise},
		{"Sales Associate", KindNoise},
		{"Total hours: 32", KindNoise},
		{"Mon 14", KindDayHeader},
		{"Sun 1", KindDayHeader},
		{"Tue 15 8:00 AM - 4:00 PM [8:00]", KindDayHeader},
		{"Wed 16 10:00 AM - 7:00 PM [8:00] *", KindDayHeader},
		{"Fri 7:00 AM - 3:30 PM [8:00]", KindDayHeader},
		{"10:00 AM - 7:00 PM [8:00]", KindShiftSpan},
		{"10:00AM - 7:00PM", KindShiftSpan},
		{"15 Store #204", KindDateTitle},
		{"Mon14", KindUnrecognized},
		{"random garbage", KindUnrecognized},
		{"Mon 14 extra words", KindUnrecognized},
	}

	for _, tt := range tests {
		token := classifier.Run(RawLine{Number: 1, Text: tt.text})
		if token.Kind != tt.kind {
			t.Errorf("Classify(%q): expected kind %s, got %s", tt.text, tt.kind, token.Kind)
		}
	}
}

func TestClassifyBareDayHeader(t *testing.T) {
	classifier := NewClassifier(DefaultRules())

	token := classifier.Run(RawLine{Number: 1, Text: "Mon 14"})
	if token.Kind != KindDayHeader {
		t.Fatalf("Expected day header, got %s", token.Kind)
	}
	if token.Weekday != "Mon" {
		t.Errorf("Expected weekday 'Mon', got '%s'", token.Weekday)
	}
	if token.DayOfMonth != 14 {
		t.Errorf("Expected day 14, got %d", token.DayOfMonth)
	}
	if token.Span != nil {
		t.Error("Expected no span on a bare day header")
	}
}

func TestClassifyHeaderWithSpan(t *testing.T) {
	classifier := NewClassifier(DefaultRules())

	token := classifier.Run(RawLine{Number: 1, Text: "Tue 15 8:00 AM - 4:30 PM [8:00] *"})
	if token.Kind != KindDayHeader {
		t.Fatalf("Expected day header, got %s", token.Kind)
	}
	if token.Weekday != "Tue" || token.DayOfMonth != 15 {
		t.Errorf("Expected Tue 15, got %s %d", token.Weekday, token.DayOfMonth)
	}
	if token.Span == nil {
		t.Fatal("Expected embedded span")
	}
	if token.Span.Start != (Clock{Hour: 8, Minute: 0}) {
		t.Errorf("Expected start 8:00, got %+v", token.Span.Start)
	}
	if token.Span.End != (Clock{Hour: 16, Minute: 30}) {
		t.Errorf("Expected end 16:30, got %+v", token.Span.End)
	}
	if token.Span.Duration != "8:00" {
		t.Errorf("Expected duration annotation '8:00', got '%s'", token.Span.Duration)
	}
}

func TestClassifyHeaderSpanWithoutDayNumber(t *testing.T) {
	classifier := NewClassifier(DefaultRules())

	token := classifier.Run(RawLine{Number: 1, Text: "Fri 7:00 AM - 3:30 PM [8:00]"})
	if token.Kind != KindDayHeader {
		t.Fatalf("Expected day header, got %s", token.Kind)
	}
	if token.DayOfMonth != 0 {
		t.Errorf("Expected no day number, got %d", token.DayOfMonth)
	}
	if token.Span == nil {
		t.Fatal("Expected embedded span")
	}
}

func TestClassifyStandaloneSpan(t *testing.T) {
	classifier := NewClassifier(DefaultRules())

	token := classifier.Run(RawLine{Number: 1, Text: "10:00 AM - 7:00 PM [8:00]"})
	if token.Kind != KindShiftSpan {
		t.Fatalf("Expected shift span, got %s", token.Kind)
	}
	if token.Span.Start != (Clock{Hour: 10, Minute: 0}) {
		t.Errorf("Expected start 10:00, got %+v", token.Span.Start)
	}
	if token.Span.End != (Clock{Hour: 19, Minute: 0}) {
		t.Errorf("Expected end 19:00, got %+v", token.Span.End)
	}

	// The bracketed duration is optional.
	token = classifier.Run(RawLine{Number: 2, Text: "10:00 AM - 7:00 PM"})
	if token.Kind != KindShiftSpan {
		t.Errorf("Expected shift span without duration annotation, got %s", token.Kind)
	}
	if token.Span.Duration != "" {
		t.Errorf("Expected empty duration, got '%s'", token.Span.Duration)
	}
}

func TestClassifyDurationIsAdvisoryOnly(t *testing.T) {
	classifier := NewClassifier(DefaultRules())

	// The annotation contradicts the actual 9h span; the line must
	// still classify and carry the annotation untouched.
	token := classifier.Run(RawLine{Number: 1, Text: "10:00 AM - 7:00 PM [2:00]"})
	if token.Kind != KindShiftSpan {
		t.Fatalf("Expected shift span, got %s", token.Kind)
	}
	if token.Span.Duration != "2:00" {
		t.Errorf("Expected duration annotation '2:00', got '%s'", token.Span.Duration)
	}
}

func TestClassifyDateTitle(t *testing.T) {
	classifier := NewClassifier(DefaultRules())

	token := classifier.Run(RawLine{Number: 1, Text: "15 Store #204"})
	if token.Kind != KindDateTitle {
		t.Fatalf("Expected date title, got %s", token.Kind)
	}
	if token.DayOfMonth != 15 {
		t.Errorf("Expected day 15, got %d", token.DayOfMonth)
	}
	if token.Title != "Store #204" {
		t.Errorf("Expected title 'Store #204', got '%s'", token.Title)
	}
}

func TestClassifyNoiseBeatsEverything(t *testing.T) {
	classifier := NewClassifier(DefaultRules())

	// Denylisted terms win even when the line would otherwise match a
	// structural rule.
	token := classifier.Run(RawLine{Number: 1, Text: "15 Overnight Associate"})
	if token.Kind != KindNoise {
		t.Errorf("Expected noise for denylisted line, got %s", token.Kind)
	}
}
