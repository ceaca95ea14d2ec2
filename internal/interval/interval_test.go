package interval

import "testing"

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		begin, end  int
		wantErr     bool
	}{
		{name: "valid", begin: 10, end: 20, wantErr: false},
		{name: "empty rejected", begin: 10, end: 10, wantErr: true},
		{name: "inverted rejected", begin: 20, end: 10, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.begin, tt.end)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New(%d,%d) error = %v, wantErr %v", tt.begin, tt.end, err, tt.wantErr)
			}
		})
	}
}

func TestRelate(t *testing.T) {
	tests := []struct {
		name   string
		a, b   Interval[int]
		want   Relation
	}{
		{name: "disjoint", a: Interval[int]{10, 20}, b: Interval[int]{30, 40}, want: Disjoint},
		{name: "touching right", a: Interval[int]{10, 20}, b: Interval[int]{20, 30}, want: Touches},
		{name: "touching left", a: Interval[int]{20, 30}, b: Interval[int]{10, 20}, want: Touches},
		{name: "overlapping", a: Interval[int]{10, 25}, b: Interval[int]{20, 30}, want: Overlaps},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Relate(tt.a, tt.b); got != tt.want {
				t.Fatalf("Relate(%s,%s) = %s, want %s", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSubtypeOf(t *testing.T) {
	tests := []struct {
		name string
		a, b Interval[int]
		want Subtype
	}{
		{name: "left", a: Interval[int]{10, 30}, b: Interval[int]{5, 20}, want: Left},
		{name: "right", a: Interval[int]{10, 30}, b: Interval[int]{20, 40}, want: Right},
		{name: "inside", a: Interval[int]{10, 30}, b: Interval[int]{5, 40}, want: Inside},
		{name: "contained", a: Interval[int]{10, 30}, b: Interval[int]{15, 25}, want: Contained},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SubtypeOf(tt.a, tt.b)
			if err != nil {
				t.Fatalf("SubtypeOf(%s,%s) returned error: %v", tt.a, tt.b, err)
			}
			if got != tt.want {
				t.Fatalf("SubtypeOf(%s,%s) = %s, want %s", tt.a, tt.b, got, tt.want)
			}
		})
	}

	t.Run("not overlapping is an error", func(t *testing.T) {
		_, err := SubtypeOf(Interval[int]{10, 20}, Interval[int]{30, 40})
		if err == nil {
			t.Fatal("expected error for non-overlapping intervals")
		}
	})
}

func TestCombine(t *testing.T) {
	a := Interval[int]{10, 20}
	b := Interval[int]{20, 30}

	got, err := Combine(a, b)
	if err != nil {
		t.Fatalf("Combine returned error: %v", err)
	}
	if got.Begin != 10 || got.End != 30 {
		t.Fatalf("Combine(%s,%s) = %s, want [10,30)", a, b, got)
	}

	t.Run("not adjacent", func(t *testing.T) {
		if _, err := Combine(Interval[int]{10, 20}, Interval[int]{30, 40}); err == nil {
			t.Fatal("expected error for disjoint intervals")
		}
	})

	t.Run("overlapping", func(t *testing.T) {
		if _, err := Combine(Interval[int]{10, 25}, Interval[int]{20, 30}); err == nil {
			t.Fatal("expected error for overlapping intervals")
		}
	})
}

func TestContains(t *testing.T) {
	iv := Interval[int]{10, 20}
	if !iv.Contains(10) {
		t.Error("expected 10 to be contained (half-open begin)")
	}
	if iv.Contains(20) {
		t.Error("expected 20 to be excluded (half-open end)")
	}
	if !iv.Contains(19) {
		t.Error("expected 19 to be contained")
	}
}
