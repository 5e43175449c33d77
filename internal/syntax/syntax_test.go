package syntax_test

import (
	"testing"

	"go.followtheprocess.codes/lox/internal/syntax"
	"go.followtheprocess.codes/test"
)

func TestPositionString(t *testing.T) {
	tests := []struct {
		name string          // Name of the test case
		want string          // Expected string representation
		pos  syntax.Position // Position under test
	}{
		{
			name: "single char",
			pos:  syntax.Position{Name: "test.lox", Line: 3, StartCol: 7, EndCol: 7},
			want: "test.lox:3:7",
		},
		{
			name: "range",
			pos:  syntax.Position{Name: "test.lox", Line: 3, StartCol: 7, EndCol: 12},
			want: "test.lox:3:7-12",
		},
		{
			name: "missing name",
			pos:  syntax.Position{Line: 3, StartCol: 7, EndCol: 12},
			want: `BadPosition: {Name: "", Line: 3, StartCol: 7, EndCol: 12}`,
		},
		{
			name: "end before start",
			pos:  syntax.Position{Name: "test.lox", Line: 3, StartCol: 7, EndCol: 2},
			want: `BadPosition: {Name: "test.lox", Line: 3, StartCol: 7, EndCol: 2}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			test.Equal(t, tt.pos.String(), tt.want)
		})
	}
}

func TestPositionOf(t *testing.T) {
	src := "var x = 1;\nprint x;\n"

	tests := []struct {
		name  string          // Name of the test case
		want  syntax.Position // Expected position
		start int             // Start byte offset
		end   int             // End byte offset
	}{
		{
			name:  "start of file",
			start: 0,
			end:   3,
			want:  syntax.Position{Name: "test.lox", Offset: 0, Line: 1, StartCol: 1, EndCol: 4},
		},
		{
			name:  "mid first line",
			start: 4,
			end:   5,
			want:  syntax.Position{Name: "test.lox", Offset: 4, Line: 1, StartCol: 5, EndCol: 6},
		},
		{
			name:  "second line",
			start: 11,
			end:   16,
			want:  syntax.Position{Name: "test.lox", Offset: 11, Line: 2, StartCol: 1, EndCol: 6},
		},
		{
			name:  "end of second line",
			start: 18,
			end:   19,
			want:  syntax.Position{Name: "test.lox", Offset: 18, Line: 2, StartCol: 8, EndCol: 9},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := syntax.PositionOf("test.lox", []byte(src), tt.start, tt.end)

			test.Equal(t, got, tt.want)
		})
	}
}

func TestComparePosition(t *testing.T) {
	a := syntax.Position{Name: "a.lox", Offset: 4, Line: 1, StartCol: 5, EndCol: 6}
	b := syntax.Position{Name: "a.lox", Offset: 9, Line: 2, StartCol: 1, EndCol: 2}
	c := syntax.Position{Name: "c.lox", Offset: 0, Line: 1, StartCol: 1, EndCol: 1}

	test.Equal(t, syntax.ComparePosition(a, a), 0)
	test.Equal(t, syntax.ComparePosition(a, b), -1)
	test.Equal(t, syntax.ComparePosition(b, a), 1)
	test.Equal(t, syntax.ComparePosition(a, c), -1, test.Context("different files compare by name"))
}

func TestDiagnosticCollector(t *testing.T) {
	collector := &syntax.DiagnosticCollector{}

	test.False(t, collector.HadErrors(), test.Context("a fresh collector should have no errors"))

	handler := collector.Handler()

	first := syntax.Position{Name: "test.lox", Line: 1, StartCol: 1, EndCol: 1}
	second := syntax.Position{Name: "test.lox", Line: 2, StartCol: 4, EndCol: 9}

	handler(first, "something went wrong")
	handler(second, "something else went wrong")

	test.True(t, collector.HadErrors())

	diagnostics := collector.Diagnostics()
	test.Equal(t, len(diagnostics), 2)
	test.Equal(t, diagnostics[0].Msg, "something went wrong")
	test.Equal(t, diagnostics[0].Position, first)
	test.Equal(t, diagnostics[1].Msg, "something else went wrong")
	test.Equal(t, diagnostics[1].Position, second)

	test.Equal(t, diagnostics[1].String(), "test.lox:2:4-9: something else went wrong\n")
}
