package errors

import (
	"strings"
	"testing"

	"github.com/cwbudde/ecmalite/internal/token"
)

func TestStackFrame_String(t *testing.T) {
	tests := []struct {
		name     string
		frame    StackFrame
		expected string
	}{
		{
			name: "Frame with position",
			frame: StackFrame{
				FunctionName: "MyFunction",
				FileName:     "test.js",
				Position:     &token.Position{Line: 9, Column: 4},
			},
			expected: "MyFunction [line: 10, column: 5]",
		},
		{
			name: "Frame without position",
			frame: StackFrame{
				FunctionName: "MyFunction",
				FileName:     "test.js",
				Position:     nil,
			},
			expected: "MyFunction",
		},
		{
			name: "Frame with method name",
			frame: StackFrame{
				FunctionName: "MyClass.myMethod",
				FileName:     "test.js",
				Position:     &token.Position{Line: 41, Column: 14},
			},
			expected: "MyClass.myMethod [line: 42, column: 15]",
		},
		{
			name: "Frame with lambda",
			frame: StackFrame{
				FunctionName: "<anonymous>",
				FileName:     "",
				Position:     &token.Position{Line: 6, Column: 0},
			},
			expected: "<anonymous> [line: 7, column: 1]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.frame.String()
			if result != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestStackTrace_String(t *testing.T) {
	tests := []struct {
		name     string
		expected string
		trace    StackTrace
	}{
		{
			name:     "Empty stack trace",
			trace:    StackTrace{},
			expected: "",
		},
		{
			name: "Single frame",
			trace: StackTrace{
				{FunctionName: "main", Position: &token.Position{Line: 0, Column: 0}},
			},
			expected: "main [line: 1, column: 1]",
		},
		{
			name: "Multiple frames",
			trace: StackTrace{
				{FunctionName: "main", Position: &token.Position{Line: 19, Column: 0}},
				{FunctionName: "foo", Position: &token.Position{Line: 14, Column: 4}},
				{FunctionName: "bar", Position: &token.Position{Line: 9, Column: 2}},
			},
			expected: "bar [line: 10, column: 3]\nfoo [line: 15, column: 5]\nmain [line: 20, column: 1]",
		},
		{
			name: "Frames with and without position",
			trace: StackTrace{
				{FunctionName: "main", Position: &token.Position{Line: 19, Column: 0}},
				{FunctionName: "foo", Position: nil},
			},
			expected: "foo\nmain [line: 20, column: 1]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.trace.String()
			if result != tt.expected {
				t.Errorf("Expected:\n%s\nGot:\n%s", tt.expected, result)
			}
		})
	}
}

func TestStackTrace_Reverse(t *testing.T) {
	original := StackTrace{
		{FunctionName: "First", Position: &token.Position{Line: 0, Column: 0}},
		{FunctionName: "Second", Position: &token.Position{Line: 1, Column: 0}},
		{FunctionName: "Third", Position: &token.Position{Line: 2, Column: 0}},
	}

	reversed := original.Reverse()

	if reversed[0].FunctionName != "Third" {
		t.Errorf("Expected first frame to be 'Third', got %q", reversed[0].FunctionName)
	}
	if reversed[1].FunctionName != "Second" {
		t.Errorf("Expected second frame to be 'Second', got %q", reversed[1].FunctionName)
	}
	if reversed[2].FunctionName != "First" {
		t.Errorf("Expected third frame to be 'First', got %q", reversed[2].FunctionName)
	}

	if original[0].FunctionName != "First" {
		t.Errorf("Original stack trace was modified")
	}
}

func TestStackTrace_Top(t *testing.T) {
	tests := []struct {
		expected *string
		name     string
		trace    StackTrace
	}{
		{
			name:     "Empty stack",
			trace:    StackTrace{},
			expected: nil,
		},
		{
			name: "Single frame",
			trace: StackTrace{
				{FunctionName: "main", Position: &token.Position{Line: 0, Column: 0}},
			},
			expected: stringPtr("main"),
		},
		{
			name: "Multiple frames",
			trace: StackTrace{
				{FunctionName: "main", Position: &token.Position{Line: 19, Column: 0}},
				{FunctionName: "foo", Position: &token.Position{Line: 14, Column: 4}},
				{FunctionName: "bar", Position: &token.Position{Line: 9, Column: 2}},
			},
			expected: stringPtr("bar"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			top := tt.trace.Top()
			if tt.expected == nil {
				if top != nil {
					t.Errorf("Expected nil, got %v", top)
				}
			} else {
				if top == nil {
					t.Errorf("Expected %q, got nil", *tt.expected)
				} else if top.FunctionName != *tt.expected {
					t.Errorf("Expected %q, got %q", *tt.expected, top.FunctionName)
				}
			}
		})
	}
}

func TestStackTrace_Bottom(t *testing.T) {
	tests := []struct {
		expected *string
		name     string
		trace    StackTrace
	}{
		{
			name:     "Empty stack",
			trace:    StackTrace{},
			expected: nil,
		},
		{
			name: "Single frame",
			trace: StackTrace{
				{FunctionName: "main", Position: &token.Position{Line: 0, Column: 0}},
			},
			expected: stringPtr("main"),
		},
		{
			name: "Multiple frames",
			trace: StackTrace{
				{FunctionName: "main", Position: &token.Position{Line: 19, Column: 0}},
				{FunctionName: "foo", Position: &token.Position{Line: 14, Column: 4}},
				{FunctionName: "bar", Position: &token.Position{Line: 9, Column: 2}},
			},
			expected: stringPtr("main"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bottom := tt.trace.Bottom()
			if tt.expected == nil {
				if bottom != nil {
					t.Errorf("Expected nil, got %v", bottom)
				}
			} else {
				if bottom == nil {
					t.Errorf("Expected %q, got nil", *tt.expected)
				} else if bottom.FunctionName != *tt.expected {
					t.Errorf("Expected %q, got %q", *tt.expected, bottom.FunctionName)
				}
			}
		})
	}
}

func TestStackTrace_Depth(t *testing.T) {
	tests := []struct {
		name     string
		trace    StackTrace
		expected int
	}{
		{
			name:     "Empty stack",
			trace:    StackTrace{},
			expected: 0,
		},
		{
			name: "Single frame",
			trace: StackTrace{
				{FunctionName: "main"},
			},
			expected: 1,
		},
		{
			name: "Multiple frames",
			trace: StackTrace{
				{FunctionName: "main"},
				{FunctionName: "foo"},
				{FunctionName: "bar"},
			},
			expected: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			depth := tt.trace.Depth()
			if depth != tt.expected {
				t.Errorf("Expected depth %d, got %d", tt.expected, depth)
			}
		})
	}
}

func TestNewStackFrame(t *testing.T) {
	pos := &token.Position{Line: 41, Column: 12}
	frame := NewStackFrame("testFunc", "test.js", pos)

	if frame.FunctionName != "testFunc" {
		t.Errorf("Expected FunctionName 'testFunc', got %q", frame.FunctionName)
	}
	if frame.FileName != "test.js" {
		t.Errorf("Expected FileName 'test.js', got %q", frame.FileName)
	}
	if frame.Position != pos {
		t.Errorf("Expected position %v, got %v", pos, frame.Position)
	}
}

func TestNewStackTrace(t *testing.T) {
	trace := NewStackTrace()

	if trace == nil {
		t.Error("NewStackTrace returned nil")
	}
	if len(trace) != 0 {
		t.Errorf("Expected empty stack trace, got length %d", len(trace))
	}
}

func TestStackTrace_RealWorldScenario(t *testing.T) {
	// Simulate a call stack: main -> processData -> validateInput.
	trace := StackTrace{
		{FunctionName: "main", FileName: "main.js", Position: &token.Position{Line: 49, Column: 0}},
		{FunctionName: "processData", FileName: "main.js", Position: &token.Position{Line: 29, Column: 4}},
		{FunctionName: "validateInput", FileName: "main.js", Position: &token.Position{Line: 9, Column: 2}},
	}

	expected := "validateInput [line: 10, column: 3]\nprocessData [line: 30, column: 5]\nmain [line: 50, column: 1]"
	result := trace.String()
	if result != expected {
		t.Errorf("Stack trace string doesn't match.\nExpected:\n%s\nGot:\n%s", expected, result)
	}

	if trace.Depth() != 3 {
		t.Errorf("Expected depth 3, got %d", trace.Depth())
	}

	top := trace.Top()
	if top == nil || top.FunctionName != "validateInput" {
		t.Errorf("Expected top to be validateInput, got %v", top)
	}

	bottom := trace.Bottom()
	if bottom == nil || bottom.FunctionName != "main" {
		t.Errorf("Expected bottom to be main, got %v", bottom)
	}
}

func TestStackTrace_StringFormat(t *testing.T) {
	trace := StackTrace{
		{FunctionName: "callsABomb", Position: &token.Position{Line: 7, Column: 3}},
		{FunctionName: "thisOneBombs", Position: &token.Position{Line: 2, Column: 19}},
	}

	result := trace.String()
	lines := strings.Split(result, "\n")

	if lines[0] != "thisOneBombs [line: 3, column: 20]" {
		t.Errorf("First line doesn't match expected format: %q", lines[0])
	}
	if lines[1] != "callsABomb [line: 8, column: 4]" {
		t.Errorf("Second line doesn't match expected format: %q", lines[1])
	}
}

// Helper function for tests
func stringPtr(s string) *string {
	return &s
}
