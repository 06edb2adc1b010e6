package slug

import "testing"

func TestMake(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Go", "go"},
		{"Node.js", "nodejs"},
		{"next.js", "nextjs"},
		{"Crème Brûlée & Go", "creme-brulee-go"},
		{"  AWS   EC2  ", "aws-ec2"},
		{"already-slugged", "already-slugged"},
		{"snake_case", "snake_case"},
		{"C++", "c"},
		{"C#", "c"},
		{"Hello, World", "hello-world"},
		{"Über 2024!", "uber-2024"},
		{"", ""},
		{"!!!", ""},
	}
	for _, tt := range tests {
		got := Make(tt.input)
		if got != tt.expected {
			t.Errorf("Make(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestMakeIsIdempotent(t *testing.T) {
	for _, in := range []string{"Crème Brûlée", "Docker Compose", "mern-stack", "Node.js", "Hello, World"} {
		once := Make(in)
		if twice := Make(once); twice != once {
			t.Errorf("Make(Make(%q)) = %q, want %q", in, twice, once)
		}
	}
}
