package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	mdwerror "github.com/msto63/monkey/foundation/core/error"
	"github.com/msto63/monkey/internal/service"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	cfg := writeFile(t, "monkey.toml", "[history]\nenabled = false\n")
	var out, errOut bytes.Buffer
	rootCmd.SetArgs(append([]string{"--config", cfg}, args...))
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		tokensPositions, parseTree, parseRemote = false, false, ""
	})

	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func TestTokensCommand(t *testing.T) {
	out, _, err := execute(t, "let x = 5;", "tokens")
	if err != nil {
		t.Fatalf("tokens error = %v", err)
	}
	want := "Let\nIdent(\"x\")\nAssign\nInt(5)\nSemicolon\nEOF\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}

	out, _, err = execute(t, "", "tokens", "-p", writeFile(t, "a.mk", "a\n !"))
	if err != nil {
		t.Fatalf("tokens -p error = %v", err)
	}
	if want := "1:1\tIdent(\"a\")\n2:2\tBang\n2:3\tEOF\n"; out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestParseCommand(t *testing.T) {
	out, _, err := execute(t, "a + b * c; -a * b", "parse")
	if err != nil {
		t.Fatalf("parse error = %v", err)
	}
	if out != "(a + (b * c))((-a) * b)\n" {
		t.Errorf("output = %q", out)
	}

	out, _, err = execute(t, "return 1;", "parse", "--tree")
	if err != nil {
		t.Fatalf("parse --tree error = %v", err)
	}
	if !strings.HasPrefix(out, "Program (1 statements)") {
		t.Errorf("output = %q", out)
	}
}

func TestParseCommand_SyntaxErrors(t *testing.T) {
	out, errOut, err := execute(t, "let = 5; let y 10;", "parse")
	if !mdwerror.HasCode(err, mdwerror.CodeSyntax) {
		t.Fatalf("parse error = %v, want SYNTAX", err)
	}
	if out != "" {
		t.Errorf("stdout = %q, want empty", out)
	}
	if !strings.Contains(errOut, "1:5: expect token identifier, but received =") {
		t.Errorf("stderr = %q", errOut)
	}
}

func TestReadSource(t *testing.T) {
	src, err := readSource(nil, strings.NewReader("stdin"))
	if err != nil || src != "stdin" {
		t.Errorf("readSource(nil) = %q, %v", src, err)
	}
	src, err = readSource([]string{"-"}, strings.NewReader("dash"))
	if err != nil || src != "dash" {
		t.Errorf("readSource(-) = %q, %v", src, err)
	}
	src, err = readSource([]string{writeFile(t, "f.mk", "file")}, nil)
	if err != nil || src != "file" {
		t.Errorf("readSource(file) = %q, %v", src, err)
	}
	if _, err := readSource([]string{"/nonexistent/f.mk"}, nil); !mdwerror.HasCode(err, mdwerror.CodeNotFound) {
		t.Errorf("readSource(missing) error = %v, want NOT_FOUND", err)
	}
}

func TestPrintParseResult(t *testing.T) {
	var out, errOut bytes.Buffer
	ok := &service.ParseResult{OK: true, Canonical: "x", Tree: "Program (1 statements)\n"}

	if err := printParseResult(&out, &errOut, ok, true); err != nil {
		t.Fatalf("printParseResult() error = %v", err)
	}
	if out.String() != "Program (1 statements)\n" {
		t.Errorf("tree output = %q", out.String())
	}

	failed := &service.ParseResult{Diagnostics: []service.Diagnostic{{Line: 2, Column: 3, Message: "boom"}}}
	err := printParseResult(&out, &errOut, failed, false)
	if err == nil || err.Error() != "1 syntax errors" {
		t.Errorf("printParseResult() error = %v", err)
	}
	if errOut.String() != "2:3: boom\n" {
		t.Errorf("stderr = %q", errOut.String())
	}
}

func TestPreview(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"let x = 5;", 40, "let x = 5;"},
		{"a;\nb;", 40, "a; ..."},
		{"let value = 1234567890;", 10, "let val..."},
	}
	for _, tt := range tests {
		if got := preview(tt.in, tt.max); got != tt.want {
			t.Errorf("preview(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}
