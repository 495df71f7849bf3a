package cli

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestCompleteBuiltinFonts(t *testing.T) {
	tests := []struct {
		prefix string
		want   []string
	}{
		{"", []string{"gobold", "gomono", "goregular"}},
		{"gom", []string{"gomono"}},
		{"GoR", []string{"goregular"}},
		{"arial", nil},
	}
	for _, tt := range tests {
		got, directive := completeBuiltinFonts(nil, nil, tt.prefix)
		if strings.Join(got, ",") != strings.Join(tt.want, ",") {
			t.Errorf("completeBuiltinFonts(%q) = %v, want %v", tt.prefix, got, tt.want)
		}
		if directive != cobra.ShellCompDirectiveNoFileComp {
			t.Errorf("completeBuiltinFonts(%q) directive = %v", tt.prefix, directive)
		}
	}
}

func TestCompleteCorpusThenFonts(t *testing.T) {
	exts, d := completeCorpusThenFonts(nil, nil, "")
	if d != cobra.ShellCompDirectiveFilterFileExt || len(exts) != 1 || exts[0] != "txt" {
		t.Errorf("first arg: %v %v", exts, d)
	}
	if _, d := completeCorpusThenFonts(nil, []string{"c.txt"}, ""); d != cobra.ShellCompDirectiveFilterDirs {
		t.Errorf("second arg directive = %v", d)
	}
	if _, d := completeCorpusThenFonts(nil, []string{"c.txt", "fonts"}, ""); d != cobra.ShellCompDirectiveNoFileComp {
		t.Errorf("third arg directive = %v", d)
	}
}

func TestUnderlineStyleCompletionThroughRoot(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs([]string{cobra.ShellCompNoDescRequestCmd, "generate", "--underline-style", ""})

	if err := root.Execute(); err != nil {
		t.Fatalf("completion request: %v", err)
	}
	for _, want := range []string{"auto", "single", "ruled"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("completions missing %q:\n%s", want, out.String())
		}
	}
}
