package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	errs "github.com/matzehuels/colfit/pkg/errors"
	"github.com/matzehuels/colfit/pkg/table"
)

var servicesFile = filepath.Join("testdata", "services.toml")

// execute runs the root command with args and returns what it printed.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	isolate(t)

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCommandSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()

	var names []string
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	want := []string{"completion", "fit", "print", "watch"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("subcommands (-want +got):\n%s", diff)
	}

	for _, key := range layoutKeys {
		if root.PersistentFlags().Lookup(key) == nil {
			t.Errorf("missing persistent flag --%s", key)
		}
	}
}

func TestFitJSON(t *testing.T) {
	out, err := execute(t, "fit", "--json", "--width", "20", servicesFile)
	if err != nil {
		t.Fatalf("fit: %v", err)
	}

	var reports []fitReport
	if err := json.Unmarshal([]byte(out), &reports); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if len(reports) != 1 {
		t.Fatalf("got %d reports, want 1", len(reports))
	}

	r := reports[0]
	if r.Path != servicesFile || r.Width != 20 || r.Target != 20 || r.MinWidth != 10 {
		t.Errorf("report = %+v", r)
	}

	type widths struct {
		Name            string
		Width, Min, Max int
	}
	var got []widths
	for _, cl := range r.Columns {
		got = append(got, widths{cl.Name, cl.Width, cl.Min, cl.Max})
	}
	want := []widths{
		{"UNIT", 4, 4, 4},
		{"STATE", 15, 5, 7},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("columns (-want +got):\n%s", diff)
	}
}

func TestFitReportsInOrder(t *testing.T) {
	disks := filepath.Join("..", "..", "pkg", "tabfile", "testdata", "disks.toml")
	out, err := execute(t, "fit", "--json", disks, servicesFile)
	if err != nil {
		t.Fatalf("fit: %v", err)
	}

	var reports []fitReport
	if err := json.Unmarshal([]byte(out), &reports); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(reports) != 2 || reports[0].Path != disks || reports[1].Path != servicesFile {
		t.Fatalf("reports out of order: %+v", reports)
	}
	if reports[0].Target != 40 || reports[0].GroupLanes != 1 {
		t.Errorf("disks target = %d lanes = %d, want 40 and 1", reports[0].Target, reports[0].GroupLanes)
	}
}

func TestFitMissingFile(t *testing.T) {
	_, err := execute(t, "fit", "--width", "20", servicesFile, filepath.Join("testdata", "absent.toml"))
	if !errs.Is(err, errs.ErrCodeFileNotFound) {
		t.Errorf("fit error = %v, want %s", err, errs.ErrCodeFileNotFound)
	}
}

func TestFitText(t *testing.T) {
	out, err := execute(t, "fit", "--width", "20", servicesFile)
	if err != nil {
		t.Fatalf("fit: %v", err)
	}
	for _, want := range []string{servicesFile, "UNIT", "STATE", "20 of 20"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrint(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "header",
			args: []string{"print", "--width", "20", "--ascii", servicesFile},
			want: "UNIT STATE\nsshd running\ncron exited\n",
		},
		{
			name: "no header",
			args: []string{"print", "--width", "20", "--ascii", "--no-header", servicesFile},
			want: "sshd running\ncron exited\n",
		},
		{
			name: "separator",
			args: []string{"print", "--width", "20", "--ascii", "--separator", " | ", servicesFile},
			want: "UNIT | STATE\nsshd | running\ncron | exited\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := execute(t, tt.args...)
			if err != nil {
				t.Fatalf("print: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("output (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRenderOptions(t *testing.T) {
	tests := []struct {
		name     string
		symbols  table.Symbols
		noHeader bool
		want     int
	}{
		{"unicode tail", table.DefaultSymbols, false, 1},
		{"ascii", table.ASCIISymbols, false, 0},
		{"ascii without header", table.ASCIISymbols, true, 1},
		{"unicode without header", table.DefaultSymbols, true, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tb := table.New()
			tb.Symbols = tt.symbols
			if got := len(renderOptions(tb, tt.noHeader)); got != tt.want {
				t.Errorf("got %d options, want %d", got, tt.want)
			}
		})
	}
}

func TestColumnState(t *testing.T) {
	tests := []struct {
		cl   columnReport
		want string
	}{
		{columnReport{}, ""},
		{columnReport{Hidden: true, Extreme: true}, "hidden"},
		{columnReport{FitTrunc: true}, "cut"},
		{columnReport{Extreme: true}, "extreme"},
	}
	for _, tt := range tests {
		if got := columnState(tt.cl); got != tt.want {
			t.Errorf("columnState(%+v) = %q, want %q", tt.cl, got, tt.want)
		}
	}
}

func TestCompletion(t *testing.T) {
	out, err := execute(t, "completion", "bash")
	if err != nil {
		t.Fatalf("completion: %v", err)
	}
	if !strings.Contains(out, "colfit") {
		t.Error("bash completion should mention colfit")
	}
}
