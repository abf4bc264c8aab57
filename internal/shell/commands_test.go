package shell

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KiranEiden/amrplot/internal/config"
)

func newTestShell(t *testing.T) (*Shell, *bytes.Buffer) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.PlotWidth = 8
	cfg.PlotHeight = 4
	cfg.ProfileRows = 0

	sh := New(cfg)
	buf := &bytes.Buffer{}
	sh.out = buf
	return sh, buf
}

func testFile(t *testing.T) string {
	return writePlotfile(t, "cartesian", [3]int{4, 4, 4},
		[3]float64{0, 0, 0}, [3]float64{1, 1, 1})
}

func TestUnknownCommand(t *testing.T) {
	sh, buf := newTestShell(t)
	if quit := sh.Eval("frobnicate now"); quit {
		t.Fatal("unknown command must not end the session")
	}
	if !strings.Contains(buf.String(), "invalid command") {
		t.Errorf("expected invalid command message, got %q", buf.String())
	}
}

func TestEmptyLineIgnored(t *testing.T) {
	sh, buf := newTestShell(t)
	sh.Eval("   ")
	if buf.Len() != 0 {
		t.Errorf("empty input should produce no output, got %q", buf.String())
	}
}

func TestQuit(t *testing.T) {
	sh, buf := newTestShell(t)
	if !sh.Eval("quit") {
		t.Fatal("quit must end the session")
	}
	if !strings.Contains(buf.String(), "Good bye!") {
		t.Error("expected farewell message")
	}
}

func TestHelpListsCommands(t *testing.T) {
	sh, buf := newTestShell(t)
	sh.Eval("help")
	for _, name := range commandNames {
		if !strings.Contains(buf.String(), name) {
			t.Errorf("help output missing %s", name)
		}
	}
}

func TestLoadFailureLeavesUnloaded(t *testing.T) {
	sh, buf := newTestShell(t)
	sh.Eval("load /no/such/plotfile")
	if sh.file.IsLoaded() {
		t.Error("failed load must leave the context unloaded")
	}
	if !strings.Contains(buf.String(), "file unable to be opened") {
		t.Errorf("expected load failure message, got %q", buf.String())
	}
}

func TestLoadIsIdempotent(t *testing.T) {
	sh, _ := newTestShell(t)
	path := testFile(t)
	sh.Eval("load " + path)
	ds := sh.file.DS

	sh.Eval("load " + path)
	if sh.file.DS != ds {
		t.Error("reloading the same path must keep the dataset handle")
	}
}

func TestListvar(t *testing.T) {
	sh, buf := newTestShell(t)

	sh.Eval("listvar")
	if !strings.Contains(buf.String(), "a file must be specified") {
		t.Errorf("expected not-loaded message, got %q", buf.String())
	}

	buf.Reset()
	sh.Eval("listvar " + testFile(t))
	if !strings.Contains(buf.String(), "density") {
		t.Errorf("expected field listing, got %q", buf.String())
	}
}

func TestSetLimits(t *testing.T) {
	sh, buf := newTestShell(t)

	sh.Eval("set xlim 1,5")
	if sh.state.XBounds == nil || *sh.state.XBounds != (Bounds{Min: 1, Max: 5}) {
		t.Fatalf("expected xbounds (1,5), got %v", sh.state.XBounds)
	}

	buf.Reset()
	sh.Eval("set xlim 5,1")
	if *sh.state.XBounds != (Bounds{Min: 1, Max: 5}) {
		t.Errorf("reversed bounds must be rejected, got %v", sh.state.XBounds)
	}
	if !strings.Contains(buf.String(), "must be less than") {
		t.Errorf("expected validation message, got %q", buf.String())
	}

	sh.Eval("set yrange (0.5, 2.5)")
	if sh.state.YBounds == nil || sh.state.YBounds.Max != 2.5 {
		t.Errorf("yrange alias failed, got %v", sh.state.YBounds)
	}
}

func TestSetBooleans(t *testing.T) {
	sh, buf := newTestShell(t)

	sh.Eval("set log on")
	if !sh.state.Log {
		t.Error("set log on failed")
	}
	sh.Eval("set grid T")
	if !sh.state.ShowGrid {
		t.Error("set grid T failed")
	}

	buf.Reset()
	sh.Eval("set log yes")
	if !sh.state.Log {
		t.Error("bad literal must leave the flag unchanged")
	}
	if !strings.Contains(buf.String(), "input must be in") {
		t.Errorf("expected literal sets in message, got %q", buf.String())
	}

	sh.Eval("set log 0")
	if sh.state.Log {
		t.Error("set log 0 failed")
	}
}

func TestSetCenter(t *testing.T) {
	sh, _ := newTestShell(t)
	sh.Eval("set center (0.1, 0.2, 0.3)")
	if sh.state.Center == nil || *sh.state.Center != [3]float64{0.1, 0.2, 0.3} {
		t.Errorf("expected explicit center, got %v", sh.state.Center)
	}
}

func TestSetNormal(t *testing.T) {
	sh, buf := newTestShell(t)

	sh.Eval("set normal x")
	if sh.state.Normal != AxisNormal("x") {
		t.Errorf("expected axis normal x, got %v", sh.state.Normal)
	}

	buf.Reset()
	sh.Eval("set normal w")
	if sh.state.Normal != AxisNormal("x") {
		t.Error("invalid axis token must leave the normal unchanged")
	}
	if !strings.Contains(buf.String(), "invalid normal vector direction") {
		t.Errorf("expected direction error, got %q", buf.String())
	}

	sh.Eval("set normal 1, 1, 0")
	if sh.state.Normal != VectorNormal(1, 1, 0) {
		t.Errorf("expected vector normal, got %v", sh.state.Normal)
	}

	buf.Reset()
	sh.Eval("set normal 0, 0, 0")
	if sh.state.Normal != VectorNormal(1, 1, 0) {
		t.Error("zero vector must be rejected")
	}
	if !strings.Contains(buf.String(), "zero vector") {
		t.Errorf("expected zero vector error, got %q", buf.String())
	}
}

func TestSetUnknownKey(t *testing.T) {
	sh, buf := newTestShell(t)
	sh.Eval("set wibble 1")
	if !strings.Contains(buf.String(), "not supported") {
		t.Errorf("expected unknown setting error, got %q", buf.String())
	}
}

func TestPlotWithoutFile(t *testing.T) {
	sh, buf := newTestShell(t)
	sh.Eval("plot density")
	if sh.state.CurrentPlot != nil {
		t.Error("plot without a file must not produce a plot")
	}
	if !strings.Contains(buf.String(), "a file must be specified") {
		t.Errorf("expected not-loaded message, got %q", buf.String())
	}
}

func TestPlot(t *testing.T) {
	sh, _ := newTestShell(t)
	sh.Eval("plot " + testFile(t) + " 'density'")

	if sh.state.CurrentPlot == nil {
		t.Fatal("expected a current plot after a successful plot")
	}
	if sh.state.VarName != "density" {
		t.Errorf("expected quoted variable stripped to density, got %q", sh.state.VarName)
	}
}

func TestPlotInvalidVariable(t *testing.T) {
	sh, buf := newTestShell(t)
	sh.Eval("load " + testFile(t))

	buf.Reset()
	sh.Eval("plot entropy")
	if sh.state.CurrentPlot != nil {
		t.Error("invalid variable must not produce a plot")
	}
	if !strings.Contains(buf.String(), "invalid variable") {
		t.Errorf("expected invalid variable message, got %q", buf.String())
	}
}

func TestPlotUnreadableVariable(t *testing.T) {
	sh, buf := newTestShell(t)
	sh.Eval("load " + testFile(t))

	// "broken" is in the field list but has no data block.
	sh.Eval("plot broken")
	if sh.state.CurrentPlot != nil {
		t.Error("unreadable variable must not produce a plot")
	}
	if sh.state.VarName != "" {
		t.Errorf("unreadable variable must clear varname, got %q", sh.state.VarName)
	}
	if !strings.Contains(buf.String(), "invalid variable") {
		t.Errorf("expected invalid variable message, got %q", buf.String())
	}
}

func TestReplot(t *testing.T) {
	sh, buf := newTestShell(t)

	sh.Eval("replot")
	if !strings.Contains(buf.String(), "must plot first") {
		t.Errorf("expected replot guard message, got %q", buf.String())
	}

	sh.Eval("plot " + testFile(t) + " density")
	first := sh.state.CurrentPlot
	sh.Eval("set log on")
	sh.Eval("replot")
	if sh.state.CurrentPlot == nil || sh.state.CurrentPlot == first {
		t.Error("replot should produce a fresh plot")
	}
}

func TestSaveBeforePlot(t *testing.T) {
	sh, buf := newTestShell(t)
	out := filepath.Join(t.TempDir(), "out.svg")

	sh.Eval("save " + out)
	if !strings.Contains(buf.String(), "must generate plot before saving") {
		t.Errorf("expected save guard message, got %q", buf.String())
	}
	if _, err := os.Stat(out); err == nil {
		t.Error("no file should be written before a plot exists")
	}
}

func TestSave(t *testing.T) {
	sh, _ := newTestShell(t)
	sh.Eval("plot " + testFile(t) + " density")

	out := filepath.Join(t.TempDir(), "out.svg")
	sh.Eval("save '" + out + "'")
	if _, err := os.Stat(out); err != nil {
		t.Errorf("expected saved plot at %s: %v", out, err)
	}
}

func TestResetCommand(t *testing.T) {
	sh, _ := newTestShell(t)
	path := testFile(t)

	sh.Eval("load " + path)
	sh.Eval("set xlim 0.1, 0.9")
	sh.Eval("set log on")
	sh.Eval("set grid on")
	sh.Eval("reset")

	if sh.state.XBounds != nil || sh.state.Log || sh.state.ShowGrid {
		t.Error("reset must restore defaults")
	}
	if sh.file.Path != path {
		t.Errorf("reset must keep the loaded file, got %q", sh.file.Path)
	}
}

func TestArgCountErrors(t *testing.T) {
	sh, buf := newTestShell(t)
	sh.Eval("load a b")
	if !strings.Contains(buf.String(), "argument(s)") {
		t.Errorf("expected usage error, got %q", buf.String())
	}
}
