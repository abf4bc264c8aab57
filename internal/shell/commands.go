package shell

import (
	"errors"
	"fmt"
	"strings"

	"github.com/KiranEiden/amrplot/internal/render"
)

// errQuit signals a clean end of the session.
var errQuit = errors.New("quit")

type handlerFunc func(sh *Shell, args []string) error

// The fixed command table. Names are matched case-insensitively by Eval.
var commandNames = []string{"help", "load", "listvar", "plot", "quit", "replot", "reset", "save", "set"}

var handlers = map[string]handlerFunc{
	"help":    cmdHelp,
	"load":    cmdLoad,
	"listvar": cmdListvar,
	"plot":    cmdPlot,
	"quit":    cmdQuit,
	"replot":  cmdReplot,
	"reset":   cmdReset,
	"save":    cmdSave,
	"set":     cmdSet,
}

func cmdHelp(sh *Shell, args []string) error {
	if err := CheckArgCount(args, 0); err != nil {
		return err
	}
	for _, name := range commandNames {
		fmt.Fprintln(sh.out, name)
	}
	return nil
}

func cmdQuit(sh *Shell, args []string) error {
	if err := CheckArgCount(args, 0); err != nil {
		return err
	}
	return errQuit
}

func cmdLoad(sh *Shell, args []string) error {
	if err := CheckArgCount(args, 1); err != nil {
		return err
	}
	return sh.file.Load(args[0])
}

func cmdListvar(sh *Shell, args []string) error {
	if err := CheckArgCount(args, 0, 1); err != nil {
		return err
	}
	if len(args) == 1 {
		if err := sh.file.Load(args[0]); err != nil {
			return err
		}
	}
	if !sh.file.IsLoaded() {
		return errors.New("a file must be specified if one has not been loaded")
	}
	for _, f := range sh.file.Fields {
		fmt.Fprintln(sh.out, f)
	}
	return nil
}

func cmdPlot(sh *Shell, args []string) error {
	if err := CheckArgCount(args, 1, 2); err != nil {
		return err
	}

	varname := args[0]
	if len(args) == 2 {
		if err := sh.file.Load(args[0]); err != nil {
			return err
		}
		varname = args[1]
	}
	if !sh.file.IsLoaded() {
		return errors.New("a file must be specified if one has not been loaded")
	}

	varname = stripQuotes(varname)
	if !sh.file.DS.Contains(varname) {
		return errors.New("invalid variable")
	}
	st := sh.state
	st.VarName = varname

	center := st.ComputeCenter()
	width := st.ComputeWidth()
	offAxis := st.IsOffAxis()
	normal := st.RenderNormal()

	plot, err := render.MakeSlice(sh.file.DS, normal, varname, center, width, !offAxis, sh.renderOpts())
	if err != nil {
		if errors.Is(err, render.ErrInvalidField) {
			st.VarName = ""
			return errors.New("invalid variable")
		}
		return err
	}

	if st.ShowGrid {
		if err := plot.AnnotateGrid(); err != nil {
			fmt.Fprintln(sh.out, "unable to show grid with current plot settings")
		}
	}
	plot.SetLogScale(varname, st.Log)
	plot.Display()

	st.CurrentPlot = plot
	return nil
}

func cmdReplot(sh *Shell, args []string) error {
	if err := CheckArgCount(args, 0); err != nil {
		return err
	}
	if sh.state.VarName == "" {
		return errors.New("must plot first to use replot command")
	}
	return cmdPlot(sh, []string{sh.file.Path, sh.state.VarName})
}

func cmdSave(sh *Shell, args []string) error {
	if err := CheckArgCount(args, 1); err != nil {
		return err
	}
	path := stripQuotes(args[0])
	if sh.state.CurrentPlot == nil {
		return errors.New("must generate plot before saving")
	}
	return sh.state.CurrentPlot.Save(path)
}

func cmdReset(sh *Shell, args []string) error {
	if err := CheckArgCount(args, 0); err != nil {
		return err
	}
	sh.state.Reset()
	return nil
}

var settingNames = []string{"log", "xlim", "xrange", "ylim", "yrange", "zlim", "zrange", "grid", "center", "normal"}

var (
	trueWords  = []string{"true", "1", "on", "t"}
	falseWords = []string{"false", "0", "off", "f"}
)

func parseBoolWord(tok string) (bool, error) {
	tok = strings.ToLower(tok)
	for _, w := range trueWords {
		if tok == w {
			return true, nil
		}
	}
	for _, w := range falseWords {
		if tok == w {
			return false, nil
		}
	}
	return false, fmt.Errorf("input must be in %v or %v", trueWords, falseWords)
}

func cmdSet(sh *Shell, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("setting must be in: %v", settingNames)
	}
	setting := strings.ToLower(args[0])
	st := sh.state

	switch setting {
	case "log":
		if err := CheckArgCount(args, 2); err != nil {
			return err
		}
		v, err := parseBoolWord(args[1])
		if err != nil {
			return err
		}
		st.Log = v

	case "grid":
		if err := CheckArgCount(args, 2); err != nil {
			return err
		}
		v, err := parseBoolWord(args[1])
		if err != nil {
			return err
		}
		st.ShowGrid = v

	case "xlim", "xrange", "ylim", "yrange", "zlim", "zrange":
		vals, err := ParseFloatTuple(args, 1, 2)
		if err != nil {
			return err
		}
		if vals[0] >= vals[1] {
			return fmt.Errorf("min (%g) must be less than max (%g)", vals[0], vals[1])
		}
		b := &Bounds{Min: vals[0], Max: vals[1]}
		switch setting[0] {
		case 'x':
			st.XBounds = b
		case 'y':
			st.YBounds = b
		case 'z':
			st.ZBounds = b
		}

	case "center":
		vals, err := ParseFloatTuple(args, 1, 3)
		if err != nil {
			return err
		}
		st.Center = &[3]float64{vals[0], vals[1], vals[2]}

	case "normal":
		if len(args) == 2 {
			axis := args[1]
			if axis != "x" && axis != "y" && axis != "z" {
				return errors.New("invalid normal vector direction")
			}
			st.Normal = AxisNormal(axis)
			return nil
		}
		vals, err := ParseFloatTuple(args, 1, 3)
		if err != nil {
			return err
		}
		if vals[0] == 0 && vals[1] == 0 && vals[2] == 0 {
			return errors.New("normal vector cannot be zero vector")
		}
		st.Normal = VectorNormal(vals[0], vals[1], vals[2])

	default:
		return fmt.Errorf("%s not supported, setting must be in: %v", setting, settingNames)
	}
	return nil
}
