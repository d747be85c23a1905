package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/llvm-runtime/llvm"
)

func main() {
	var (
		expr        = flag.String("expr", "", "Integer expression over x and y, e.g. \"(x + y) * 2\"")
		xVal        = flag.Int64("x", 0, "Value bound to x")
		yVal        = flag.Int64("y", 0, "Value bound to y")
		dump        = flag.Bool("dump", false, "Print the generated IR before running")
		emit        = flag.String("emit", "", "Also compile the expression to an object file at this path")
		verbose     = flag.Bool("v", false, "Log native resource lifecycle events")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		llvm.SetLogger(logger)
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal")
			os.Exit(1)
		}
		if err := runInteractive(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *expr == "" {
		fmt.Fprintln(os.Stderr, "Usage: jit -expr \"(x + y) * 2\" [-x N] [-y N] [-dump] [-emit out.o]")
		fmt.Fprintln(os.Stderr, "       jit -i  (interactive mode)")
		os.Exit(1)
	}

	if err := run(*expr, *xVal, *yVal, *dump, *emit); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(expr string, x, y int64, dump bool, emit string) error {
	c, err := compileExpr(expr)
	if err != nil {
		return err
	}
	defer c.Close()

	if dump {
		fmt.Print(c.ir)
		fmt.Println()
	}

	if emit != "" {
		if err := emitObject(expr, emit); err != nil {
			return fmt.Errorf("emit object: %w", err)
		}
		fmt.Printf("Object written to %s\n", emit)
	}

	result, err := c.Run(x, y)
	if err != nil {
		return err
	}
	fmt.Printf("%s = %d  (x=%d, y=%d)\n", expr, result, x, y)
	return nil
}

// emitObject recompiles the expression into a fresh module for the host
// target. The JIT engine owns the first module, so object emission gets its
// own.
func emitObject(expr, path string) error {
	node, err := parseExpr(expr)
	if err != nil {
		return err
	}
	ctx, err := llvm.NewContext()
	if err != nil {
		return err
	}
	defer ctx.Close()

	mod, err := lowerExpr(ctx, node)
	if err != nil {
		return err
	}

	tm, err := llvm.NewTargetMachine(nil)
	if err != nil {
		return err
	}
	defer tm.Close()

	obj, err := tm.EmitToMemoryBuffer(mod, llvm.ObjectFile)
	if err != nil {
		return err
	}
	defer obj.Close()
	return obj.WriteFile(path)
}
