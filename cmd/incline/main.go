package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/milk9111/rampbox/common"
	"github.com/milk9111/rampbox/incline"
	"go.uber.org/zap"
)

func main() {
	logger, err := common.NewLogger(false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "incline: build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(os.Stdin, os.Stdout); err != nil {
		logger.Fatal("incline: invalid input", zap.Error(err))
	}
}

func run(in io.Reader, out io.Writer) error {
	r := bufio.NewReader(in)

	var p incline.Params
	fmt.Fprint(out, "Ingrese la masa del cuerpo (kg): ")
	if _, err := fmt.Fscan(r, &p.Mass); err != nil {
		return fmt.Errorf("incline: read mass: %w", err)
	}

	fmt.Fprint(out, "Ingrese el ángulo de la pendiente (grados): ")
	if _, err := fmt.Fscan(r, &p.AngleDeg); err != nil {
		return fmt.Errorf("incline: read angle: %w", err)
	}

	_, err := fmt.Fprintln(out, incline.FormatResult(incline.RequiredForce(p)))
	return err
}
