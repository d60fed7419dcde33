package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/jhoicas/inventario-panel/internal/application/report"
)

type reportCmd struct {
	env      *Env
	out      string
	code     string
	category string
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "exporta el informe de stock en PDF" }
func (*reportCmd) Usage() string {
	return `inventoryctl report [-out <archivo.pdf>] [-code <subcadena>] [-category <subcadena>]

  Genera el informe de stock agrupado por categoría. Sin -out usa el nombre sugerido.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.out, "out", "", "Archivo de salida")
	f.StringVar(&c.code, "code", "", "Filtrar por código")
	f.StringVar(&c.category, "category", "", "Filtrar por categoría")
}

func (c *reportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svc, closeFn, err := c.env.Connect(ctx)
	if err != nil {
		return c.env.errorf("conectar: %v", err)
	}
	defer closeFn()

	pdfBytes, filename, err := svc.Reports.ProductsPDF(ctx, report.ReportFilter{Code: c.code, Category: c.category})
	if err != nil {
		return c.env.errorf("generar informe: %v", err)
	}
	out := c.out
	if out == "" {
		out = filename
	}
	if err := os.WriteFile(out, pdfBytes, 0o644); err != nil {
		return c.env.errorf("escribir %s: %v", out, err)
	}
	fmt.Fprintf(c.env.Out, "informe escrito en %s (%d bytes)\n", out, len(pdfBytes))
	return subcommands.ExitSuccess
}
