package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/subcommands"

	"github.com/jhoicas/inventario-panel/internal/application/dto"
	"github.com/jhoicas/inventario-panel/internal/application/inventory"
	domaininv "github.com/jhoicas/inventario-panel/internal/domain/inventory"
	"github.com/jhoicas/inventario-panel/internal/domain/repository"
	"github.com/jhoicas/inventario-panel/internal/infrastructure/memory"
	"github.com/jhoicas/inventario-panel/internal/infrastructure/sheet"
)

type importCmd struct {
	env    *Env
	file   string
	source string
	dryRun bool
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "concilia una planilla .csv o .xlsx con el catálogo" }
func (*importCmd) Usage() string {
	return `inventoryctl import -file <planilla> [-source <etiqueta>] [-dry-run]

  Inserta los productos nuevos, actualiza los que cambiaron y deja sin tocar los
  idénticos. Cada fila se aplica por separado: una fila inválida no frena al resto.
  Con -dry-run la conciliación corre sobre una copia en memoria del catálogo.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "file", "", "Planilla a importar (.csv o .xlsx)")
	f.StringVar(&c.source, "source", "", "Etiqueta del origen en el libro (por defecto el nombre del archivo)")
	f.BoolVar(&c.dryRun, "dry-run", false, "Muestra el resultado sin escribir en la base")
}

func (c *importCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.file == "" {
		fmt.Fprintln(c.env.Err, "falta -file")
		return subcommands.ExitUsageError
	}
	f, err := os.Open(c.file)
	if err != nil {
		return c.env.errorf("abrir planilla: %v", err)
	}
	defer f.Close()

	src, err := sheet.Open(c.file, f)
	if err != nil {
		return c.env.errorf("leer planilla: %v", err)
	}
	defer src.Close()

	svc, closeFn, err := c.env.Connect(ctx)
	if err != nil {
		return c.env.errorf("conectar: %v", err)
	}
	defer closeFn()

	reconciler := svc.Reconcile
	if c.dryRun {
		reconciler, err = dryRunReconciler(ctx, svc.ProductRepo, c.env)
		if err != nil {
			return c.env.errorf("copiar catálogo: %v", err)
		}
	}

	source := c.source
	if source == "" {
		source = filepath.Base(c.file)
	}
	summary, err := reconciler.Reconcile(ctx, src, inventory.ReconcileInput{Source: source, Actor: c.env.Actor})
	c.env.printMarkdown(summaryMarkdown(summary, c.dryRun))
	if err != nil {
		return c.env.errorf("importación interrumpida: %v", err)
	}
	if len(summary.Errors) > 0 {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// dryRunReconciler concilia contra una copia en memoria del catálogo actual.
func dryRunReconciler(ctx context.Context, products repository.ProductRepository, env *Env) (*inventory.ReconcileUseCase, error) {
	list, err := products.List(ctx, repository.ProductFilter{})
	if err != nil {
		return nil, err
	}
	store := memory.NewStore()
	store.Seed(list...)
	return inventory.NewReconcileUseCase(store, domaininv.NewNormalizer(), env.Log), nil
}

func summaryMarkdown(s *dto.ImportSummary, dryRun bool) string {
	var b strings.Builder
	title := "Importación: " + s.Source
	if dryRun {
		title += " (simulación, sin cambios)"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	b.WriteString(mdTable(
		[]string{"insertados", "actualizados", "sin cambios", "descartados", "errores", "ms"},
		[][]string{{
			strconv.Itoa(s.Inserted), strconv.Itoa(s.Updated), strconv.Itoa(s.Skipped),
			strconv.Itoa(s.Dropped), strconv.Itoa(len(s.Errors)), strconv.FormatInt(s.DurationMS, 10),
		}},
	))
	if s.Interrupted {
		b.WriteString("\n**Interrumpida**: las filas anteriores quedaron aplicadas.\n")
	}
	if len(s.Errors) > 0 {
		b.WriteString("\n## Errores\n\n")
		rows := make([][]string, 0, len(s.Errors))
		for _, e := range s.Errors {
			rows = append(rows, []string{strconv.Itoa(e.Row), e.Code, e.Kind, e.Message})
		}
		b.WriteString(mdTable([]string{"fila", "código", "tipo", "detalle"}, rows))
	}
	return b.String()
}
