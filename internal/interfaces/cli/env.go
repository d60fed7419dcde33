// Package cli implementa los subcomandos de inventoryctl sobre los mismos casos de uso que la API.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	"github.com/jhoicas/inventario-panel/internal/application/inventory"
	"github.com/jhoicas/inventario-panel/internal/application/report"
	"github.com/jhoicas/inventario-panel/internal/application/usecase"
	"github.com/jhoicas/inventario-panel/internal/domain/repository"
	"github.com/jhoicas/inventario-panel/pkg/logger"
)

// Services casos de uso listos para usar. Los construye Env.Connect.
type Services struct {
	ProductRepo repository.ProductRepository
	Products    *usecase.ProductUseCase
	Movements   *inventory.MovementUseCase
	Ledger      *inventory.LedgerUseCase
	Reconcile   *inventory.ReconcileUseCase
	Reports     *report.UseCase
}

// Env estado compartido por los subcomandos.
type Env struct {
	Actor string
	Plain bool // imprime markdown sin estilos de terminal
	Out   io.Writer
	Err   io.Writer
	Log   *logger.Logger

	// Connect abre el almacenamiento. Se invoca solo en los comandos que lo necesitan.
	Connect func(ctx context.Context) (*Services, func(), error)
}

// Commands subcomandos de inventoryctl, en el orden de la ayuda.
func Commands(env *Env) []subcommands.Command {
	return []subcommands.Command{
		&importCmd{env: env},
		&moveCmd{env: env},
		&productsCmd{env: env},
		&movementsCmd{env: env},
		&reportCmd{env: env},
	}
}

// Register registra los subcomandos agrupados como en la ayuda.
func Register(c *subcommands.Commander, env *Env) {
	for _, cmd := range Commands(env) {
		group := "consultas"
		switch cmd.Name() {
		case "import", "move":
			group = "cambios de stock"
		}
		c.Register(cmd, group)
	}
}

func (e *Env) errorf(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(e.Err, format+"\n", args...)
	return subcommands.ExitFailure
}

// printMarkdown renderiza md para la terminal; con Plain lo imprime tal cual.
func (e *Env) printMarkdown(md string) {
	if !e.Plain {
		r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
		if err == nil {
			if out, err := r.Render(md); err == nil {
				fmt.Fprint(e.Out, out)
				return
			}
		}
	}
	fmt.Fprint(e.Out, md)
}

// mdTable arma una tabla markdown; los "|" de las celdas se escapan.
// mdCell escapa "|" y aplana los saltos de línea; ambos romperían la fila de la tabla.
var mdCell = strings.NewReplacer("|", `\|`, "\r\n", " ", "\n", " ", "\r", " ")

func mdTable(headers []string, rows [][]string) string {
	var b strings.Builder
	line := func(cells []string) {
		b.WriteString("|")
		for _, c := range cells {
			b.WriteString(" ")
			b.WriteString(mdCell.Replace(c))
			b.WriteString(" |")
		}
		b.WriteString("\n")
	}
	line(headers)
	sep := make([]string, len(headers))
	for i := range sep {
		sep[i] = "---"
	}
	line(sep)
	for _, r := range rows {
		line(r)
	}
	return b.String()
}
