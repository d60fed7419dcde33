package cli

import (
	"context"
	"flag"
	"strconv"

	"github.com/google/subcommands"

	"github.com/jhoicas/inventario-panel/internal/domain/entity"
	"github.com/jhoicas/inventario-panel/internal/domain/repository"
)

type movementsCmd struct {
	env     *Env
	limit   int
	product string
	kind    string
}

func (*movementsCmd) Name() string     { return "movements" }
func (*movementsCmd) Synopsis() string { return "muestra el libro de movimientos, del más reciente al más antiguo" }
func (*movementsCmd) Usage() string {
	return `inventoryctl movements [-limit <n>] [-product <id>] [-kind <tipo>]
`
}

func (c *movementsCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.limit, "limit", 0, "Cantidad de entradas (0 = LEDGER_PAGE_SIZE)")
	f.StringVar(&c.product, "product", "", "Filtrar por ID de producto")
	f.StringVar(&c.kind, "kind", "", "Filtrar por tipo (stock_in, stock_out, bulk_import, ...)")
}

func (c *movementsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svc, closeFn, err := c.env.Connect(ctx)
	if err != nil {
		return c.env.errorf("conectar: %v", err)
	}
	defer closeFn()

	list, err := svc.Ledger.List(ctx, repository.MovementFilter{
		Limit:     c.limit,
		ProductID: c.product,
		Kind:      entity.MovementKind(c.kind),
	})
	if err != nil {
		return c.env.errorf("listar movimientos: %v", err)
	}
	rows := make([][]string, 0, len(list))
	for _, m := range list {
		rows = append(rows, []string{
			m.OccurredAt.Local().Format("02/01/2006 15:04"),
			m.ProductName,
			m.Kind,
			strconv.FormatInt(m.QuantityDelta, 10),
			strconv.FormatInt(m.QuantityBefore, 10) + " → " + strconv.FormatInt(m.QuantityAfter, 10),
			m.Note,
			m.CreatedBy,
		})
	}
	c.env.printMarkdown(mdTable([]string{"fecha", "producto", "tipo", "cant.", "stock", "nota", "autor"}, rows))
	return subcommands.ExitSuccess
}
