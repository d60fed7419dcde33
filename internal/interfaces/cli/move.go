package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/jhoicas/inventario-panel/internal/application/dto"
	"github.com/jhoicas/inventario-panel/internal/domain"
)

type moveCmd struct {
	env     *Env
	product string
	code    string
	kind    string
	qty     int64
	note    string
}

func (*moveCmd) Name() string     { return "move" }
func (*moveCmd) Synopsis() string { return "registra una entrada o salida de stock" }
func (*moveCmd) Usage() string {
	return `inventoryctl move (-product <id> | -code <código>) -kind stock_in|stock_out -qty <n> [-note <texto>]

  Suma o resta unidades a un producto y deja la entrada en el libro de movimientos.
  Una salida mayor que el stock disponible se rechaza sin cambios.
`
}

func (c *moveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.product, "product", "", "ID del producto")
	f.StringVar(&c.code, "code", "", "Código del producto (alternativa a -product)")
	f.StringVar(&c.kind, "kind", "", "stock_in o stock_out")
	f.Int64Var(&c.qty, "qty", 0, "Cantidad (> 0)")
	f.StringVar(&c.note, "note", "", "Nota para el libro")
}

func (c *moveCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if (c.product == "") == (c.code == "") {
		fmt.Fprintln(c.env.Err, "indique -product o -code")
		return subcommands.ExitUsageError
	}
	svc, closeFn, err := c.env.Connect(ctx)
	if err != nil {
		return c.env.errorf("conectar: %v", err)
	}
	defer closeFn()

	productID := c.product
	if c.code != "" {
		p, err := svc.ProductRepo.GetByCode(ctx, c.code)
		if err != nil {
			return c.env.errorf("buscar producto: %v", err)
		}
		if p == nil {
			return c.env.errorf("%s: %v", c.code, domain.ErrProductNotFound)
		}
		productID = p.ID
	}

	out, err := svc.Movements.ApplyMovementFromRequest(ctx, c.env.Actor, dto.ApplyMovementRequest{
		ProductID: productID,
		Kind:      c.kind,
		Quantity:  c.qty,
		Note:      c.note,
	})
	if err != nil {
		return c.env.errorf("%s: %v", domain.ErrorKind(err), err)
	}
	fmt.Fprintf(c.env.Out, "%s (%s): stock %d\n", out.Name, out.Code, out.Quantity)
	return subcommands.ExitSuccess
}
