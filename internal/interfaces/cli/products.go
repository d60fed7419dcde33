package cli

import (
	"context"
	"flag"
	"strconv"

	"github.com/google/subcommands"

	"github.com/jhoicas/inventario-panel/internal/application/report"
)

type productsCmd struct {
	env      *Env
	code     string
	category string
	search   string
}

func (*productsCmd) Name() string     { return "products" }
func (*productsCmd) Synopsis() string { return "lista el catálogo con stock y valor" }
func (*productsCmd) Usage() string {
	return `inventoryctl products [-code <subcadena>] [-category <subcadena>] [-search <subcadena>]

  Lista los productos ordenados por categoría y nombre, con el valor en stock.
`
}

func (c *productsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.code, "code", "", "Filtrar por código")
	f.StringVar(&c.category, "category", "", "Filtrar por categoría")
	f.StringVar(&c.search, "search", "", "Filtrar por nombre")
}

func (c *productsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svc, closeFn, err := c.env.Connect(ctx)
	if err != nil {
		return c.env.errorf("conectar: %v", err)
	}
	defer closeFn()

	rep, err := svc.Reports.Products(ctx, report.ReportFilter{Code: c.code, Category: c.category, Search: c.search})
	if err != nil {
		return c.env.errorf("listar productos: %v", err)
	}
	money := svc.Reports.Money()
	rows := make([][]string, 0, len(rep.Items))
	for _, p := range rep.Items {
		rows = append(rows, []string{
			p.Code, p.Name, p.Category,
			strconv.FormatInt(p.Quantity, 10), money.Format(p.Price), money.Format(p.StockValue),
		})
	}
	md := mdTable([]string{"código", "producto", "categoría", "cant.", "precio", "valor"}, rows)
	md += "\n**" + strconv.Itoa(rep.Total) + " productos, valor en stock " + money.Format(rep.TotalValue) + "**\n"
	c.env.printMarkdown(md)
	return subcommands.ExitSuccess
}
