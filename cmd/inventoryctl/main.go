package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path"
	"syscall"

	"github.com/google/subcommands"

	"github.com/jhoicas/inventario-panel/internal/application/inventory"
	"github.com/jhoicas/inventario-panel/internal/application/report"
	"github.com/jhoicas/inventario-panel/internal/application/usecase"
	domaininv "github.com/jhoicas/inventario-panel/internal/domain/inventory"
	infrapdf "github.com/jhoicas/inventario-panel/internal/infrastructure/pdf"
	"github.com/jhoicas/inventario-panel/internal/infrastructure/postgres"
	"github.com/jhoicas/inventario-panel/internal/interfaces/cli"
	"github.com/jhoicas/inventario-panel/pkg/config"
	"github.com/jhoicas/inventario-panel/pkg/logger"
)

var (
	actor = flag.String("actor", os.Getenv("USER"), "Autor que queda en el libro de movimientos")
	plain = flag.Bool("plain", false, "Imprime markdown sin estilos de terminal")
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})

	env := &cli.Env{
		Out:     os.Stdout,
		Err:     os.Stderr,
		Log:     log,
		Connect: connect(cfg, log),
	}
	cli.Register(commander, env)

	flag.Parse()
	env.Actor = *actor
	env.Plain = *plain

	// Ctrl-C interrumpe la importación entre filas; las ya aplicadas quedan.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	os.Exit(int(commander.Execute(ctx)))
}

func connect(cfg *config.Config, log *logger.Logger) func(ctx context.Context) (*cli.Services, func(), error) {
	return func(ctx context.Context) (*cli.Services, func(), error) {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, nil, err
		}
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		productRepo := postgres.NewProductRepository(pool)
		txRunner := postgres.NewTxRunner(pool)
		svc := &cli.Services{
			ProductRepo: productRepo,
			Products:    usecase.NewProductUseCase(txRunner, productRepo, log),
			Movements:   inventory.NewMovementUseCase(txRunner, log),
			Ledger: inventory.NewLedgerUseCase(postgres.NewMovementRepository(pool), inventory.LedgerConfig{
				PageSize:    cfg.Ledger.PageSize,
				AllowDelete: cfg.Ledger.AllowDelete,
			}, log),
			Reconcile: inventory.NewReconcileUseCase(txRunner, domaininv.NewNormalizer(), log),
			Reports: report.NewUseCase(
				postgres.NewReportRepository(pool), productRepo,
				infrapdf.NewMarotoStockReportGenerator(cfg.App.Name),
				report.NewMoneyFormatter(cfg.Report.Currency),
			),
		}
		return svc, pool.Close, nil
	}
}
