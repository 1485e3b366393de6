package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/beggab/storechina/internal/config"
	"github.com/beggab/storechina/internal/logging"
	"github.com/beggab/storechina/internal/repo"
	"github.com/beggab/storechina/internal/service"
	"github.com/beggab/storechina/pkg/db"
)

// Prints the admin dashboard numbers to stdout: total customers and orders
// plus the most recent orders with customer contact data.
func main() {
	limit := flag.Int("limit", 10, "number of recent orders to show")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel)
	slog.SetDefault(logger)

	ctx := logging.IntoContext(context.Background(), logger)

	gdb, err := db.Open(ctx, cfg.DSN())
	if err != nil {
		logger.Error("database open failed", "error", err)
		os.Exit(1)
	}

	reports := &service.ReportService{Repo: repo.New(gdb)}

	stats := reports.Stats(ctx)
	fmt.Printf("customers: %d\norders:    %d\n\n", stats.Customers, stats.Orders)

	rows := reports.RecentOrders(ctx, *limit)
	if len(rows) == 0 {
		fmt.Println("no orders yet")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ORDER\tDATE\tSTATUS\tTOTAL RUB\tCUSTOMER\tPHONE\tADDRESS")
	for _, row := range rows {
		fmt.Fprintf(w, "%d\t%s\t%s\t%.2f\t%s\t%s\t%s\n",
			row.OrderID,
			row.OrderDate.Format("2006-01-02 15:04"),
			row.Status,
			row.TotalAmountRUB,
			row.FullName,
			row.Phone,
			row.DeliveryAddress,
		)
	}
	w.Flush()
}
