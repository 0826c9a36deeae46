package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/polkiloo/homekitchen/internal/adapter/kitchenapi"
	"github.com/polkiloo/homekitchen/internal/cart"
	"github.com/polkiloo/homekitchen/internal/domain/model"
)

const defaultServer = "http://localhost:3000"

const usage = `usage: kitchenctl [-server URL] <command> [flags]

commands:
  menu                      list available dishes
  order -name N -phone P -address A [-notes T] -item ID[xQTY]...
                            put items into a cart and submit it
`

type lineFlag []model.LineRequest

func (l *lineFlag) String() string {
	parts := make([]string, 0, len(*l))
	for _, line := range *l {
		parts = append(parts, fmt.Sprintf("%dx%d", line.ItemID, line.Quantity))
	}
	return strings.Join(parts, ",")
}

func (l *lineFlag) Set(v string) error {
	idPart, qtyPart, found := strings.Cut(strings.ToLower(strings.TrimSpace(v)), "x")
	id, err := strconv.ParseInt(idPart, 10, 64)
	if err != nil || id <= 0 {
		return fmt.Errorf("invalid item id %q", idPart)
	}
	qty := 1
	if found {
		qty, err = strconv.Atoi(qtyPart)
		if err != nil || qty <= 0 {
			return fmt.Errorf("invalid quantity %q", qtyPart)
		}
	}
	*l = append(*l, model.LineRequest{ItemID: id, Quantity: qty})
	return nil
}

func run(ctx context.Context, args []string, getenv func(string) string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("kitchenctl", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	server := getenv("KITCHEN_API_URL")
	if server == "" {
		server = defaultServer
	}
	fs.StringVar(&server, "server", server, "homekitchen base URL")
	verbose := fs.Bool("v", false, "log requests to stderr")

	if err := fs.Parse(args); err != nil || fs.NArg() == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	level := slog.LevelError
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	client, err := kitchenapi.NewHTTPClient(server, logger)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	switch cmd := fs.Arg(0); cmd {
	case "menu":
		err = printMenu(ctx, client, stdout)
	case "order":
		err = placeOrder(ctx, client, fs.Args()[1:], stdout)
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", cmd, usage)
		return 2
	}

	if err != nil {
		var apiErr *kitchenapi.APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			fmt.Fprintln(stderr, apiErr.Message)
		} else {
			fmt.Fprintln(stderr, err)
		}
		return 1
	}
	return 0
}

func printMenu(ctx context.Context, client kitchenapi.Client, out io.Writer) error {
	items, err := client.Menu(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Fprintln(out, "暂无菜品")
		return nil
	}
	for _, item := range items {
		fmt.Fprintf(out, "%3d  %-16s ¥%s  库存 %d\n", item.ID, item.Name, item.Price.StringFixed(2), item.Stock)
	}
	return nil
}

func placeOrder(ctx context.Context, client kitchenapi.Client, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("order", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		customer cart.Customer
		lines    lineFlag
	)
	fs.StringVar(&customer.Name, "name", "", "customer name")
	fs.StringVar(&customer.Phone, "phone", "", "customer phone")
	fs.StringVar(&customer.Address, "address", "", "delivery address")
	fs.StringVar(&customer.Notes, "notes", "", "order notes")
	fs.Var(&lines, "item", "menu item as ID or IDxQTY, repeatable")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("order: %w", err)
	}

	items, err := client.Menu(ctx)
	if err != nil {
		return err
	}
	menu := model.NewMenuSnapshot(items)

	c := cart.New()
	for _, line := range lines {
		item, ok := menu[line.ItemID]
		if !ok {
			return fmt.Errorf("菜品ID %d 不存在或已下架", line.ItemID)
		}
		c.Add(item)
		c.ChangeQuantity(item.ID, line.Quantity-1)
	}

	for _, line := range c.Items() {
		fmt.Fprintf(out, "%s × %d  ¥%s\n", line.Name, line.Quantity, line.Subtotal().StringFixed(2))
	}
	summary := c.Summary()
	fmt.Fprintf(out, "共 %d 份，合计 ¥%s\n", summary.Count, summary.Total.StringFixed(2))

	receipt, err := c.Checkout(ctx, client, customer)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "订单提交成功！订单号 %d，金额 ¥%s\n", receipt.OrderID, receipt.TotalAmount.StringFixed(2))
	return nil
}
