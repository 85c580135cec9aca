package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/tvqdev/deanboard/client"
	"github.com/tvqdev/deanboard/core/tuition"
)

func (cli *commandLine) tuition(ctx context.Context, args []string) error {
	if len(args) == 0 {
		cli.printUsage()
		return errHelp
	}

	priceCmd := flag.NewFlagSet("tuition set-price", flag.ContinueOnError)
	price := priceCmd.Int("price", 0, "price per credit in VND")

	listCmd := flag.NewFlagSet("tuition list", flag.ContinueOnError)
	listSkip := listCmd.Int("skip", 0, "rows to skip")
	listLimit := listCmd.Int("limit", 0, "max rows (0 = all)")

	payCmd := flag.NewFlagSet("tuition pay", flag.ContinueOnError)
	payID := payCmd.Int("id", 0, "tuition id")
	payAmount := payCmd.Int("amount", -1, "total paid amount in VND")

	switch args[0] {
	case "settings":
		settings, err := cli.client.TuitionSettings(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "Price per credit: %s\n", vnd(settings.PricePerCredit))
		return nil

	case "set-price":
		if err := priceCmd.Parse(args[1:]); err != nil {
			return err
		}
		if *price == 0 {
			priceCmd.Usage()
			return errHelp
		}
		settings, err := cli.client.UpdateTuitionSettings(ctx, tuition.Settings{PricePerCredit: *price})
		if err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "Price per credit set to %s.\n", vnd(settings.PricePerCredit))
		return nil

	case "list":
		if err := listCmd.Parse(args[1:]); err != nil {
			return err
		}
		cli.loading("tuition bills")
		bills, err := cli.client.Tuitions(ctx, client.ListOptions{Skip: *listSkip, Limit: *listLimit})
		if err != nil {
			return err
		}
		rows := make([][]string, 0, len(bills))
		for _, b := range bills {
			rows = append(rows, []string{
				itoa(b.ID), itoa(b.StudentID), b.Semester,
				vnd(b.TotalAmount), vnd(b.PaidAmount), b.Status,
			})
		}
		cli.table([]string{"ID", "STUDENT", "SEMESTER", "TOTAL", "PAID", "STATUS"}, rows, "No tuition bills yet.")
		return nil

	case "pay":
		if err := payCmd.Parse(args[1:]); err != nil {
			return err
		}
		if *payID == 0 || *payAmount < 0 {
			payCmd.Usage()
			return errHelp
		}
		bill, err := cli.client.UpdateTuition(ctx, *payID, tuition.UpdatePayment{PaidAmount: *payAmount})
		if err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "Tuition %d: paid %s of %s (%s).\n",
			bill.ID, vnd(bill.PaidAmount), vnd(bill.TotalAmount), bill.Status)
		return nil

	default:
		cli.printUsage()
		return errHelp
	}
}
